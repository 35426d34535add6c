// Copyright 2025 Costline Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package billing contains the calculation core of costline: the billing
// period date arithmetic and the notification message formatter.
//
// Everything here is pure computation. No I/O, no logging, no clock access —
// the current date is always passed in by the caller. This keeps the only
// nontrivial logic in the system (month-boundary arithmetic, exclusive
// end-date handling, fixed-point amount rendering) trivially unit-testable.
package billing

// DateLayout is the canonical textual date format used throughout costline.
// It matches the format Cost Explorer accepts in DateInterval requests and
// echoes back in its responses.
const DateLayout = "2006-01-02"

// Period is one reported billing span together with the amount accrued
// over it.
//
// Start is inclusive; End is exclusive — End is the first day NOT included
// in the span. This is a load-bearing convention, not an accident: the Cost
// Explorer API reports time periods with an exclusive end date, and Period
// carries the dates exactly as the API returned them. The last day a human
// should read out of a Period is End minus one day.
//
// Invariant: Start <= End. A Period is built fresh from each API response,
// never mutated, and discarded after formatting.
type Period struct {
	// Start is the first day of the span, canonical YYYY-MM-DD.
	Start string

	// End is the exclusive upper bound of the span, canonical YYYY-MM-DD.
	End string

	// Amount is the spend accrued over [Start, End) in USD.
	Amount float64
}
