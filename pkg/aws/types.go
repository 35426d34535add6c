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

// Package aws abstracts the AWS SDK behind small per-service interfaces so
// the rest of costline never touches SDK types directly. It follows the
// Client / RealClient / MockClient pattern: production code constructs a
// RealClient via NewClient, tests swap in a MockClient.
package aws

// CostResult is one Cost Explorer ResultsByTime entry reduced to what the
// notification needs: the echoed time period and the parsed amount.
//
// Start and End are kept as the textual YYYY-MM-DD dates the API returned,
// with End an exclusive upper bound. They are deliberately not re-parsed
// here; the formatter downstream owns date validation.
type CostResult struct {
	// Start is the inclusive first day of the period, YYYY-MM-DD.
	Start string

	// End is the exclusive upper bound of the period, YYYY-MM-DD.
	End string

	// Amount is the metric total over the period in USD.
	Amount float64
}
