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

package billing

import "time"

// DateRange computes the billing period to report on as of today, returned
// as canonical YYYY-MM-DD strings with an exclusive end date.
//
// The normal case is month-to-date: start is the first of today's month and
// end is today itself, so the report covers everything up to but not
// including today.
//
// On the first of a month there is no data for the current month yet (the
// range would be empty), so DateRange rolls back and reports the previous
// full calendar month instead: start becomes the first of the preceding
// month while end stays at today. Stepping back one day from today lands in
// the previous month regardless of its length, which also covers the
// December to January rollover and leap-year February.
//
// DateRange is a pure function of today; callers inject the clock.
func DateRange(today time.Time) (start, end string) {
	beginOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	if today.Day() == 1 {
		previous := today.AddDate(0, 0, -1)
		beginOfMonth = time.Date(previous.Year(), previous.Month(), 1, 0, 0, 0, 0, today.Location())
	}

	return beginOfMonth.Format(DateLayout), today.Format(DateLayout)
}
