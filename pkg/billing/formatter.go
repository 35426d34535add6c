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

import (
	"strconv"
	"time"
)

// displayLayout renders dates as MM/DD for the notification text.
const displayLayout = "01/02"

// FormatMessage renders a Period as the LINE notification text.
//
// The displayed range converts the exclusive end date into the last day a
// human actually cares about: the end shown is Period.End minus one day.
// The amount is rendered with exactly three digits after the decimal point,
// trailing zeros included, so 99.9999 carries up to "100.000" and a zero
// spend reads "0.000".
//
// The surrounding text, including the full-width tilde and the Japanese
// trailing phrase, is a fixed contract with the receiving chat client and
// must not change.
//
// A Period whose Start or End does not parse as a YYYY-MM-DD date cannot be
// displayed; FormatMessage returns the empty string so a malformed upstream
// response degrades to "no message" instead of taking down the run. Callers
// treat "" as the failure sentinel.
func FormatMessage(p Period) string {
	start, err := time.Parse(DateLayout, p.Start)
	if err != nil {
		return ""
	}
	end, err := time.Parse(DateLayout, p.End)
	if err != nil {
		return ""
	}

	lastDay := end.AddDate(0, 0, -1)
	amount := strconv.FormatFloat(p.Amount, 'f', 3, 64)

	return start.Format(displayLayout) + "～" + lastDay.Format(displayLayout) +
		"の請求額は、" + amount + " USDです。"
}
