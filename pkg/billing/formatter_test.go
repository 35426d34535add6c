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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		want   string
	}{
		{
			name:   "mid-month period",
			period: Period{Start: "2025-11-01", End: "2025-11-22", Amount: 123.456},
			want:   "11/01～11/21の請求額は、123.456 USDです。",
		},
		{
			name:   "rounding carries through the integer part",
			period: Period{Start: "2025-11-01", End: "2025-11-15", Amount: 99.9999},
			want:   "11/01～11/14の請求額は、100.000 USDです。",
		},
		{
			name:   "previous full month across a year boundary",
			period: Period{Start: "2024-12-01", End: "2025-01-01", Amount: 100.0},
			want:   "12/01～12/31の請求額は、100.000 USDです。",
		},
		{
			name:   "single-day period",
			period: Period{Start: "2025-06-01", End: "2025-06-02", Amount: 4.2},
			want:   "06/01～06/01の請求額は、4.200 USDです。",
		},
		{
			name:   "leap day as displayed end",
			period: Period{Start: "2024-02-01", End: "2024-03-01", Amount: 55.5},
			want:   "02/01～02/29の請求額は、55.500 USDです。",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMessage(tt.period))
		})
	}
}

func TestFormatMessageZeroAmount(t *testing.T) {
	got := FormatMessage(Period{Start: "2025-11-01", End: "2025-11-22", Amount: 0.0})
	assert.True(t, strings.HasSuffix(got, "0.000 USDです。"), "got %q", got)
}

// TestFormatMessageMalformedDates verifies the degrade-to-no-op contract:
// unparseable dates yield the empty sentinel, never a panic or error.
func TestFormatMessageMalformedDates(t *testing.T) {
	tests := []struct {
		name   string
		period Period
	}{
		{
			name:   "garbage start",
			period: Period{Start: "invalid-date", End: "2025-11-22", Amount: 100.0},
		},
		{
			name:   "garbage end",
			period: Period{Start: "2025-11-01", End: "not-a-date", Amount: 100.0},
		},
		{
			name:   "empty dates",
			period: Period{Amount: 100.0},
		},
		{
			name:   "wrong layout",
			period: Period{Start: "11/01/2025", End: "2025-11-22", Amount: 100.0},
		},
		{
			name:   "impossible calendar date",
			period: Period{Start: "2025-02-30", End: "2025-03-01", Amount: 100.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "", FormatMessage(tt.period))
		})
	}
}
