// TickerDeck Core
// Copyright (c) 2026 The TickerDeck Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of TickerDeck Core.
//
// TickerDeck Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// TickerDeck Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TickerDeck Core.  If not, see <http://www.gnu.org/licenses/>.

package tiles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
		price    float64
	}{
		{name: "grouping and padded decimals", price: 1234.5, expected: "1,234.50"},
		{name: "six digit integer part", price: 117000, expected: "117,000.00"},
		{name: "no separator", price: 987.65, expected: "987.65"},
		{name: "single digit", price: 5, expected: "5.00"},
		{name: "two separators", price: 1234567.89, expected: "1,234,567.89"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FormatPrice(tt.price))
		})
	}
}

func TestFormatChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
		change   float64
	}{
		{name: "positive gets explicit plus", change: 1.23, expected: "+1.23%"},
		{name: "negative", change: -0.5, expected: "-0.50%"},
		{name: "zero keeps sign and decimals", change: 0, expected: "+0.00%"},
		{name: "rounding", change: 2.345, expected: "+2.35%"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FormatChange(tt.change))
		})
	}
}

func TestSplitPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		formatted string
		expected  PriceParts
	}{
		{
			name:      "six digit integer part",
			formatted: "117,000.00",
			expected:  PriceParts{Lead: "$1", Group: "17,", Rest: "000", Decimal: ".00"},
		},
		{
			name:      "no separator gets placeholder",
			formatted: "987.65",
			expected:  PriceParts{Lead: "$9", Group: "87,", Rest: "", Decimal: ".65"},
		},
		{
			name:      "single digit integer part",
			formatted: "5.00",
			expected:  PriceParts{Lead: "$5", Group: ",", Rest: "", Decimal: ".00"},
		},
		{
			name:      "separator directly after lead digit",
			formatted: "1,234.56",
			expected:  PriceParts{Lead: "$1", Group: ",", Rest: "234", Decimal: ".56"},
		},
		{
			name:      "five digit integer part",
			formatted: "43,210.99",
			expected:  PriceParts{Lead: "$4", Group: "3,", Rest: "210", Decimal: ".99"},
		},
		{
			name:      "multiple separators collapse into rest",
			formatted: "1,234,567.89",
			expected:  PriceParts{Lead: "$1", Group: ",", Rest: "234567", Decimal: ".89"},
		},
		{
			name:      "two digit integer part",
			formatted: "42.00",
			expected:  PriceParts{Lead: "$4", Group: "2,", Rest: "", Decimal: ".00"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, SplitPrice(tt.formatted))
		})
	}
}

// stripToDigits removes everything except digit characters.
func stripToDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func TestSplitPriceLossless(t *testing.T) {
	t.Parallel()

	prices := []float64{
		0.01, 1, 5.5, 9.99, 10, 42, 99.99, 100, 987.65, 999.99,
		1000, 1234.56, 9999.99, 10000, 43210.99, 99999.99,
		100000, 117000, 123456.78, 999999.99,
		1000000, 1234567.89, 87654321.09,
	}

	for _, price := range prices {
		formatted := FormatPrice(price)
		parts := SplitPrice(formatted)

		joined := parts.Lead + parts.Group + parts.Rest + parts.Decimal
		assert.Equal(t, stripToDigits(formatted), stripToDigits(joined),
			"partition of %q must be lossless", formatted)
		assert.Len(t, stripToDigits(parts.Lead), 1,
			"lead tile of %q must hold exactly one digit", formatted)
	}
}
