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
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishPrinter = message.NewPrinter(language.English)

// FormatPrice renders a price with thousands separators and exactly two
// decimal digits, e.g. 1234.5 -> "1,234.50".
func FormatPrice(price float64) string {
	return englishPrinter.Sprintf("%.2f", price)
}

// FormatChange renders a 24-hour percent change with an explicit sign and
// two decimals, e.g. "+1.23%", "-0.50%", "+0.00%".
func FormatChange(change float64) string {
	return fmt.Sprintf("%+.2f%%", change)
}

// PriceParts is the positional partition of a formatted price across the
// four price tiles.
type PriceParts struct {
	Lead    string
	Group   string
	Rest    string
	Decimal string
}

// SplitPrice partitions a formatted price string ("1,234.50") across the
// four price tiles:
//
//   - Lead: "$" plus the first integer digit, always exactly one digit.
//   - Group: the digits strictly between the first digit and the first
//     thousands separator, including that separator. When the integer
//     part has no separator, all remaining integer digits plus a
//     trailing "," placeholder.
//   - Rest: every integer digit left over, separators stripped. Prices
//     with more than one separator collapse their remaining groups here
//     unseparated.
//   - Decimal: "." plus the two decimal digits.
//
// The partition is lossless: concatenating the digit characters of the
// four parts reproduces the digit sequence of the input exactly.
//
// Boundary cases: "5.00" -> {"$5", ",", "", ".00"},
// "987.65" -> {"$9", "87,", "", ".65"},
// "117,000.00" -> {"$1", "17,", "000", ".00"},
// "1,234,567.89" -> {"$1", ",", "234567", ".89"}.
func SplitPrice(formatted string) PriceParts {
	intPart, decPart, _ := strings.Cut(formatted, ".")
	digits := strings.ReplaceAll(intPart, ",", "")

	parts := PriceParts{
		Lead:    "$" + digits[:1],
		Decimal: "." + decPart,
	}

	if i := strings.Index(intPart, ","); i >= 0 {
		parts.Group = intPart[1 : i+1]
	} else {
		parts.Group = intPart[1:] + ","
	}

	restStart := 1 + len(strings.ReplaceAll(parts.Group, ",", ""))
	parts.Rest = digits[restStart:]

	return parts
}
