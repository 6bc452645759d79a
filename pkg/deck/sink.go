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

package deck

import (
	"errors"
	"fmt"

	"github.com/TickerDeckProject/tickerdeck-core/pkg/tiles"
)

// tileSlots maps tile order (lead, group, rest, decimal, percent, arrow)
// to physical key indices on a 15-key deck: the four price tiles fill the
// middle row, percent sits left of them, the arrow right.
var tileSlots = [6]int{5, 6, 7, 8, 4, 9}

// countdownSlot is the key showing seconds until the next refresh.
const countdownSlot = 10

// Sink writes rendered tiles to their fixed key slots and keeps every
// other key blanked.
type Sink struct {
	dev Device
}

func NewSink(dev Device) *Sink {
	return &Sink{dev: dev}
}

// Push writes the six price tiles to their slots. Write failures are
// collected and returned; a failed key does not stop the rest of the
// frame.
func (s *Sink) Push(frame [6]tiles.Tile) error {
	var errs []error
	for i, tile := range frame {
		if err := s.dev.SetImage(tileSlots[i], tile.Image); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to push frame: %w", errors.Join(errs...))
	}
	return nil
}

// PushCountdown writes the countdown tile to its slot.
func (s *Sink) PushCountdown(tile tiles.Tile) error {
	if err := s.dev.SetImage(countdownSlot, tile.Image); err != nil {
		return fmt.Errorf("failed to push countdown: %w", err)
	}
	return nil
}

// BlankUnused writes a solid black image to every key outside the six
// tile slots and the countdown slot, so nothing stale survives from a
// previous frame or the device's own defaults.
func (s *Sink) BlankUnused() error {
	used := make(map[int]bool, len(tileSlots)+1)
	for _, slot := range tileSlots {
		used[slot] = true
	}
	used[countdownSlot] = true

	blank := tiles.Blank()
	var errs []error
	for key, n := 0, s.dev.Keys(); key < n; key++ {
		if used[key] {
			continue
		}
		if err := s.dev.SetImage(key, blank); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to blank keys: %w", errors.Join(errs...))
	}
	return nil
}
