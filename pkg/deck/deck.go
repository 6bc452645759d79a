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
	"image"

	"github.com/TickerDeckProject/tickerdeck-core/pkg/config"
	"github.com/muesli/streamdeck"
	"github.com/rs/zerolog/log"
)

// ErrNoDevice means no Stream Deck was found at startup. Fatal: the
// process has nothing to draw on.
var ErrNoDevice = errors.New("no stream deck devices found")

// Device is the panel the sink writes to. The HID driver converts images
// to the device's native pixel encoding on write.
type Device interface {
	// Keys returns the total number of physical keys on the device.
	Keys() int
	// Serial returns the device serial number.
	Serial() string
	// SetImage uploads a key-sized image to one key.
	SetImage(key int, img image.Image) error
	Close() error
}

// Connect enumerates connected Stream Decks and opens one. With an empty
// serial the first device found is used; otherwise the serial must match
// a connected device. Device selection is explicit configuration, not
// ambient process state.
func Connect(cfg *config.Instance) (Device, error) {
	devs, err := streamdeck.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate stream decks: %w", err)
	}
	if len(devs) == 0 {
		return nil, ErrNoDevice
	}

	serial := cfg.DeviceSerial()
	var chosen *streamdeck.Device
	for i := range devs {
		if serial == "" || devs[i].Serial == serial {
			chosen = &devs[i]
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: serial %q not connected", ErrNoDevice, serial)
	}

	if err := chosen.Open(); err != nil {
		return nil, fmt.Errorf("failed to open stream deck: %w", err)
	}

	if err := chosen.SetBrightness(cfg.Brightness()); err != nil {
		log.Warn().Err(err).Msg("failed to set brightness")
	}

	log.Info().Msgf(
		"connected to stream deck, serial %s with %d keys",
		chosen.Serial, chosen.Keys,
	)

	return &hidDevice{dev: chosen}, nil
}

type hidDevice struct {
	dev *streamdeck.Device
}

func (h *hidDevice) Keys() int {
	return int(h.dev.Keys)
}

func (h *hidDevice) Serial() string {
	return h.dev.Serial
}

func (h *hidDevice) SetImage(key int, img image.Image) error {
	if err := h.dev.SetImage(uint8(key), img); err != nil {
		return fmt.Errorf("failed to set image on key %d: %w", key, err)
	}
	return nil
}

func (h *hidDevice) Close() error {
	if err := h.dev.Close(); err != nil {
		return fmt.Errorf("failed to close stream deck: %w", err)
	}
	return nil
}
