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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "TICKERDECK_CFG"
)

type Values struct {
	API             API     `toml:"api,omitempty"`
	Display         Display `toml:"display,omitempty"`
	ConfigSchema    int     `toml:"config_schema"`
	RefreshInterval int     `toml:"refresh_interval" validate:"gte=1"`
	DebugLogging    bool    `toml:"debug_logging"`
}

type API struct {
	URL      string `toml:"url,omitempty" validate:"omitempty,url"`
	Coin     string `toml:"coin,omitempty" validate:"required"`
	Currency string `toml:"currency,omitempty" validate:"required"`
}

type Display struct {
	// DeviceSerial pins the ticker to a specific Stream Deck when more
	// than one is connected. Empty means first found.
	DeviceSerial string `toml:"device_serial,omitempty"`
	Brightness   int    `toml:"brightness" validate:"gte=0,lte=100"`
}

var BaseDefaults = Values{
	ConfigSchema:    SchemaVersion,
	RefreshInterval: 30,
	API: API{
		URL:      "https://api.coingecko.com/api/v3",
		Coin:     "bitcoin",
		Currency: "usd",
	},
	Display: Display{
		Brightness: 80,
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       sync.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	err = validator.New().Struct(newVals)
	if err != nil {
		return fmt.Errorf("invalid config values: %w", err)
	}

	c.vals = newVals

	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	// set current schema version
	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(c.cfgPath, data, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

// RefreshInterval returns the time between price refreshes.
func (c *Instance) RefreshInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.RefreshInterval) * time.Second
}

// RefreshSeconds returns the refresh interval in whole seconds, which is
// also the starting value of the countdown tile.
func (c *Instance) RefreshSeconds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.RefreshInterval
}

func (c *Instance) APIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.API.URL
}

func (c *Instance) Coin() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.API.Coin
}

func (c *Instance) Currency() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.API.Currency
}

func (c *Instance) DeviceSerial() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Display.DeviceSerial
}

func (c *Instance) Brightness() uint8 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return uint8(c.vals.Display.Brightness)
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}
