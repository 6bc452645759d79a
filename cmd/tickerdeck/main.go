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

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/TickerDeckProject/tickerdeck-core/pkg/config"
	"github.com/TickerDeckProject/tickerdeck-core/pkg/deck"
	"github.com/TickerDeckProject/tickerdeck-core/pkg/helpers"
	"github.com/TickerDeckProject/tickerdeck-core/pkg/quote"
	"github.com/TickerDeckProject/tickerdeck-core/pkg/service"
	"github.com/TickerDeckProject/tickerdeck-core/pkg/tiles"
	"github.com/adrg/xdg"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String(
		"config",
		filepath.Join(xdg.ConfigHome, config.AppName),
		"path to config directory",
	)
	quietMode := flag.Bool(
		"quiet",
		false,
		"log to file only, not the console",
	)
	showVersion := flag.Bool(
		"version",
		false,
		"print version and exit",
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", config.AppName, config.AppVersion)
		return nil
	}

	var logWriters []io.Writer
	if !*quietMode {
		logWriters = []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	}

	dataDir := filepath.Join(xdg.DataHome, config.AppName)
	if err := helpers.InitLogging(dataDir, logWriters); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(*configDir, config.BaseDefaults)
	if err != nil {
		log.Error().Err(err).Msg("error loading config")
		return fmt.Errorf("error loading config: %w", err)
	}
	helpers.SetDebugLogging(cfg.DebugLogging())

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	dev, err := deck.Connect(cfg)
	if err != nil {
		if errors.Is(err, deck.ErrNoDevice) {
			log.Error().Err(err).Msg("no stream decks detected")
			return errors.New("no stream decks detected")
		}
		return fmt.Errorf("error connecting to stream deck: %w", err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Error().Err(err).Msg("error closing device")
		}
	}()

	renderer, err := tiles.NewRenderer()
	if err != nil {
		return fmt.Errorf("error creating renderer: %w", err)
	}

	stopSvc, err := service.Start(
		cfg,
		quote.NewClient(cfg),
		renderer,
		deck.NewSink(dev),
		clockwork.NewRealClock(),
	)
	if err != nil {
		log.Error().Err(err).Msg("error starting service")
		return fmt.Errorf("error starting service: %w", err)
	}
	defer func() {
		if err := stopSvc(); err != nil {
			log.Error().Err(err).Msg("error stopping service")
		}
	}()

	sigs := make(chan os.Signal, 1)
	defer close(sigs)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigs
	log.Info().Msgf("received signal %s, shutting down", sig)

	return nil
}
