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

package service

import (
	"context"
	"errors"
	"time"

	"github.com/TickerDeckProject/tickerdeck-core/pkg/config"
	"github.com/TickerDeckProject/tickerdeck-core/pkg/quote"
	"github.com/TickerDeckProject/tickerdeck-core/pkg/tiles"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	// rateLimitBackoff is the fixed wait after an HTTP 429 before the
	// next fetch attempt.
	rateLimitBackoff = 60 * time.Second
	// fetchTimeout bounds one price API call.
	fetchTimeout = 10 * time.Second
)

// Fetcher produces one quote per refresh cycle.
type Fetcher interface {
	Fetch(ctx context.Context) (quote.Quote, error)
}

// Display receives rendered tiles. *deck.Sink implements this.
type Display interface {
	Push(frame [6]tiles.Tile) error
	PushCountdown(tile tiles.Tile) error
	BlankUnused() error
}

type service struct {
	cfg      *config.Instance
	fetcher  Fetcher
	renderer *tiles.Renderer
	display  Display
	clock    clockwork.Clock
}

// Start runs the refresh/display cycle in the background and returns a
// stop function that cancels the cycle and waits for it to exit. The
// clock is injected so tests drive the waits.
func Start(
	cfg *config.Instance,
	fetcher Fetcher,
	renderer *tiles.Renderer,
	display Display,
	clock clockwork.Clock,
) (func() error, error) {
	log.Info().Msgf("version: %s", config.AppVersion)
	log.Info().Msgf(
		"refreshing %s/%s every %s",
		cfg.Coin(), cfg.Currency(), cfg.RefreshInterval(),
	)

	svc := &service{
		cfg:      cfg,
		fetcher:  fetcher,
		renderer: renderer,
		display:  display,
		clock:    clock,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		svc.run(ctx)
	}()

	return func() error {
		cancel()
		<-done
		return nil
	}, nil
}

func (s *service) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if !s.cycle(ctx) {
			return
		}
	}
}

// cycle performs one refresh phase and, on success, one display phase.
// It returns false when the context was canceled during a wait.
func (s *service) cycle(ctx context.Context) bool {
	q, err := s.fetchOnce(ctx)
	switch {
	case errors.Is(err, quote.ErrRateLimited):
		log.Warn().Msgf("rate limit hit, backing off for %s", rateLimitBackoff)
		return s.wait(ctx, rateLimitBackoff)
	case err != nil:
		log.Error().Err(err).Msg("error fetching price")
		return s.wait(ctx, s.cfg.RefreshInterval())
	}

	log.Info().Msgf(
		"%s: $%s | 24h: %s | trend: %s",
		s.cfg.Coin(),
		tiles.FormatPrice(q.Price),
		tiles.FormatChange(q.Change24h),
		q.Trend,
	)

	frame := s.renderer.Render(q)
	if err := s.display.Push(frame); err != nil {
		log.Error().Err(err).Msg("error pushing tiles to device")
	}
	if err := s.display.BlankUnused(); err != nil {
		log.Error().Err(err).Msg("error blanking unused keys")
	}

	for n := s.cfg.RefreshSeconds(); n >= 1; n-- {
		if err := s.display.PushCountdown(s.renderer.RenderCountdown(n)); err != nil {
			log.Error().Err(err).Msg("error pushing countdown tile")
		}
		if !s.wait(ctx, time.Second) {
			return false
		}
	}

	return true
}

func (s *service) fetchOnce(ctx context.Context) (quote.Quote, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	return s.fetcher.Fetch(fetchCtx)
}

// wait blocks for d on the injected clock, returning false when the
// context is canceled first.
func (s *service) wait(ctx context.Context, d time.Duration) bool {
	timer := s.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.Chan():
		return true
	case <-ctx.Done():
		return false
	}
}
