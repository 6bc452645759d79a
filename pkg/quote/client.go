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

package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/TickerDeckProject/tickerdeck-core/pkg/config"
	"github.com/rs/zerolog/log"
)

var (
	// ErrRateLimited is returned on HTTP 429. The caller owns the backoff.
	ErrRateLimited = errors.New("price api rate limited")
	// ErrUnavailable covers every other fetch failure: network errors,
	// unexpected statuses, malformed bodies, missing fields. The caller
	// skips the cycle and tries again on the next refresh.
	ErrUnavailable = errors.New("price unavailable")
)

// DefaultTimeoutSeconds is the default timeout for HTTP requests.
const DefaultTimeoutSeconds = 30

var defaultTransport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ResponseHeaderTimeout: 30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
}

// Client fetches spot prices from a CoinGecko-compatible simple price API.
type Client struct {
	http     *http.Client
	baseURL  string
	coin     string
	currency string
}

func NewClient(cfg *config.Instance) *Client {
	return &Client{
		http: &http.Client{
			Transport: defaultTransport,
			Timeout:   DefaultTimeoutSeconds * time.Second,
		},
		baseURL:  cfg.APIURL(),
		coin:     cfg.Coin(),
		currency: cfg.Currency(),
	}
}

// Fetch requests the current price and 24-hour change for the configured
// coin. It returns ErrRateLimited on HTTP 429 and an error wrapping
// ErrUnavailable on any other failure.
func (c *Client) Fetch(ctx context.Context) (Quote, error) {
	params := url.Values{}
	params.Set("ids", c.coin)
	params.Set("vs_currencies", c.currency)
	params.Set("include_24hr_change", "true")
	reqURL := c.baseURL + "/simple/price?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: failed to create request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: failed to send request: %w", ErrUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing response body")
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return Quote{}, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	// Body shape: {"bitcoin": {"usd": 117000.0, "usd_24h_change": 1.23}}
	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("%w: failed to decode response: %w", ErrUnavailable, err)
	}

	fields, ok := body[c.coin]
	if !ok {
		return Quote{}, fmt.Errorf("%w: response missing coin %q", ErrUnavailable, c.coin)
	}
	price, ok := fields[c.currency]
	if !ok {
		return Quote{}, fmt.Errorf("%w: response missing price field %q", ErrUnavailable, c.currency)
	}
	change, ok := fields[c.currency+"_24h_change"]
	if !ok {
		return Quote{}, fmt.Errorf("%w: response missing 24h change field", ErrUnavailable)
	}

	return Quote{
		Price:     price,
		Change24h: change,
		Trend:     TrendOf(change),
	}, nil
}
