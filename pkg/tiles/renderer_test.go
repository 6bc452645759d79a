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
	"image"
	"testing"

	"github.com/TickerDeckProject/tickerdeck-core/pkg/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countNonBlack(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != 0 || g != 0 || bl != 0 {
				n++
			}
		}
	}
	return n
}

// hasColor reports whether any pixel lights up only the given channels.
func hasColor(img *image.RGBA, red, green, blue bool) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r == 0 && g == 0 && bl == 0 {
				continue
			}
			if (r > 0) == red && (g > 0) == green && (bl > 0) == blue {
				return true
			}
		}
	}
	return false
}

func TestRenderProducesSixKeySizedTiles(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)

	q := quote.Quote{Price: 117000, Change24h: 1.23, Trend: quote.TrendUp}
	out := r.Render(q)

	expected := []string{"$1", "17,", "000", ".00", "+1.23%", "▲"}
	for i, tile := range out {
		assert.Equal(t, expected[i], tile.Text, "tile %d text", i)
		assert.Equal(t, image.Rect(0, 0, Size, Size), tile.Image.Bounds(), "tile %d size", i)
	}
}

func TestRenderTrendColors(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)

	tests := []struct {
		name             string
		q                quote.Quote
		red, green, blue bool
	}{
		{
			name:  "up is green",
			q:     quote.Quote{Price: 1234.56, Change24h: 1.0, Trend: quote.TrendUp},
			green: true,
		},
		{
			name: "down is red",
			q:    quote.Quote{Price: 1234.56, Change24h: -1.0, Trend: quote.TrendDown},
			red:  true,
		},
		{
			name:  "flat is white",
			q:     quote.Quote{Price: 1234.56, Change24h: 0, Trend: quote.TrendFlat},
			red:   true,
			green: true,
			blue:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := r.Render(tt.q)
			// lead digit tile always has visible text
			assert.Positive(t, countNonBlack(out[0].Image))
			assert.True(t, hasColor(out[0].Image, tt.red, tt.green, tt.blue))
			// percent tile carries the same color
			assert.True(t, hasColor(out[4].Image, tt.red, tt.green, tt.blue))
		})
	}
}

func TestRenderEmptyRestTileStaysBlack(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)

	// 987.65 has no separator, so the rest tile has no text
	q := quote.Quote{Price: 987.65, Change24h: -0.5, Trend: quote.TrendDown}
	out := r.Render(q)

	assert.Empty(t, out[2].Text)
	assert.Zero(t, countNonBlack(out[2].Image))
}

func TestRenderArrowGlyphPerTrend(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)

	up := r.Render(quote.Quote{Price: 100, Change24h: 1, Trend: quote.TrendUp})
	down := r.Render(quote.Quote{Price: 100, Change24h: -1, Trend: quote.TrendDown})
	flat := r.Render(quote.Quote{Price: 100, Change24h: 0, Trend: quote.TrendFlat})

	assert.Equal(t, "▲", up[5].Text)
	assert.Equal(t, "▼", down[5].Text)
	assert.Equal(t, "-", flat[5].Text)
}

func TestRenderCountdown(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)

	tile := r.RenderCountdown(27)
	assert.Equal(t, "27s", tile.Text)
	assert.Equal(t, image.Rect(0, 0, Size, Size), tile.Image.Bounds())
	assert.Positive(t, countNonBlack(tile.Image))
	// countdown is always white regardless of trend
	assert.True(t, hasColor(tile.Image, true, true, true))
}

func TestBlankIsAllBlack(t *testing.T) {
	t.Parallel()

	img := Blank()
	assert.Equal(t, image.Rect(0, 0, Size, Size), img.Bounds())
	assert.Zero(t, countNonBlack(img))
}
