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
	"image"
	"image/color"
	"image/draw"

	"github.com/TickerDeckProject/tickerdeck-core/pkg/quote"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Size is the pixel width and height of one Stream Deck key image.
const Size = 72

// priceNudge shifts price digit and arrow glyphs up slightly. The glyph
// metrics of the face sit visually low on the square canvas at the large
// sizes; percent and decimal tiles are left alone.
const priceNudge = 6

// Per-tile font sizes: lead digit, group, rest, decimal, percent, arrow.
var fontSizes = [6]float64{42, 42, 37, 39, 20, 48}

const countdownFontSize = 20

// Tile is one rendered key image plus the text it carries.
type Tile struct {
	Image *image.RGBA
	Text  string
}

// Renderer turns quotes into key-sized bitmaps. It is safe to reuse
// across cycles; faces are parsed once.
type Renderer struct {
	countdownFace font.Face
	faces         [6]font.Face
}

func NewRenderer() (*Renderer, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	r := &Renderer{}
	for i, size := range fontSizes {
		r.faces[i], err = opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %gpt face: %w", size, err)
		}
	}

	r.countdownFace, err = opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    countdownFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create countdown face: %w", err)
	}

	return r, nil
}

// TrendColor maps a trend to the tile foreground color: green up, red
// down, white flat.
func TrendColor(t quote.Trend) color.RGBA {
	switch t {
	case quote.TrendUp:
		return color.RGBA{G: 255, A: 255}
	case quote.TrendDown:
		return color.RGBA{R: 255, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}

// Glyph returns the single-character trend marker for the arrow tile.
func Glyph(t quote.Trend) string {
	switch t {
	case quote.TrendUp:
		return "▲"
	case quote.TrendDown:
		return "▼"
	default:
		return "-"
	}
}

// Render produces the six price tiles for a quote, in slot order: lead
// digit, digit group, remaining digits, decimal suffix, percent change,
// trend arrow.
func (r *Renderer) Render(q quote.Quote) [6]Tile {
	parts := SplitPrice(FormatPrice(q.Price))
	texts := [6]string{
		parts.Lead,
		parts.Group,
		parts.Rest,
		parts.Decimal,
		FormatChange(q.Change24h),
		Glyph(q.Trend),
	}
	col := TrendColor(q.Trend)

	var out [6]Tile
	for i, text := range texts {
		nudge := 0
		if i != 3 && i != 4 {
			nudge = priceNudge
		}
		out[i] = Tile{
			Text:  text,
			Image: drawTile(text, r.faces[i], col, nudge),
		}
	}
	return out
}

// RenderCountdown produces the refresh countdown tile, e.g. "27s".
func (r *Renderer) RenderCountdown(secondsLeft int) Tile {
	text := fmt.Sprintf("%ds", secondsLeft)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	return Tile{
		Text:  text,
		Image: drawTile(text, r.countdownFace, white, 0),
	}
}

// Blank returns a solid black key image, used to clear unused keys.
func Blank() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

func drawTile(text string, face font.Face, col color.RGBA, nudge int) *image.RGBA {
	img := Blank()
	if text == "" {
		return img
	}

	bounds, _ := font.BoundString(face, text)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I((Size-w)/2) - bounds.Min.X,
			Y: fixed.I((Size-h)/2-nudge) - bounds.Min.Y,
		},
	}
	drawer.DrawString(text)

	return img
}
