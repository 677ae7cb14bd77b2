// Package core holds the cell, style and color values shared by the track
// view and the terminal backends.
package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a true color, a palette index or the terminal default.
type Color struct {
	R, G, B uint8

	// Indexed colors keep the palette index in R.
	Indexed bool
	Default bool
}

// ColorDefault leaves the terminal's own color in place.
var ColorDefault = Color{Default: true}

func ColorFromRGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

func ColorFromIndex(index uint8) Color { return Color{R: index, Indexed: true} }

// ColorFromHex parses "#rrggbb" or "#rgb".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", hex, err)
	}
	return ColorFromRGB(c.RGB255()), nil
}

func (c Color) IsDefault() bool { return c.Default }

// Blend moves c toward other by amount in [0, 1], interpolating in CIE-Lab.
// Only true colors blend; anything else returns c.
func (c Color) Blend(other Color, amount float64) Color {
	if !c.trueColor() || !other.trueColor() {
		return c
	}
	return ColorFromRGB(c.lab().BlendLab(other.lab(), amount).Clamped().RGB255())
}

func (c Color) trueColor() bool { return !c.Indexed && !c.Default }

func (c Color) lab() colorful.Color {
	c8 := func(v uint8) float64 { return float64(v) / 255 }
	return colorful.Color{R: c8(c.R), G: c8(c.G), B: c8(c.B)}
}
