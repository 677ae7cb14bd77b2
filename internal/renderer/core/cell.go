package core

import "github.com/rivo/uniseg"

// Attribute is a set of text attributes.
type Attribute uint8

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrUnderline
	AttrReverse

	AttrNone Attribute = 0
)

func (a Attribute) Has(attr Attribute) bool { return a&attr != 0 }

// Style is how a cell is painted.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

func DefaultStyle() Style { return NewStyle(ColorDefault) }

// NewStyle returns a style with fg on the default background.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg, Background: ColorDefault}
}

func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Cell is one screen column. Width is its display width in columns.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// EmptyCell is a blank in the default style.
func EmptyCell() Cell { return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()} }

func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// RuneWidth is the number of columns r occupies. Control characters take none.
func RuneWidth(r rune) int {
	if r < ' ' || r == 0x7F {
		return 0
	}
	return uniseg.StringWidth(string(r))
}

// ScreenRect is a half-open region: rows [Top, Bottom), columns [Left, Right).
type ScreenRect struct {
	Top, Left, Bottom, Right int
}

// RectFromSize builds the rect with the given corner and extent.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}
