// Package trackview draws a slider track on a terminal backend.
//
// A View is the slider's Surface: one cell is one pixel, the thumb is a
// single cell wide and offsets are rounded to the nearest cell.
package trackview

import (
	"math"
	"sync"

	"github.com/dshills/trackbar/internal/renderer/backend"
	"github.com/dshills/trackbar/internal/renderer/core"
	"github.com/dshills/trackbar/internal/slider"
)

// Glyphs used to draw the track.
const (
	FilledRune = '━'
	EmptyRune  = '─'
	ThumbRune  = '●'
)

// LabelWidth is the number of cells reserved for the value label.
const LabelWidth = 10

// Theme holds the colors of a track.
type Theme struct {
	FillStart core.Color
	FillEnd   core.Color
	Empty     core.Color
	Thumb     core.Color
}

// DefaultTheme returns the built-in track colors.
func DefaultTheme() Theme {
	return Theme{
		FillStart: core.ColorFromRGB(0x3a, 0x7b, 0xd5),
		FillEnd:   core.ColorFromRGB(0x00, 0xd2, 0xff),
		Empty:     core.ColorFromRGB(0x55, 0x55, 0x55),
		Thumb:     core.ColorFromRGB(0xff, 0xff, 0xff),
	}
}

// View is a one-row track at a fixed screen position.
type View struct {
	mu sync.Mutex

	x, y    int
	width   int
	thumb   int
	visible bool
	label   string
	theme   Theme
}

var _ slider.Surface = (*View)(nil)

// New creates a visible view whose track starts at column x on row y and
// spans width cells.
func New(x, y, width int, theme Theme) *View {
	return &View{
		x:       x,
		y:       y,
		width:   max(width, 0),
		visible: true,
		theme:   theme,
	}
}

// TrackGeometry implements slider.Surface. A hidden view reports zero width
// so no position can be mapped onto it.
func (v *View) TrackGeometry() slider.Geometry {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.visible {
		return slider.Geometry{Left: float64(v.x)}
	}
	return slider.Geometry{Left: float64(v.x), Width: float64(v.width)}
}

// ThumbWidth implements slider.Surface.
func (v *View) ThumbWidth() float64 {
	return 1
}

// SetThumbOffset implements slider.Surface.
func (v *View) SetThumbOffset(px float64) {
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	v.thumb = int(math.Floor(px + 0.5))
}

// SetTrackVisible implements slider.Surface.
func (v *View) SetTrackVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.visible = visible
}

// Visible reports whether the track is drawn.
func (v *View) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// ThumbCell returns the thumb's column relative to the track, clamped to
// the track.
func (v *View) ThumbCell() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.thumbCellLocked()
}

func (v *View) thumbCellLocked() int {
	if v.width == 0 {
		return 0
	}
	return min(max(v.thumb, 0), v.width-1)
}

// SetLabel replaces the text drawn right of the track.
func (v *View) SetLabel(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.label = label
}

// SetTheme replaces the track colors.
func (v *View) SetTheme(theme Theme) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.theme = theme
}

// Move repositions and resizes the track.
func (v *View) Move(x, y, width int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.x, v.y, v.width = x, y, max(width, 0)
}

// Bounds returns the screen rectangle covered by the track, excluding the
// label.
func (v *View) Bounds() core.ScreenRect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return core.RectFromSize(v.y, v.x, 1, v.width)
}

// Draw paints the track and its label. The row is cleared first so a view
// that was hidden leaves nothing behind.
func (v *View) Draw(b backend.Canvas) {
	v.mu.Lock()
	defer v.mu.Unlock()

	b.Fill(core.RectFromSize(v.y, v.x, 1, v.width+1+LabelWidth), core.EmptyCell())
	if !v.visible || v.width == 0 {
		return
	}

	thumb := v.thumbCellLocked()
	empty := core.NewStyle(v.theme.Empty)

	for i := 0; i < v.width; i++ {
		var cell core.Cell
		switch {
		case i < thumb:
			cell = core.NewStyledCell(FilledRune, core.NewStyle(v.gradientLocked(i)))
		case i == thumb:
			cell = core.NewStyledCell(ThumbRune, core.NewStyle(v.theme.Thumb).Bold())
		default:
			cell = core.NewStyledCell(EmptyRune, empty)
		}
		b.SetCell(v.x+i, v.y, cell)
	}

	col := v.x + v.width + 1
	for _, r := range v.label {
		if col >= v.x+v.width+1+LabelWidth {
			break
		}
		cell := core.NewStyledCell(r, core.DefaultStyle())
		b.SetCell(col, v.y, cell)
		col += max(cell.Width, 1)
	}
}

// gradientLocked returns the fill color of track cell i.
func (v *View) gradientLocked(i int) core.Color {
	if v.width <= 1 {
		return v.theme.FillStart
	}
	return v.theme.FillStart.Blend(v.theme.FillEnd, float64(i)/float64(v.width-1))
}
