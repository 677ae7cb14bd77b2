package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/trackbar/internal/renderer/core"
)

// Terminal is the tcell-backed Backend used by the trackbar command.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal opens the controlling terminal. Nothing is drawn until Init.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// Init enters the alternate screen and turns on press and drag reports.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseDragEvents)
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, cell.Rune, nil, styleOf(cell.Style))
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	style := styleOf(cell.Style)
	for y := max(rect.Top, 0); y < min(rect.Bottom, h); y++ {
		for x := max(rect.Left, 0); x < min(rect.Right, w); x++ {
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

// PollEvent blocks on tcell. After Fini tcell yields nil, reported here
// as EventInterrupt.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventInterrupt}
	}
	return translate(ev)
}

func styleOf(s core.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(colorOf(s.Foreground)).
		Background(colorOf(s.Background)).
		Bold(s.Attributes.Has(core.AttrBold)).
		Dim(s.Attributes.Has(core.AttrDim)).
		Underline(s.Attributes.Has(core.AttrUnderline)).
		Reverse(s.Attributes.Has(core.AttrReverse))
}

func colorOf(c core.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func translate(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{Type: EventMouse, X: x, Y: y, Button: buttonOf(e.Buttons())}
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: keyOf(e.Key()), Rune: e.Rune()}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}
	}
	return Event{}
}

var keys = map[tcell.Key]Key{
	tcell.KeyRune:   KeyRune,
	tcell.KeyEscape: KeyEscape,
	tcell.KeyCtrlC:  KeyCtrlC,
}

func keyOf(k tcell.Key) Key {
	return keys[k]
}

// buttonOf picks one button from tcell's mask. tcell numbers the right
// button 2 and the middle button 3.
func buttonOf(mask tcell.ButtonMask) MouseButton {
	switch {
	case mask&tcell.Button1 != 0:
		return MouseLeft
	case mask&tcell.Button2 != 0:
		return MouseRight
	case mask&tcell.Button3 != 0:
		return MouseMiddle
	case mask&tcell.WheelUp != 0:
		return MouseWheelUp
	case mask&tcell.WheelDown != 0:
		return MouseWheelDown
	}
	return MouseNone
}
