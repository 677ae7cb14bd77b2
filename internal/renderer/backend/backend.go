// Package backend connects the slider host to a screen: widgets paint cells
// onto a Canvas and the host reads terminal input back as Events.
package backend

import "github.com/dshills/trackbar/internal/renderer/core"

// EventType tells which fields of an Event are meaningful.
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	// EventInterrupt is reported once the backend has been shut down.
	EventInterrupt
)

// Event is one input report.
type Event struct {
	Type EventType

	Key  Key
	Rune rune

	// X, Y and Button describe a mouse report. Button is what is held at
	// report time, so MouseNone means released or plain motion.
	X, Y   int
	Button MouseButton

	Width, Height int
}

// Key is a keyboard key the host reacts to.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune // see Event.Rune
	KeyEscape
	KeyCtrlC
)

// MouseButton is the button reported with a mouse event.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Canvas is what a widget draws on. Cells outside the screen are dropped.
type Canvas interface {
	SetCell(x, y int, cell core.Cell)
	Fill(rect core.ScreenRect, cell core.Cell)
}

// Backend is a Canvas bound to a screen and its input stream.
type Backend interface {
	Canvas

	Init() error

	// Shutdown releases the screen. A PollEvent blocked at that moment,
	// and every later one, returns EventInterrupt.
	Shutdown()

	// Show flushes everything drawn since the last call.
	Show()

	PollEvent() Event
}
