package pointer

import (
	"time"

	"github.com/dshills/trackbar/internal/event"
	"github.com/dshills/trackbar/internal/event/topic"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Kind is the gesture phase an event belongs to.
type Kind uint8

const (
	KindNone Kind = iota
	Down
	Move
	Up
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "none"
	}
}

// Position represents a screen coordinate in cells.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Rect is a hit-test region. Width and Height are in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Event is the payload published for every pointer transition.
type Event struct {
	Position  Position
	Button    Button
	Kind      Kind
	Target    string
	Timestamp time.Time
}

// WindowTarget is the scope that receives moves and releases.
const WindowTarget = "window"

const source = "pointer"

var root = topic.Topic("pointer")

// DownTopic returns the topic a region's presses are published on.
func DownTopic(target string) topic.Topic {
	return root.Child(target).Child(Down.String())
}

// MoveTopic returns the window-scoped move topic.
func MoveTopic() topic.Topic {
	return root.Child(WindowTarget).Child(Move.String())
}

// UpTopic returns the window-scoped release topic.
func UpTopic() topic.Topic {
	return root.Child(WindowTarget).Child(Up.String())
}

// FromEvent extracts a pointer Event from a type-erased bus event.
func FromEvent(ev any) (Event, bool) {
	if e, ok := ev.(Event); ok {
		return e, true
	}
	return event.Payload[Event](ev)
}

// PrimaryOnly is a bus filter that accepts only left-button pointer events.
func PrimaryOnly(ev any) bool {
	p, ok := FromEvent(ev)
	return ok && p.Button == ButtonLeft
}
