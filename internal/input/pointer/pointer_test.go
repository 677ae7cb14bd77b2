package pointer

import (
	"context"
	"testing"
	"time"

	"github.com/dshills/trackbar/internal/event"
)

type recorder struct {
	events []event.Event[Event]
}

func (r *recorder) Publish(ctx context.Context, ev any) error {
	r.events = append(r.events, ev.(event.Event[Event]))
	return nil
}

func newTestRouter() (*Router, *recorder) {
	rec := &recorder{}
	r := NewRouter(rec)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }
	return r, rec
}

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindNone, "none"},
		{Down, "down"},
		{Move, "move"},
		{Up, "up"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestTopics(t *testing.T) {
	if got := DownTopic("volume"); got != "pointer.volume.down" {
		t.Errorf("DownTopic = %s", got)
	}
	if got := MoveTopic(); got != "pointer.window.move" {
		t.Errorf("MoveTopic = %s", got)
	}
	if got := UpTopic(); got != "pointer.window.up" {
		t.Errorf("UpTopic = %s", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 5, Width: 4, Height: 1}

	tests := []struct {
		p    Position
		want bool
	}{
		{Position{10, 5}, true},
		{Position{13, 5}, true},
		{Position{14, 5}, false},
		{Position{9, 5}, false},
		{Position{10, 6}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRouter_Gesture(t *testing.T) {
	r, rec := newTestRouter()
	if err := r.Register("volume", Rect{X: 0, Y: 0, Width: 10, Height: 1}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	ctx := context.Background()

	_ = r.Feed(ctx, 3, 0, ButtonLeft)  // down on track
	_ = r.Feed(ctx, 3, 0, ButtonLeft)  // same position, no move
	_ = r.Feed(ctx, 20, 4, ButtonLeft) // drag outside the track
	_ = r.Feed(ctx, 20, 4, ButtonNone) // release outside

	if len(rec.events) != 3 {
		t.Fatalf("published %d events, want 3", len(rec.events))
	}

	down := rec.events[0]
	if down.Type != DownTopic("volume") || down.Payload.Kind != Down || down.Payload.Target != "volume" {
		t.Errorf("unexpected down event %+v", down)
	}
	move := rec.events[1]
	if move.Type != MoveTopic() || move.Payload.Position != (Position{20, 4}) {
		t.Errorf("unexpected move event %+v", move)
	}
	up := rec.events[2]
	if up.Type != UpTopic() || up.Payload.Button != ButtonLeft {
		t.Errorf("unexpected up event %+v", up)
	}
	if r.Pressed() != ButtonNone {
		t.Error("expected no button held after release")
	}
}

func TestRouter_PressOutsideRegions(t *testing.T) {
	r, rec := newTestRouter()
	_ = r.Register("volume", Rect{X: 0, Y: 0, Width: 10, Height: 1})
	ctx := context.Background()

	_ = r.Feed(ctx, 3, 5, ButtonLeft)
	if len(rec.events) != 0 {
		t.Fatalf("press outside regions published %d events", len(rec.events))
	}

	// Moves and release still reach the window scope.
	_ = r.Feed(ctx, 4, 5, ButtonLeft)
	_ = r.Feed(ctx, 4, 5, ButtonNone)
	if len(rec.events) != 2 {
		t.Fatalf("published %d events, want 2", len(rec.events))
	}
}

func TestRouter_HoverNotPublished(t *testing.T) {
	r, rec := newTestRouter()
	ctx := context.Background()

	_ = r.Feed(ctx, 1, 1, ButtonNone)
	_ = r.Feed(ctx, 2, 1, ButtonNone)

	if len(rec.events) != 0 {
		t.Errorf("hover published %d events", len(rec.events))
	}
}

func TestRouter_TopmostRegionWins(t *testing.T) {
	r, rec := newTestRouter()
	_ = r.Register("below", Rect{X: 0, Y: 0, Width: 10, Height: 1})
	_ = r.Register("above", Rect{X: 5, Y: 0, Width: 10, Height: 1})

	_ = r.Feed(context.Background(), 6, 0, ButtonLeft)

	if len(rec.events) != 1 || rec.events[0].Payload.Target != "above" {
		t.Fatalf("unexpected events %+v", rec.events)
	}
}

func TestRouter_RegisterReplacesAndUnregister(t *testing.T) {
	r, rec := newTestRouter()
	ctx := context.Background()

	_ = r.Register("volume", Rect{X: 0, Y: 0, Width: 2, Height: 1})
	_ = r.Register("volume", Rect{X: 10, Y: 0, Width: 2, Height: 1})

	_ = r.Feed(ctx, 0, 0, ButtonLeft)
	_ = r.Feed(ctx, 0, 0, ButtonNone)
	_ = r.Feed(ctx, 10, 0, ButtonLeft)
	_ = r.Feed(ctx, 10, 0, ButtonNone)

	downs := 0
	for _, ev := range rec.events {
		if ev.Payload.Kind == Down {
			downs++
		}
	}
	if downs != 1 {
		t.Errorf("downs = %d, want 1 (old rect replaced)", downs)
	}

	r.Unregister("volume")
	r.Unregister("missing")
	rec.events = nil
	_ = r.Feed(ctx, 10, 0, ButtonLeft)
	if len(rec.events) != 0 {
		t.Error("unregistered region should not receive presses")
	}
}

func TestRouter_RegisterRejectsReservedTargets(t *testing.T) {
	r, _ := newTestRouter()
	for _, target := range []string{"", WindowTarget, "a..b"} {
		if err := r.Register(target, Rect{}); err == nil {
			t.Errorf("Register(%q) should fail", target)
		}
	}
}

func TestRouter_Reset(t *testing.T) {
	r, rec := newTestRouter()
	ctx := context.Background()

	_ = r.Feed(ctx, 0, 0, ButtonLeft)
	r.Reset()
	_ = r.Feed(ctx, 0, 0, ButtonNone)

	if len(rec.events) != 0 {
		t.Errorf("release after Reset published %d events", len(rec.events))
	}
}

func TestFromEvent(t *testing.T) {
	p := Event{Kind: Move, Position: Position{X: 1}}

	if got, ok := FromEvent(p); !ok || got.Kind != Move {
		t.Error("FromEvent(raw payload) failed")
	}
	wrapped := event.NewEvent(MoveTopic(), p, "test")
	if got, ok := FromEvent(wrapped); !ok || got.Position.X != 1 {
		t.Error("FromEvent(bus event) failed")
	}
	if _, ok := FromEvent("nope"); ok {
		t.Error("FromEvent(string) should fail")
	}
}

func TestPrimaryOnly(t *testing.T) {
	tests := []struct {
		ev   any
		want bool
	}{
		{event.NewEvent(DownTopic("track"), Event{Button: ButtonLeft}, "test"), true},
		{event.NewEvent(DownTopic("track"), Event{Button: ButtonRight}, "test"), false},
		{Event{Button: ButtonMiddle}, false},
		{"not a pointer event", false},
	}
	for i, tt := range tests {
		if got := PrimaryOnly(tt.ev); got != tt.want {
			t.Errorf("case %d: PrimaryOnly() = %v, want %v", i, got, tt.want)
		}
	}
}
