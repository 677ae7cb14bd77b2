package backend

import (
	"sync"

	"github.com/dshills/trackbar/internal/renderer/core"
)

// Memory is an off-screen Backend. Input is injected with Post and the
// drawn cells can be read back, which makes it the backend of choice in
// tests and for headless runs.
type Memory struct {
	mu     sync.Mutex
	width  int
	height int
	cells  [][]core.Cell
	frames int

	input    chan Event
	quit     chan struct{}
	quitOnce sync.Once
}

// NewMemory returns a blank width x height screen with room for 64
// pending input events.
func NewMemory(width, height int) *Memory {
	m := &Memory{
		width:  width,
		height: height,
		input:  make(chan Event, 64),
		quit:   make(chan struct{}),
	}
	m.blank()
	return m
}

func (m *Memory) blank() {
	m.cells = make([][]core.Cell, m.height)
	for y := range m.cells {
		row := make([]core.Cell, m.width)
		for x := range row {
			row[x] = core.EmptyCell()
		}
		m.cells[y] = row
	}
}

// Init clears the screen.
func (m *Memory) Init() error {
	m.mu.Lock()
	m.blank()
	m.mu.Unlock()
	return nil
}

func (m *Memory) Shutdown() {
	m.quitOnce.Do(func() { close(m.quit) })
}

func (m *Memory) inside(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *Memory) SetCell(x, y int, cell core.Cell) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inside(x, y) {
		m.cells[y][x] = cell
	}
}

func (m *Memory) Fill(rect core.ScreenRect, cell core.Cell) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for y := max(rect.Top, 0); y < min(rect.Bottom, m.height); y++ {
		for x := max(rect.Left, 0); x < min(rect.Right, m.width); x++ {
			m.cells[y][x] = cell
		}
	}
}

func (m *Memory) Show() {
	m.mu.Lock()
	m.frames++
	m.mu.Unlock()
}

func (m *Memory) PollEvent() Event {
	select {
	case <-m.quit:
		return Event{Type: EventInterrupt}
	default:
	}
	select {
	case ev := <-m.input:
		return ev
	case <-m.quit:
		return Event{Type: EventInterrupt}
	}
}

// Post queues an input event. It reports false when the queue is full.
func (m *Memory) Post(ev Event) bool {
	select {
	case m.input <- ev:
		return true
	default:
		return false
	}
}

// Frames returns how many times Show was called.
func (m *Memory) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Cell returns the cell at (x, y), or an empty cell off screen.
func (m *Memory) Cell(x, y int) core.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.inside(x, y) {
		return core.EmptyCell()
	}
	return m.cells[y][x]
}

// Row returns the runes of row y as a string.
func (m *Memory) Row(y int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if y < 0 || y >= m.height {
		return ""
	}
	runes := make([]rune, len(m.cells[y]))
	for x, c := range m.cells[y] {
		runes[x] = c.Rune
	}
	return string(runes)
}
