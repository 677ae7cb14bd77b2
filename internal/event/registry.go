package event

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dshills/trackbar/internal/event/topic"
)

// registry indexes listeners by ID. Lookups return copies so that Publish
// can run handlers without holding the lock.
type registry struct {
	mu        sync.RWMutex
	listeners map[string]*listener
	next      uint64
}

func newRegistry() *registry {
	return &registry{listeners: make(map[string]*listener)}
}

func (r *registry) add(l *listener) {
	r.mu.Lock()
	r.next++
	l.seq = r.next
	r.listeners[l.id] = l
	r.mu.Unlock()
}

// remove reports whether the listener was still registered.
func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listeners[id]; !ok {
		return false
	}
	delete(r.listeners, id)
	return true
}

// matching returns the active listeners for t in delivery order.
func (r *registry) matching(t topic.Topic) []*listener {
	r.mu.RLock()
	var out []*listener
	for _, l := range r.listeners {
		if l.Active() && t.Matches(l.pattern) {
			out = append(out, l)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *listener) int {
		if c := cmp.Compare(a.priority, b.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return out
}

// count returns the number of listeners registered with exactly pattern,
// or every active listener when pattern is empty.
func (r *registry) count(pattern topic.Topic) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, l := range r.listeners {
		if !l.Active() {
			continue
		}
		if pattern == "" || l.pattern == pattern {
			n++
		}
	}
	return n
}
