package board

import (
	"sync"

	"github.com/matzehuels/tileboard/pkg/geom"
)

// SizeObserver reports size changes of the editing surface. Observe delivers
// every change to fn until stop is called.
type SizeObserver interface {
	Observe(fn func(geom.Bounds)) (stop func())
}

// ClickListener reports clicks that land outside any tile.
type ClickListener interface {
	OnClick(fn func()) (remove func())
}

// BoundsTracker holds at most one observation of a [SizeObserver].
type BoundsTracker struct {
	stop func()
}

// Start subscribes publish to obs. It does nothing if the tracker is already
// observing or obs is nil.
func (t *BoundsTracker) Start(obs SizeObserver, publish func(geom.Bounds)) {
	if t.stop != nil || obs == nil {
		return
	}
	t.stop = obs.Observe(publish)
	if t.stop == nil {
		t.stop = func() {}
	}
}

// Stop releases the observation. It is safe to call more than once.
func (t *BoundsTracker) Stop() {
	if t.stop == nil {
		return
	}
	stop := t.stop
	t.stop = nil
	stop()
}

// Observing reports whether the tracker holds an observation.
func (t *BoundsTracker) Observing() bool { return t.stop != nil }

// subscribers is a registry of callbacks keyed by subscription order.
type subscribers[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
}

func (s *subscribers[T]) add(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func(T))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *subscribers[T]) snapshot() []func(T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]func(T), 0, len(s.fns))
	for i := 0; i < s.next; i++ {
		if fn, ok := s.fns[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (s *subscribers[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

// SizeFeed is a [SizeObserver] fed by the surface that knows its own size.
// A new observer receives the last published size immediately.
type SizeFeed struct {
	subs subscribers[geom.Bounds]

	mu   sync.Mutex
	last *geom.Bounds
}

// Observe implements [SizeObserver].
func (f *SizeFeed) Observe(fn func(geom.Bounds)) func() {
	stop := f.subs.add(fn)
	f.mu.Lock()
	last := f.last
	f.mu.Unlock()
	if last != nil {
		fn(*last)
	}
	return stop
}

// Publish delivers b to every observer.
func (f *SizeFeed) Publish(b geom.Bounds) {
	f.mu.Lock()
	f.last = &b
	f.mu.Unlock()
	for _, fn := range f.subs.snapshot() {
		fn(b)
	}
}

// Observers returns the number of active observers.
func (f *SizeFeed) Observers() int { return f.subs.len() }

// ClickFeed is a [ClickListener] fed by the surface's background.
type ClickFeed struct {
	subs subscribers[struct{}]
}

// OnClick implements [ClickListener].
func (f *ClickFeed) OnClick(fn func()) func() {
	return f.subs.add(func(struct{}) { fn() })
}

// Click delivers a background click to every listener.
func (f *ClickFeed) Click() {
	for _, fn := range f.subs.snapshot() {
		fn(struct{}{})
	}
}

// Listeners returns the number of active listeners.
func (f *ClickFeed) Listeners() int { return f.subs.len() }

var (
	_ SizeObserver  = (*SizeFeed)(nil)
	_ ClickListener = (*ClickFeed)(nil)
)
