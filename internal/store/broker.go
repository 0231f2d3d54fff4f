package store

import (
	"sync"

	"github.com/gilboash/printlink/internal/metrics"
)

// entry is one registered callback. Its own lock serializes delivery with
// cancellation: cancel flips closed under the lock, so once cancel returns no
// further callback runs and none is in flight. A callback must not cancel its
// own subscription; it may freely register or cancel others.
type entry struct {
	collection string // empty for watchers
	notify     func()
	watch      func(Event)

	mu     sync.Mutex
	closed bool
}

func (e *entry) deliver(evt Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.watch != nil {
		e.watch(evt)
		return
	}
	e.notify()
}

// Broker fans mutation events out to collection subscribers and firehose
// watchers. The broker lock only guards the registry; delivery happens
// outside it, so callbacks may touch the store.
type Broker struct {
	mu      sync.Mutex
	entries map[int]*entry
	next    int
}

func NewBroker() *Broker {
	return &Broker{entries: make(map[int]*entry)}
}

func (b *Broker) Subscribe(collection string, notify func()) func() {
	e := &entry{collection: collection, notify: notify}
	id := b.register(e)
	metrics.ActiveSubscriptions.Inc()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			e.closed = true
			e.mu.Unlock()
			b.remove(id)
			metrics.ActiveSubscriptions.Dec()
		})
	}
}

func (b *Broker) Watch(fn func(Event)) func() {
	e := &entry{watch: fn}
	id := b.register(e)

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			e.closed = true
			e.mu.Unlock()
			b.remove(id)
		})
	}
}

func (b *Broker) Publish(evt Event) {
	b.mu.Lock()
	targets := make([]*entry, 0, len(b.entries))
	for _, e := range b.entries {
		if e.watch != nil || e.collection == evt.Collection {
			targets = append(targets, e)
		}
	}
	b.mu.Unlock()

	for _, e := range targets {
		e.deliver(evt)
	}
}

func (b *Broker) register(e *entry) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.entries[id] = e
	return id
}

func (b *Broker) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, id)
}
