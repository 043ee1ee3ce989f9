package viewer

import (
	"sync"
	"sync/atomic"
)

const defaultBroadcastBuffer = 16

// ChangeEvent is what a Broadcaster delivers to viewer clients when the
// watched note changes.
type ChangeEvent struct {
	Path string
}

// Broadcaster fans out values of type T to subscribers, generalized
// from log.Publisher's []byte fan-out to an arbitrary payload: each
// Publish copies nothing (T is passed by value) and delivers it to
// every active Subscription via a buffered channel with ring-buffer
// semantics — when a subscriber's channel is full the oldest entry is
// dropped so Publish never blocks. Safe for concurrent use.
type Broadcaster[T any] struct {
	subscribers []*Subscription[T]
	bufSize     int
	mu          sync.Mutex
	closed      bool
}

// NewBroadcaster creates a Broadcaster with the default buffer size.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{bufSize: defaultBroadcastBuffer}
}

// Publish delivers v to all active subscribers. Closed subscriptions
// are compacted out of the subscriber list.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	alive := b.subscribers[:0]
	for _, sub := range b.subscribers {
		if sub.closed.Load() {
			close(sub.ch)
			continue
		}

		select {
		case sub.ch <- v:
		default:
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- v
		}

		alive = append(alive, sub)
	}

	for i := len(alive); i < len(b.subscribers); i++ {
		b.subscribers[i] = nil
	}

	b.subscribers = alive
}

// Subscribe creates and registers a new Subscription. If the
// Broadcaster is already closed the returned subscription's channel is
// immediately closed.
func (b *Broadcaster[T]) Subscribe() *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription[T]{ch: make(chan T, b.bufSize)}

	if b.closed {
		close(sub.ch)
		return sub
	}

	b.subscribers = append(b.subscribers, sub)

	return sub
}

// Close marks the Broadcaster as closed, closes all subscription
// channels, and releases the subscriber list. Idempotent.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	for _, sub := range b.subscribers {
		close(sub.ch)
	}

	b.subscribers = nil
}

// Subscription receives values from a Broadcaster.
type Subscription[T any] struct {
	ch     chan T
	closed atomic.Bool
}

// C returns the read-only channel that delivers values.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Close marks the subscription as closed. The Broadcaster closes the
// underlying channel on its next Publish or Close call. Idempotent.
func (s *Subscription[T]) Close() {
	s.closed.Store(true)
}
