// Package pubsub fans events out to in-process subscribers.
package pubsub

import (
	"context"
	"sync"
)

// Broker delivers events published on a topic to every live subscriber of
// that topic. Slow subscribers drop events instead of blocking publishers.
type Broker[T any] struct {
	mu     sync.Mutex
	subs   map[string]map[*subscriber[T]]struct{}
	buffer int
}

type subscriber[T any] struct {
	ch chan T
}

// NewBroker returns a broker whose subscriber channels hold buffer events.
func NewBroker[T any](buffer int) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[string]map[*subscriber[T]]struct{}),
		buffer: buffer,
	}
}

// Subscribe returns a channel receiving the events of topic until ctx is
// done, at which point the channel is closed.
func (b *Broker[T]) Subscribe(ctx context.Context, topic string) <-chan T {
	sub := &subscriber[T]{ch: make(chan T, b.buffer)}

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*subscriber[T]]struct{})
	}
	b.subs[topic][sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()

		b.mu.Lock()
		delete(b.subs[topic], sub)
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
		close(sub.ch)
		b.mu.Unlock()
	}()

	return sub.ch
}

// Publish sends event to the current subscribers of topic and reports how
// many received it.
func (b *Broker[T]) Publish(topic string, event T) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for sub := range b.subs[topic] {
		select {
		case sub.ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers returns the number of live subscribers of topic.
func (b *Broker[T]) Subscribers(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
