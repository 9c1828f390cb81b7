// Package notify fans state-change notifications out to views.
package notify

import "sync"

type Topic string

const (
	TopicTimer    Topic = "timer"
	TopicLedger   Topic = "ledger"
	TopicSyllabus Topic = "syllabus"
	TopicStats    Topic = "stats"
	TopicReset    Topic = "reset"
)

// Publisher is the narrow side handed to services.
type Publisher interface {
	Publish(topic Topic)
}

// Bus delivers every published topic to all subscribers, synchronously and in
// subscription order. Handlers must not subscribe or unsubscribe from within a callback.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(Topic)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Topic)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	fns := make([]func(Topic), len(b.subs))
	for i, s := range b.subs {
		fns[i] = s.fn
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(topic)
	}
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Publish(Topic) {}
