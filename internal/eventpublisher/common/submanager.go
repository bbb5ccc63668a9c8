package common

import (
	"sync"

	"go-feedback-triage/internal/eventpublisher/event"
)

type SubManager[T any] struct {
	subscribers    map[event.WChannel[T]]struct{}
	subscriptionMu sync.RWMutex
}

func NewSubManager[T any]() *SubManager[T] {
	return &SubManager[T]{
		subscribers: make(map[event.WChannel[T]]struct{}),
	}
}

func (m *SubManager[T]) Subscribe(subscriber event.WChannel[T]) {
	m.subscriptionMu.Lock()
	defer m.subscriptionMu.Unlock()

	if _, ok := m.subscribers[subscriber]; !ok {
		m.subscribers[subscriber] = struct{}{}
	}
}

// Unsubscribe removes and closes the subscriber. It reports whether the subscriber was known.
func (m *SubManager[T]) Unsubscribe(subscriber event.WChannel[T]) bool {
	m.subscriptionMu.Lock()
	defer m.subscriptionMu.Unlock()

	// only act on the subscribed channels
	if _, ok := m.subscribers[subscriber]; !ok {
		return false
	}
	delete(m.subscribers, subscriber)
	close(subscriber)
	return true
}

func (m *SubManager[T]) UnsubscribeAll() {
	for _, subscriber := range m.snapshot() {
		m.Unsubscribe(subscriber)
	}
}

func (m *SubManager[T]) Len() int {
	m.subscriptionMu.RLock()
	defer m.subscriptionMu.RUnlock()
	return len(m.subscribers)
}

func (m *SubManager[T]) OnSubscribers(do func(event.WChannel[T])) {
	// 'do' may unsubscribe, so iterate over a copy taken under the read lock.
	for _, subscriber := range m.snapshot() {
		do(subscriber)
	}
}

func (m *SubManager[T]) snapshot() []event.WChannel[T] {
	m.subscriptionMu.RLock()
	defer m.subscriptionMu.RUnlock()

	subs := make([]event.WChannel[T], 0, len(m.subscribers))
	for subscriber := range m.subscribers {
		subs = append(subs, subscriber)
	}
	return subs
}
