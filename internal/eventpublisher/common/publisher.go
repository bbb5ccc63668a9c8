package common

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-feedback-triage/internal/eventpublisher/event"
)

var ErrWriteFailure = fmt.Errorf("write failure threshold exceeded")

// PublisherWithFailureThreshold writes to a subscriber with a timeout and gives up on it once it
// missed writeFailureThreshold events.
type PublisherWithFailureThreshold[T any] struct {
	writeTimeout          time.Duration
	writeFailureThreshold int
	failureCount          map[event.WChannel[T]]int
	failureMu             sync.Mutex
}

func NewPublisherWithFailureThreshold[T any](writeTimeout time.Duration, writeFailureThreshold int) *PublisherWithFailureThreshold[T] {
	return &PublisherWithFailureThreshold[T]{
		writeTimeout:          writeTimeout,
		writeFailureThreshold: writeFailureThreshold,
		failureCount:          make(map[event.WChannel[T]]int),
	}
}

func (p *PublisherWithFailureThreshold[T]) Publish(ctx context.Context, subscriber event.WChannel[T], e event.Event[T]) (err error) {

	defer func() {
		// The subscriber may be closed by a concurrent Unsubscribe after reaching the threshold.
		// Writing to it panics, which is reported as a write failure.
		if r := recover(); r != nil {
			err = ErrWriteFailure
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	select {
	case subscriber <- e:
		return nil
	case <-ctx.Done():
		p.failureMu.Lock()
		count := p.failureCount[subscriber] + 1
		p.failureCount[subscriber] = count
		p.failureMu.Unlock()

		if count >= p.writeFailureThreshold {
			return ErrWriteFailure
		}
		return nil
	}
}

// Forget drops the failure count of a subscriber that left.
func (p *PublisherWithFailureThreshold[T]) Forget(subscriber event.WChannel[T]) {
	p.failureMu.Lock()
	defer p.failureMu.Unlock()
	delete(p.failureCount, subscriber)
}
