package errors

import (
	"errors"
	"fmt"
)

var (
	NotFound     = errors.New("not found")
	InvalidInput = errors.New("invalid input")

	// InvalidRating is returned for a rating of 0 or outside 1..5.
	InvalidRating = fmt.Errorf("%w: invalid-rating", InvalidInput)
)

// PersistenceFailure aborts the current request. The caller should retry the whole submission.
type PersistenceFailure struct {
	Op  string
	Err error
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("persistence failure: %s: %v", e.Op, e.Err)
}

func (e *PersistenceFailure) Unwrap() error { return e.Err }

const (
	ReasonEmptyCompletion    = "empty-completion"
	ReasonServiceUnavailable = "service-unavailable"
)

type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generation error: %s", e.Reason)
	}
	return fmt.Sprintf("generation error: %s: %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NotificationFailure is only ever logged.
type NotificationFailure struct {
	Recipient string
	Err       error
}

func (e *NotificationFailure) Error() string {
	return fmt.Sprintf("notification to %s failed: %v", e.Recipient, e.Err)
}

func (e *NotificationFailure) Unwrap() error { return e.Err }
