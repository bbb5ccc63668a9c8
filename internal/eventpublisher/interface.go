package eventpublisher

import (
	"go-feedback-triage/internal/eventpublisher/event"
)

type Publisher[T any] interface {
	Subscribe(event.WChannel[T])
	Unsubscribe(event.WChannel[T])
}
