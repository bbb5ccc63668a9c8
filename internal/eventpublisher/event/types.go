package event

type (
	// Event carries either a message or the error that stopped its source.
	Event[T any] struct {
		Message T
		Err     error
	}

	Channel[T any]  chan Event[T]
	WChannel[T any] chan<- Event[T]
)
