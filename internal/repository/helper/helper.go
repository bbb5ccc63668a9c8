package helper

import (
	"context"
	"time"

	"go-feedback-triage/internal/database"
	"go-feedback-triage/internal/repository/filter"

	"cloud.google.com/go/firestore"
)

// NotifyOnChanges applies the where clauses to the query, listens to its snapshots and calls fn for
// every change of the given kind. It returns when the listener closes, fn returns an error or the
// listener reports one (which is passed to fn first).
func NotifyOnChanges(ctx context.Context, db database.Client, query firestore.Query,
	where []filter.Where, kind firestore.DocumentChangeKind, fn func(firestore.DocumentChange, error) error) {

	for _, w := range where {
		query = query.Where(w.Path, w.Op, w.Value)
	}

	events := db.NotifyOnChanges(ctx, query.Snapshots(ctx), kind)

	for e := range events {
		if e.Err != nil {
			fn(e.Change, e.Err)
			return
		}

		if err := fn(e.Change, nil); err != nil {
			return
		}
	}
}

// NonblockingWrite is a generic function that can write any type of event to any channel type.
// T is the type parameter for the event.
func NonblockingWrite[T any](ctx context.Context, timeout time.Duration, ch chan<- T, event T) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
