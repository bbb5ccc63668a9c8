package review

import (
	"context"

	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/repository/filter"
)

type ReviewEvent struct {
	Review model.Review
	Err    error
}

type IRepository interface {
	Create(ctx context.Context, data model.Review) (model.Review, error)
	GetById(ctx context.Context, id string) (*model.Review, error)
	AttachDraft(ctx context.Context, id string, draft model.DraftReply) error
	MarkProcessed(ctx context.Context, id string) error
	NotifyOnAdded(ctx context.Context, where []filter.Where) <-chan ReviewEvent
}
