package review

import (
	"context"

	"go-feedback-triage/internal/repository/filter"
	"go-feedback-triage/internal/repository/ops"
	reviewRepo "go-feedback-triage/internal/repository/review"
)

type Factory interface {
	OnReviewCreated() ReviewPublisher
}

type factory struct {
	repo reviewRepo.IRepository
}

func ReviewPublisherFactory(reviewRepo reviewRepo.IRepository) Factory {
	return &factory{
		repo: reviewRepo,
	}
}

// OnReviewCreated publishes reviews the triage has not processed yet. On start the listener
// replays every unprocessed review, which covers the ones created while the service was down.
func (f *factory) OnReviewCreated() ReviewPublisher {
	return newPublisher(func(ctx context.Context) <-chan reviewRepo.ReviewEvent {
		return f.repo.NotifyOnAdded(ctx,
			[]filter.Where{{Path: reviewRepo.ProcessedFieldPath, Op: ops.Equal, Value: false}})
	})
}
