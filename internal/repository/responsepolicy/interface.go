package responsepolicy

import (
	"context"

	"go-feedback-triage/internal/model"
)

type IRepository interface {
	Get(ctx context.Context, establishmentId string) (model.ResponsePolicy, error)
	Save(ctx context.Context, data model.ResponsePolicy) error
}
