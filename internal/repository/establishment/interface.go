package establishment

import (
	"context"

	"go-feedback-triage/internal/model"
)

type IRepository interface {
	GetById(ctx context.Context, id string) (*model.Establishment, error)
	GetByShortCode(ctx context.Context, code string) (*model.Establishment, error)
	Create(ctx context.Context, data model.Establishment) error
}
