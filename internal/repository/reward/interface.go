package reward

import (
	"context"

	"go-feedback-triage/internal/model"
)

type IRepository interface {
	ListActive(ctx context.Context, establishmentId string) ([]model.RewardOption, error)
	Upsert(ctx context.Context, establishmentId string, data []model.RewardOption) error
}
