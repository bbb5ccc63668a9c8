package reward

import (
	"context"
	"fmt"
	"time"

	"go-feedback-triage/internal/database"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/utils"

	"cloud.google.com/go/firestore"
)

type RewardRepository struct {
	db database.Client
}

var _ IRepository = RewardRepository{}

func New(db database.Client) RewardRepository {
	return RewardRepository{
		db: db,
	}
}

// ListActive returns the active options in insertion order. The active filter is applied in memory
// so the query only needs the single-field createdAt index.
func (r RewardRepository) ListActive(ctx context.Context, establishmentId string) ([]model.RewardOption, error) {
	query := r.collection(establishmentId).OrderBy(CreatedAtFieldPath, firestore.Asc)

	options := make([]model.RewardOption, 0)
	err := r.db.IterDocs(ctx, query, func(ds *firestore.DocumentSnapshot) error {
		o := model.RewardOption{}
		if err := ds.DataTo(&o); err != nil {
			return err
		}
		if o.Active {
			options = append(options, o)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list active rewards: %w, establishment: %s", err, establishmentId)
	}

	return options, nil
}

// Upsert writes the options in one batch. Options without an id get one derived from their name,
// so seeding the same table twice overwrites instead of duplicating.
func (r RewardRepository) Upsert(ctx context.Context, establishmentId string, data []model.RewardOption) error {
	now := time.Now().UTC()
	batch := make([]database.DataBatch, 0, len(data))
	for i, o := range data {
		if o.Id == "" {
			o.Id = utils.Hash(establishmentId, o.Name)
		}
		if o.Weight < 0 {
			return fmt.Errorf("upsert rewards: negative weight for %q", o.Name)
		}
		if o.CreatedAt.IsZero() {
			// keep the given order stable
			o.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		}
		batch = append(batch, database.DataBatch{
			DocRef: r.collection(establishmentId).Doc(o.Id),
			Data:   o,
		})
	}

	if _, err := r.db.SetDocs(ctx, batch); err != nil {
		return fmt.Errorf("upsert rewards: %w, establishment: %s", err, establishmentId)
	}
	return nil
}

func (r RewardRepository) collection(establishmentId string) *firestore.CollectionRef {
	return r.db.Collection(establishmentNode).Doc(establishmentId).Collection(rewardNode)
}
