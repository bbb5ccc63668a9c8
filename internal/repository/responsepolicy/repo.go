package responsepolicy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-feedback-triage/internal/database"
	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/model"
)

type ResponsePolicyRepository struct {
	db database.Client
}

var _ IRepository = ResponsePolicyRepository{}

func New(db database.Client) ResponsePolicyRepository {
	return ResponsePolicyRepository{
		db: db,
	}
}

// Get falls back to model.DefaultResponsePolicy when the establishment never saved one.
func (r ResponsePolicyRepository) Get(ctx context.Context, establishmentId string) (model.ResponsePolicy, error) {
	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(responsePolicyNode).Doc(establishmentId))
	if err != nil {
		if errors.Is(err, database.ErrDocNotExist) {
			return model.DefaultResponsePolicy(establishmentId), nil
		}
		return model.ResponsePolicy{}, fmt.Errorf("get response policy: %w, id: %s", err, establishmentId)
	}

	policy := model.ResponsePolicy{}
	if err := docSnap.DataTo(&policy); err != nil {
		return model.ResponsePolicy{}, fmt.Errorf("get response policy: %w, id: %s", err, establishmentId)
	}
	policy.EstablishmentId = establishmentId
	if policy.Tone == "" {
		policy.Tone = model.ToneFriendly
	}
	return policy, nil
}

func (r ResponsePolicyRepository) Save(ctx context.Context, data model.ResponsePolicy) error {
	if data.EstablishmentId == "" {
		return fmt.Errorf("%w: response policy without establishment", ierr.InvalidInput)
	}
	if data.Tone != "" && !data.Tone.Valid() {
		return fmt.Errorf("%w: unknown tone %q", ierr.InvalidInput, data.Tone)
	}

	data.UpdatedAt = time.Now().UTC()
	docRef := r.db.Collection(responsePolicyNode).Doc(data.EstablishmentId)
	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return fmt.Errorf("save response policy: %w, id: %s", err, data.EstablishmentId)
	}
	return nil
}
