package establishment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-feedback-triage/internal/database"
	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/repository/ops"

	"cloud.google.com/go/firestore"
)

type EstablishmentRepository struct {
	db database.Client
}

var _ IRepository = EstablishmentRepository{}

func New(db database.Client) EstablishmentRepository {
	return EstablishmentRepository{
		db: db,
	}
}

func (r EstablishmentRepository) GetById(ctx context.Context, id string) (*model.Establishment, error) {
	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(establishmentNode).Doc(id))
	if err != nil {
		if errors.Is(err, database.ErrDocNotExist) {
			return nil, ierr.NotFound
		}
		return nil, fmt.Errorf("get establishment: %w, id: %s", err, id)
	}

	e := &model.Establishment{}
	if err := docSnap.DataTo(e); err != nil {
		return nil, fmt.Errorf("get establishment: %w, id: %s", err, id)
	}
	e.Id = docSnap.Ref.ID
	return e, nil
}

// GetByShortCode resolves the code printed on a QR card.
func (r EstablishmentRepository) GetByShortCode(ctx context.Context, code string) (*model.Establishment, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ierr.NotFound
	}

	query := r.db.Collection(establishmentNode).Query.Where(ShortCodeFieldPath, ops.Equal, code).Limit(1)

	var found *model.Establishment
	err := r.db.IterDocs(ctx, query, func(doc *firestore.DocumentSnapshot) error {
		e := &model.Establishment{}
		if err := doc.DataTo(e); err != nil {
			return err
		}
		e.Id = doc.Ref.ID
		found = e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get establishment by short code: %w, code: %s", err, code)
	}
	if found != nil {
		return found, nil
	}

	return nil, ierr.NotFound
}

func (r EstablishmentRepository) Create(ctx context.Context, data model.Establishment) error {
	if data.Id == "" || data.ShortCode == "" {
		return fmt.Errorf("%w: establishment needs an id and a short code", ierr.InvalidInput)
	}

	existing, err := r.GetByShortCode(ctx, data.ShortCode)
	if err != nil && !errors.Is(err, ierr.NotFound) {
		return fmt.Errorf("create establishment: %w, id: %s", err, data.Id)
	}
	if existing != nil && existing.Id != data.Id {
		return fmt.Errorf("%w: short code %s already used by %s", ierr.InvalidInput, data.ShortCode, existing.Id)
	}

	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now().UTC()
	}
	docRef := r.db.Collection(establishmentNode).Doc(data.Id)
	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return fmt.Errorf("create establishment: %w, id: %s", err, data.Id)
	}
	return nil
}
