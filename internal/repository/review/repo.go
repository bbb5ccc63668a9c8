package review

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go-feedback-triage/internal/database"
	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/repository/filter"
	"go-feedback-triage/internal/repository/helper"
	"go-feedback-triage/internal/utils"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ReviewRepository struct {
	db database.Client
}

var _ IRepository = ReviewRepository{}

func New(db database.Client) ReviewRepository {
	return ReviewRepository{
		db: db,
	}
}

// Create stores a review built by model.NewReview. The id and timestamps are assigned here.
func (r ReviewRepository) Create(ctx context.Context, data model.Review) (model.Review, error) {
	if !data.Rating.Valid() {
		return model.Review{}, ierr.InvalidRating
	}
	if data.Visibility != model.VisibilityFor(data.Rating) {
		return model.Review{}, fmt.Errorf("%w: visibility %s does not match rating %d", ierr.InvalidInput, data.Visibility, data.Rating)
	}

	data.Id = uuid.NewString()
	data.CreatedAt = time.Now().UTC()
	data.UpdatedAt = data.CreatedAt
	data.Processed = utils.BoolToPointer(false)
	data.Draft = nil

	docRef := r.db.Collection(reviewNode).Doc(data.Id)
	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.Review{}, fmt.Errorf("create review: %w, establishment: %s", err, data.EstablishmentId)
	}

	return data, nil
}

func (r ReviewRepository) GetById(ctx context.Context, id string) (*model.Review, error) {
	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(reviewNode).Doc(id))
	if err != nil {
		if errors.Is(err, database.ErrDocNotExist) {
			return nil, ierr.NotFound
		}
		return nil, fmt.Errorf("get review: %w, id: %s", err, id)
	}

	rv := &model.Review{}
	if err := docSnap.DataTo(rv); err != nil {
		return nil, fmt.Errorf("get review: %w, id: %s", err, id)
	}
	rv.Id = docSnap.Ref.ID
	return rv, nil
}

// AttachDraft is the only mutation of a stored review besides triage bookkeeping.
func (r ReviewRepository) AttachDraft(ctx context.Context, id string, draft model.DraftReply) error {
	docRef := r.db.Collection(reviewNode).Doc(id)
	updates := []firestore.Update{
		{Path: DraftFieldPath, Value: draft},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	}

	if _, err := r.db.UpdateDoc(ctx, docRef, updates, firestore.Exists); err != nil {
		return fmt.Errorf("attach draft: %w, id: %s", err, id)
	}
	return nil
}

func (r ReviewRepository) MarkProcessed(ctx context.Context, id string) error {
	docRef := r.db.Collection(reviewNode).Doc(id)
	updates := []firestore.Update{
		{Path: ProcessedFieldPath, Value: true},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	}

	if _, err := r.db.UpdateDoc(ctx, docRef, updates, firestore.Exists); err != nil {
		return fmt.Errorf("mark review processed: %w, id: %s", err, id)
	}
	return nil
}

func (r ReviewRepository) NotifyOnAdded(ctx context.Context, where []filter.Where) <-chan ReviewEvent {
	query := r.db.Collection(reviewNode).Query
	return r.notifyOnChanges(ctx, query, where, firestore.DocumentAdded)
}

func (r ReviewRepository) notifyOnChanges(ctx context.Context, query firestore.Query, where []filter.Where, kind firestore.DocumentChangeKind) <-chan ReviewEvent {

	ch := make(chan ReviewEvent)
	var writeFailureCount, writeFailureThreshold int32 = 0, 3

	go func() {
		defer close(ch)

		helper.NotifyOnChanges(ctx, r.db, query, where, kind, func(dc firestore.DocumentChange, err error) error {

			if atomic.LoadInt32(&writeFailureCount) > writeFailureThreshold {
				return fmt.Errorf("write failure threshold reached")
			}

			if err != nil {
				if !database.IsContextError(err) {
					log.Error().Err(err).Msg("review repo: failed to read review events")
					helper.NonblockingWrite[ReviewEvent](ctx, channelWriteTimeout, ch, ReviewEvent{Err: err})
				}
				return err
			}

			rv := model.Review{}
			if err := dc.Doc.DataTo(&rv); err != nil {
				log.Error().Err(err).Msgf("review repo: failed to convert doc %s to review", dc.Doc.Ref.ID)
				return nil
			}
			if rv.Id == "" {
				rv.Id = dc.Doc.Ref.ID
			}

			if err := helper.NonblockingWrite[ReviewEvent](ctx, channelWriteTimeout, ch, ReviewEvent{Review: rv}); err != nil {
				atomic.AddInt32(&writeFailureCount, 1)
			}
			return nil
		})
	}()

	return ch
}
