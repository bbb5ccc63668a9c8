package review

import (
	"context"
	"errors"
	"testing"

	"go-feedback-triage/internal/database/dbtest"
	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_AssignsIdAndBookkeeping(t *testing.T) {
	db := dbtest.New(t)
	repo := New(db)

	created, err := repo.Create(context.Background(), model.NewReview("bistro", 2, utils.StringToPointer("slow service")))

	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)
	assert.False(t, created.CreatedAt.IsZero())
	require.NotNil(t, created.Processed)
	assert.False(t, *created.Processed)

	written, ok := db.Written("reviews/" + created.Id)
	require.True(t, ok)
	stored := written.(model.Review)
	assert.Equal(t, model.Private, stored.Visibility)
	assert.Equal(t, "slow service", *stored.Comment)
}

func TestCreate_RejectsInvalidReviews(t *testing.T) {
	db := dbtest.New(t)
	repo := New(db)

	_, err := repo.Create(context.Background(), model.Review{EstablishmentId: "bistro", Rating: 0})
	assert.ErrorIs(t, err, ierr.InvalidRating)

	mismatch := model.NewReview("bistro", 5, nil)
	mismatch.Visibility = model.Private
	_, err = repo.Create(context.Background(), mismatch)
	assert.ErrorIs(t, err, ierr.InvalidInput)

	assert.Equal(t, 0, db.WriteCount())
}

func TestCreate_WrapsStorageErrors(t *testing.T) {
	db := dbtest.New(t)
	db.Err = errors.New("unavailable")

	_, err := New(db).Create(context.Background(), model.NewReview("bistro", 5, nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, db.Err)
	assert.Contains(t, err.Error(), "create review")
}

func TestGetById_Missing(t *testing.T) {
	_, err := New(dbtest.New(t)).GetById(context.Background(), "nope")
	assert.ErrorIs(t, err, ierr.NotFound)
}

func TestAttachDraftAndMarkProcessed(t *testing.T) {
	db := dbtest.New(t)
	repo := New(db)

	draft := model.DraftReply{Text: "Thanks! The team", Tone: "warm and appreciative", AutoSend: true}
	require.NoError(t, repo.AttachDraft(context.Background(), "rv-1", draft))
	require.NoError(t, repo.MarkProcessed(context.Background(), "rv-1"))

	updates := db.Updated("reviews/rv-1")
	require.Len(t, updates, 4)
	assert.Equal(t, DraftFieldPath, updates[0].Path)
	assert.Equal(t, draft, updates[0].Value)
	assert.Equal(t, ProcessedFieldPath, updates[2].Path)
	assert.Equal(t, true, updates[2].Value)
}
