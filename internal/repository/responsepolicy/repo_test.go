package responsepolicy

import (
	"context"
	"errors"
	"testing"

	"go-feedback-triage/internal/database/dbtest"
	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_DefaultsWhenMissing(t *testing.T) {
	policy, err := New(dbtest.New(t)).Get(context.Background(), "bistro")

	require.NoError(t, err)
	assert.Equal(t, model.DefaultResponsePolicy("bistro"), policy)
}

func TestGet_StorageError(t *testing.T) {
	db := dbtest.New(t)
	db.Err = errors.New("unavailable")

	_, err := New(db).Get(context.Background(), "bistro")
	assert.ErrorIs(t, err, db.Err)
}

func TestSave(t *testing.T) {
	db := dbtest.New(t)
	repo := New(db)

	err := repo.Save(context.Background(), model.ResponsePolicy{EstablishmentId: "bistro", Tone: model.ToneCasual, Notify1: true})
	require.NoError(t, err)

	written, ok := db.Written("responsePolicies/bistro")
	require.True(t, ok)
	assert.Equal(t, model.ToneCasual, written.(model.ResponsePolicy).Tone)
	assert.False(t, written.(model.ResponsePolicy).UpdatedAt.IsZero())
}

func TestSave_Invalid(t *testing.T) {
	repo := New(dbtest.New(t))

	assert.ErrorIs(t, repo.Save(context.Background(), model.ResponsePolicy{Tone: model.ToneFormal}), ierr.InvalidInput)
	assert.ErrorIs(t, repo.Save(context.Background(), model.ResponsePolicy{EstablishmentId: "bistro", Tone: "shouty"}), ierr.InvalidInput)
}
