package notification

import (
	"context"
	"errors"
	"testing"

	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	recipient, subject, body string
}

type fakeMailer struct {
	sent []sent
	err  error
}

func (m *fakeMailer) Send(_ context.Context, recipient, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sent{recipient, subject, htmlBody})
	return nil
}

var bistro = model.Establishment{Id: "est-1", Name: "Chez Paul"}

func withComment(rating model.Rating, comment string) model.Review {
	return model.NewReview(bistro.Id, rating, &comment)
}

func TestStars(t *testing.T) {
	assert.Equal(t, "1 star", Stars(1))
	assert.Equal(t, "2 stars", Stars(2))
	assert.Equal(t, "5 stars", Stars(5))
}

func TestNotify_LowRatingWithToggle(t *testing.T) {
	d := NewDispatcher(&fakeMailer{}, "https://app.example.com/")
	policy := model.ResponsePolicy{Notify2: true, NotifyEmail: "m@x.com"}

	intent, ok := d.Notify(withComment(2, "trop long d'attente"), bistro, policy)
	require.True(t, ok)

	assert.Equal(t, "m@x.com", intent.Recipient)
	assert.Equal(t, "New 2 stars review for Chez Paul", intent.Subject)
	assert.Contains(t, intent.HTMLBody, "Chez Paul")
	assert.Contains(t, intent.HTMLBody, "2/5")
	assert.Contains(t, intent.HTMLBody, "trop long d&#39;attente")
	assert.Contains(t, intent.HTMLBody, `href="https://app.example.com/reviews?establishment=est-1"`)
	assert.NotContains(t, intent.HTMLBody, "No comment left")
}

func TestNotify_SingularSubjectAndMissingComment(t *testing.T) {
	d := NewDispatcher(&fakeMailer{}, "https://app.example.com")
	policy := model.ResponsePolicy{Notify1: true, NotifyEmail: "m@x.com"}

	intent, ok := d.Notify(model.NewReview(bistro.Id, 1, nil), bistro, policy)
	require.True(t, ok)
	assert.Equal(t, "New 1 star review for Chez Paul", intent.Subject)
	assert.Contains(t, intent.HTMLBody, "No comment left.")
}

func TestNotify_EscapesComment(t *testing.T) {
	d := NewDispatcher(&fakeMailer{}, "https://app.example.com")
	policy := model.ResponsePolicy{Notify1: true, NotifyEmail: "m@x.com"}

	intent, ok := d.Notify(withComment(1, "<script>alert(1)</script>"), bistro, policy)
	require.True(t, ok)
	assert.NotContains(t, intent.HTMLBody, "<script>")
}

func TestNotify_None(t *testing.T) {
	d := NewDispatcher(&fakeMailer{}, "https://app.example.com")

	cases := map[string]struct {
		review model.Review
		policy model.ResponsePolicy
	}{
		"toggle off":     {withComment(1, "bad"), model.ResponsePolicy{Notify2: true, NotifyEmail: "m@x.com"}},
		"no email":       {withComment(2, "bad"), model.ResponsePolicy{Notify2: true}},
		"blank email":    {withComment(2, "bad"), model.ResponsePolicy{Notify2: true, NotifyEmail: "  "}},
		"rating 3 never": {withComment(3, "ok"), model.ResponsePolicy{Notify1: true, Notify2: true, NotifyEmail: "m@x.com"}},
		"positive never": {withComment(5, "great"), model.ResponsePolicy{Notify1: true, Notify2: true, NotifyEmail: "m@x.com"}},
		"default policy": {withComment(1, "bad"), model.DefaultResponsePolicy(bistro.Id)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := d.Notify(tc.review, bistro, tc.policy)
			assert.False(t, ok)
		})
	}
}

func TestDispatch_SendsIntent(t *testing.T) {
	m := &fakeMailer{}
	d := NewDispatcher(m, "https://app.example.com")
	policy := model.ResponsePolicy{Notify2: true, NotifyEmail: "m@x.com"}

	ok, err := d.Dispatch(context.Background(), withComment(2, "trop long d'attente"), bistro, policy)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "m@x.com", m.sent[0].recipient)
	assert.Equal(t, "New 2 stars review for Chez Paul", m.sent[0].subject)
}

func TestDispatch_SkipsWithoutSending(t *testing.T) {
	m := &fakeMailer{}
	d := NewDispatcher(m, "https://app.example.com")

	ok, err := d.Dispatch(context.Background(), withComment(4, "nice"), bistro, model.ResponsePolicy{NotifyEmail: "m@x.com"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, m.sent)
}

func TestDispatch_FailureIsNotificationFailure(t *testing.T) {
	m := &fakeMailer{err: errors.New("smtp down")}
	d := NewDispatcher(m, "https://app.example.com")
	policy := model.ResponsePolicy{Notify1: true, NotifyEmail: "m@x.com"}

	ok, err := d.Dispatch(context.Background(), withComment(1, "bad"), bistro, policy)
	assert.False(t, ok)

	var nf *ierr.NotificationFailure
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "m@x.com", nf.Recipient)
}
