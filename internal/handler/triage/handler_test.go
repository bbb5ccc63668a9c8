package triage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-feedback-triage/internal/eventpublisher/event"
	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu  sync.Mutex
	sub event.WChannel[model.Review]
}

func (p *fakePublisher) Subscribe(ch event.WChannel[model.Review]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sub = ch
}

func (p *fakePublisher) Unsubscribe(event.WChannel[model.Review]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sub = nil
}

func (p *fakePublisher) send(e event.Event[model.Review]) {
	p.mu.Lock()
	sub := p.sub
	p.mu.Unlock()
	sub <- e
}

type fakeReviews struct {
	mu         sync.Mutex
	drafts     map[string]model.DraftReply
	processed  map[string]bool
	processErr error
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{drafts: map[string]model.DraftReply{}, processed: map[string]bool{}}
}

func (f *fakeReviews) AttachDraft(_ context.Context, id string, draft model.DraftReply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts[id] = draft
	return nil
}

func (f *fakeReviews) MarkProcessed(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processErr != nil {
		return f.processErr
	}
	f.processed[id] = true
	return nil
}

func (f *fakeReviews) isProcessed(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processed[id]
}

type fakeEstablishments map[string]model.Establishment

func (f fakeEstablishments) GetById(_ context.Context, id string) (*model.Establishment, error) {
	e, ok := f[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &e, nil
}

type fakePolicies struct {
	policy model.ResponsePolicy
	err    error
}

func (f fakePolicies) Get(_ context.Context, establishmentId string) (model.ResponsePolicy, error) {
	if f.err != nil {
		return model.ResponsePolicy{}, f.err
	}
	p := f.policy
	p.EstablishmentId = establishmentId
	return p, nil
}

type fakeDrafter struct {
	calls int
	err   error
}

func (f *fakeDrafter) Draft(_ context.Context, review model.Review, _ model.ResponsePolicy) (model.DraftReply, error) {
	f.calls++
	if f.err != nil {
		return model.DraftReply{}, f.err
	}
	return model.DraftReply{Text: "Thank you. The team", Tone: "warm and appreciative"}, nil
}

type fakeDispatcher struct {
	calls int
	err   error
}

func (f *fakeDispatcher) Dispatch(context.Context, model.Review, model.Establishment, model.ResponsePolicy) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, &ierr.NotificationFailure{Recipient: "owner@example.com", Err: f.err}
	}
	return true, nil
}

type fixture struct {
	publisher  *fakePublisher
	reviews    *fakeReviews
	policies   fakePolicies
	drafter    *fakeDrafter
	dispatcher *fakeDispatcher
}

func newFixture(policy model.ResponsePolicy) *fixture {
	return &fixture{
		publisher:  &fakePublisher{},
		reviews:    newFakeReviews(),
		policies:   fakePolicies{policy: policy},
		drafter:    &fakeDrafter{},
		dispatcher: &fakeDispatcher{},
	}
}

func (f *fixture) handler() *Handler {
	establishments := fakeEstablishments{"bistro": {Id: "bistro", Name: "Bistro"}}
	return New(f.publisher, f.reviews, establishments, f.policies, f.drafter, f.dispatcher)
}

func lowRating(id string) model.Review {
	rv := model.NewReview("bistro", 1, utils.StringToPointer("cold soup"))
	rv.Id = id
	rv.Processed = utils.BoolToPointer(false)
	return rv
}

func TestHandle_DraftsWhenAutoReplyIsOn(t *testing.T) {
	f := newFixture(model.ResponsePolicy{Tone: model.ToneFriendly, AutoReply1: true, Notify1: true, NotifyEmail: "owner@example.com"})

	err := f.handler().handle(context.Background(), lowRating("r-1"))

	require.NoError(t, err)
	assert.Equal(t, 1, f.dispatcher.calls)
	assert.Equal(t, 1, f.drafter.calls)
	require.Contains(t, f.reviews.drafts, "r-1")
	assert.True(t, f.reviews.drafts["r-1"].AutoSend)
	assert.True(t, f.reviews.isProcessed("r-1"))
}

func TestHandle_NoDraftWhenAutoReplyIsOff(t *testing.T) {
	f := newFixture(model.DefaultResponsePolicy("bistro"))

	err := f.handler().handle(context.Background(), lowRating("r-2"))

	require.NoError(t, err)
	assert.Equal(t, 0, f.drafter.calls)
	assert.Empty(t, f.reviews.drafts)
	assert.True(t, f.reviews.isProcessed("r-2"))
}

func TestHandle_AlertFailureDoesNotBlockTriage(t *testing.T) {
	f := newFixture(model.ResponsePolicy{AutoReply1: true, Notify1: true, NotifyEmail: "owner@example.com"})
	f.dispatcher.err = errors.New("smtp down")

	err := f.handler().handle(context.Background(), lowRating("r-3"))

	require.NoError(t, err)
	assert.Contains(t, f.reviews.drafts, "r-3")
	assert.True(t, f.reviews.isProcessed("r-3"))
}

func TestHandle_GenerationFailureLeavesReviewUnprocessed(t *testing.T) {
	f := newFixture(model.ResponsePolicy{AutoReply1: true})
	f.drafter.err = &ierr.GenerationError{Reason: ierr.ReasonServiceUnavailable, Err: errors.New("503")}

	err := f.handler().handle(context.Background(), lowRating("r-4"))

	require.Error(t, err)
	assert.False(t, f.reviews.isProcessed("r-4"))
}

func TestHandle_EmptyCompletionIsNotRetried(t *testing.T) {
	f := newFixture(model.ResponsePolicy{AutoReply1: true})
	f.drafter.err = &ierr.GenerationError{Reason: ierr.ReasonEmptyCompletion}

	err := f.handler().handle(context.Background(), lowRating("r-5"))

	require.NoError(t, err)
	assert.Empty(t, f.reviews.drafts)
	assert.True(t, f.reviews.isProcessed("r-5"))
}

func TestHandle_SkipsProcessedReviews(t *testing.T) {
	f := newFixture(model.ResponsePolicy{AutoReply1: true, Notify1: true, NotifyEmail: "owner@example.com"})
	rv := lowRating("r-6")
	rv.Processed = utils.BoolToPointer(true)

	require.NoError(t, f.handler().handle(context.Background(), rv))
	assert.Equal(t, 0, f.dispatcher.calls)
	assert.Equal(t, 0, f.drafter.calls)
}

func TestHandle_UnknownEstablishment(t *testing.T) {
	f := newFixture(model.ResponsePolicy{AutoReply1: true})
	rv := lowRating("r-7")
	rv.EstablishmentId = "gone"

	require.NoError(t, f.handler().handle(context.Background(), rv))
	assert.Equal(t, 0, f.drafter.calls)
	assert.True(t, f.reviews.isProcessed("r-7"))
}

func TestHandle_PolicyFailure(t *testing.T) {
	f := newFixture(model.ResponsePolicy{})
	f.policies.err = errors.New("firestore unavailable")

	err := f.handler().handle(context.Background(), lowRating("r-8"))

	require.Error(t, err)
	assert.Equal(t, 0, f.dispatcher.calls)
	assert.False(t, f.reviews.isProcessed("r-8"))
}

func TestEventHandler_ProcessesPublishedReviews(t *testing.T) {
	f := newFixture(model.DefaultResponsePolicy("bistro"))
	h := f.handler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- h.EventHandler(ctx) }()

	f.publisher.send(event.Event[model.Review]{Message: lowRating("r-9")})

	assert.Eventually(t, func() bool { return f.reviews.isProcessed("r-9") }, time.Second, 10*time.Millisecond)

	f.publisher.send(event.Event[model.Review]{Err: errors.New("listener broke")})
	assert.EqualError(t, <-done, "listener broke")
}
