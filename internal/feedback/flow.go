// Package feedback drives a single customer through rating capture, the
// public/private gate, review persistence and the reward draw.
package feedback

import (
	"context"
	"fmt"

	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/metrics"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/reward"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrIllegalTransition = fmt.Errorf("%w: illegal transition", ierr.InvalidInput)
	ErrFlowFinished      = fmt.Errorf("%w: flow finished", ierr.InvalidInput)
)

type ReviewWriter interface {
	Create(ctx context.Context, data model.Review) (model.Review, error)
}

type RewardReader interface {
	ListActive(ctx context.Context, establishmentId string) ([]model.RewardOption, error)
}

// Flow is owned by a single request and is not safe for concurrent use.
type Flow struct {
	id            string
	establishment model.Establishment
	reviews       ReviewWriter
	rewards       RewardReader
	src           reward.Source
	state         State
	redirectURL   *string
}

func NewFlow(establishment model.Establishment, reviews ReviewWriter, rewards RewardReader, src reward.Source) *Flow {
	return &Flow{
		id:            uuid.NewString(),
		establishment: establishment,
		reviews:       reviews,
		rewards:       rewards,
		src:           src,
		state:         RatingCapture{},
	}
}

func (f *Flow) Id() string { return f.id }

func (f *Flow) State() State { return f.state }

// RedirectURL is set once a public review has been persisted and the
// establishment has a review platform configured.
func (f *Flow) RedirectURL() (string, bool) {
	if f.redirectURL == nil {
		return "", false
	}
	return *f.redirectURL, true
}

func (f *Flow) SubmitRating(ctx context.Context, rating int) (State, error) {
	if _, ok := f.state.(RatingCapture); !ok {
		return f.state, f.illegal("submit rating")
	}

	r := model.Rating(rating)
	if !r.Valid() {
		return f.state, ierr.InvalidRating
	}

	if model.VisibilityFor(r) == model.Private {
		f.state = PrivateFeedback{Rating: r}
		return f.state, nil
	}

	f.state = PublicRedirect{Rating: r}
	rv, err := f.persist(ctx, model.NewReview(f.establishment.Id, r, nil))
	if err != nil {
		return f.state, err
	}

	if url := f.establishment.ReviewUrl; url != nil && *url != "" {
		f.redirectURL = url
	}
	f.state = RewardOffer{Review: rv}
	return f.state, nil
}

// SubmitComment accepts a nil or empty comment.
func (f *Flow) SubmitComment(ctx context.Context, comment *string) (State, error) {
	pf, ok := f.state.(PrivateFeedback)
	if !ok {
		return f.state, f.illegal("submit comment")
	}

	rv, err := f.persist(ctx, model.NewReview(f.establishment.Id, pf.Rating, comment))
	if err != nil {
		return f.state, err
	}

	f.state = RewardOffer{Review: rv}
	return f.state, nil
}

// Reveal draws the reward exactly once and finishes the flow.
func (f *Flow) Reveal(ctx context.Context) (State, error) {
	offer, ok := f.state.(RewardOffer)
	if !ok {
		return f.state, f.illegal("reveal reward")
	}

	options, err := f.rewards.ListActive(ctx, f.establishment.Id)
	if err != nil {
		log.Error().Err(err).Msgf("flow %s: failed to list rewards for %s", f.id, f.establishment.Id)
		return f.state, &ierr.PersistenceFailure{Op: "list rewards", Err: err}
	}

	thanks := Thanks{Review: offer.Review}
	if won, ok := reward.Select(options, f.src); ok {
		thanks.RewardName = &won.Name
		metrics.RewardsDrawn.WithLabelValues("won").Inc()
	} else {
		metrics.RewardsDrawn.WithLabelValues("none").Inc()
	}

	f.state = thanks
	return f.state, nil
}

func (f *Flow) persist(ctx context.Context, rv model.Review) (model.Review, error) {
	created, err := f.reviews.Create(ctx, rv)
	if err != nil {
		// the whole submission has to be retried
		f.state = RatingCapture{}
		log.Error().Err(err).Msgf("flow %s: failed to persist review for %s", f.id, f.establishment.Id)
		return model.Review{}, &ierr.PersistenceFailure{Op: "create review", Err: err}
	}

	metrics.ReviewsCreated.WithLabelValues(string(created.Visibility)).Inc()
	log.Debug().Msgf("flow %s: review %s persisted (%s)", f.id, created.Id, created.Visibility)
	return created, nil
}

func (f *Flow) illegal(action string) error {
	if _, done := f.state.(Thanks); done {
		return ErrFlowFinished
	}
	return fmt.Errorf("%w: cannot %s in state %s", ErrIllegalTransition, action, f.state.Name())
}
