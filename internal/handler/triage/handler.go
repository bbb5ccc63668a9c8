package triage

import (
	"context"
	"errors"

	"go-feedback-triage/internal/eventpublisher"
	"go-feedback-triage/internal/eventpublisher/event"
	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/tone"

	"github.com/rs/zerolog/log"
)

type ReviewStore interface {
	AttachDraft(ctx context.Context, id string, draft model.DraftReply) error
	MarkProcessed(ctx context.Context, id string) error
}

type EstablishmentStore interface {
	GetById(ctx context.Context, id string) (*model.Establishment, error)
}

type PolicyStore interface {
	Get(ctx context.Context, establishmentId string) (model.ResponsePolicy, error)
}

type Drafter interface {
	Draft(ctx context.Context, review model.Review, policy model.ResponsePolicy) (model.DraftReply, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, review model.Review, establishment model.Establishment, policy model.ResponsePolicy) (bool, error)
}

// Handler reacts to newly created reviews: it alerts the merchant, drafts a reply when the
// policy asks for one and marks the review processed.
type Handler struct {
	reviewEventPublisher eventpublisher.Publisher[model.Review]
	reviewRepo           ReviewStore
	establishmentRepo    EstablishmentStore
	policyRepo           PolicyStore
	drafter              Drafter
	dispatcher           Dispatcher
	reviewSubscriptionCh event.Channel[model.Review]
}

func New(
	reviewEventPublisher eventpublisher.Publisher[model.Review],
	reviewRepo ReviewStore,
	establishmentRepo EstablishmentStore,
	policyRepo PolicyStore,
	drafter Drafter,
	dispatcher Dispatcher) *Handler {

	h := &Handler{
		reviewEventPublisher: reviewEventPublisher,
		reviewRepo:           reviewRepo,
		establishmentRepo:    establishmentRepo,
		policyRepo:           policyRepo,
		drafter:              drafter,
		dispatcher:           dispatcher,
		reviewSubscriptionCh: make(event.Channel[model.Review]),
	}

	// subscribe before the publisher starts so the replay of unprocessed reviews is not missed
	h.subscribeToEvents()
	return h
}

func (h *Handler) subscribeToEvents() {
	h.reviewEventPublisher.Subscribe(h.eventChannel())
}

func (h *Handler) unsubscribeFromEvents() {
	h.reviewEventPublisher.Unsubscribe(h.eventChannel())
}

func (h *Handler) eventChannel() chan<- event.Event[model.Review] {
	return h.reviewSubscriptionCh
}

func (h *Handler) EventHandler(ctx context.Context) error {

	defer h.unsubscribeFromEvents()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-h.reviewSubscriptionCh:
			if !ok {
				return nil
			}

			if e.Err != nil {
				log.Error().Err(e.Err).Msg("triage handler: error reading events")
				return e.Err
			}

			go h.handle(ctx, e.Message)
		}
	}
}

func (h *Handler) handle(ctx context.Context, review model.Review) error {
	if review.Processed != nil && *review.Processed {
		return nil
	}
	if !review.Rating.Valid() {
		log.Warn().Msgf("triage handler: review %s has rating %d, skipping", review.Id, review.Rating)
		return h.markProcessed(ctx, review.Id)
	}

	establishment, err := h.establishmentRepo.GetById(ctx, review.EstablishmentId)
	if err != nil {
		if errors.Is(err, ierr.NotFound) {
			log.Warn().Msgf("triage handler: review %s belongs to unknown establishment %s", review.Id, review.EstablishmentId)
			return h.markProcessed(ctx, review.Id)
		}
		log.Error().Err(err).Msgf("triage handler: failed to load establishment for review %s", review.Id)
		return err
	}

	policy, err := h.policyRepo.Get(ctx, review.EstablishmentId)
	if err != nil {
		log.Error().Err(err).Msgf("triage handler: failed to load response policy for review %s", review.Id)
		return err
	}

	// a failed alert never blocks the rest of the triage
	if sent, err := h.dispatcher.Dispatch(ctx, review, *establishment, policy); err != nil {
		log.Warn().Err(err).Msgf("triage handler: alert for review %s not delivered", review.Id)
	} else if sent {
		log.Debug().Msgf("triage handler: alert sent for review %s", review.Id)
	}

	if tone.AutoReplyEligible(review.Rating, policy) {
		if err := h.autoDraft(ctx, review, policy); err != nil {
			// leave the review unprocessed so the next start retries it
			return err
		}
	}

	return h.markProcessed(ctx, review.Id)
}

func (h *Handler) autoDraft(ctx context.Context, review model.Review, policy model.ResponsePolicy) error {
	draft, err := h.drafter.Draft(ctx, review, policy)
	if err != nil {
		var genErr *ierr.GenerationError
		if errors.As(err, &genErr) && genErr.Reason == ierr.ReasonEmptyCompletion {
			log.Warn().Err(err).Msgf("triage handler: empty draft for review %s", review.Id)
			return nil
		}
		log.Error().Err(err).Msgf("triage handler: failed to draft reply for review %s", review.Id)
		return err
	}

	draft.AutoSend = true
	if err := h.reviewRepo.AttachDraft(ctx, review.Id, draft); err != nil {
		log.Error().Err(err).Msgf("triage handler: failed to attach draft to review %s", review.Id)
		return err
	}
	return nil
}

func (h *Handler) markProcessed(ctx context.Context, reviewId string) error {
	if err := h.reviewRepo.MarkProcessed(ctx, reviewId); err != nil {
		log.Error().Err(err).Msgf("triage handler: failed to mark review %s processed", reviewId)
		return err
	}
	return nil
}
