package api

import (
	"context"
	"errors"
	"net/http"

	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/feedback"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/reward"
	"go-feedback-triage/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type EstablishmentStore interface {
	GetById(ctx context.Context, id string) (*model.Establishment, error)
	GetByShortCode(ctx context.Context, code string) (*model.Establishment, error)
}

type ReviewStore interface {
	feedback.ReviewWriter
	GetById(ctx context.Context, id string) (*model.Review, error)
	AttachDraft(ctx context.Context, id string, draft model.DraftReply) error
}

type RewardStore interface {
	feedback.RewardReader
}

type PolicyStore interface {
	Get(ctx context.Context, establishmentId string) (model.ResponsePolicy, error)
}

type Drafter interface {
	Draft(ctx context.Context, review model.Review, policy model.ResponsePolicy) (model.DraftReply, error)
}

type establishmentResponse struct {
	Id        string  `json:"id"`
	Name      string  `json:"name"`
	ReviewUrl *string `json:"reviewUrl,omitempty"`
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

type feedbackRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

type flowResponse struct {
	State       string  `json:"state"`
	ReviewId    string  `json:"reviewId,omitempty"`
	RedirectUrl *string `json:"redirectUrl,omitempty"`
	Reward      *string `json:"reward,omitempty"`
}

type handler struct {
	establishments EstablishmentStore
	reviews        ReviewStore
	rewards        RewardStore
	policies       PolicyStore
	drafter        Drafter
	src            reward.Source
}

func newHandler(cfg RouterConfig) *handler {
	return &handler{
		establishments: cfg.Establishments,
		reviews:        cfg.Reviews,
		rewards:        cfg.Rewards,
		policies:       cfg.Policies,
		drafter:        cfg.Drafter,
		src:            cfg.Source,
	}
}

func (h *handler) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *handler) resolveShortCode(c *gin.Context) {
	est, err := h.establishments.GetByShortCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondDomainError(c, storageErr("resolve short code", err))
		return
	}

	RespondOK(c, establishmentResponse{Id: est.Id, Name: est.Name, ReviewUrl: est.ReviewUrl})
}

// submitRating covers the one-step public path. A private rating stops at
// private_feedback and nothing is stored until the feedback endpoint is called.
func (h *handler) submitRating(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}

	flow, ok := h.startFlow(c)
	if !ok {
		return
	}

	state, err := flow.SubmitRating(c.Request.Context(), req.Rating)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if _, private := state.(feedback.PrivateFeedback); private {
		RespondOK(c, flowResponse{State: state.Name()})
		return
	}

	h.finish(c, flow)
}

func (h *handler) submitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}

	flow, ok := h.startFlow(c)
	if !ok {
		return
	}

	state, err := flow.SubmitRating(c.Request.Context(), req.Rating)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// public ratings are redirected, the comment belongs on the review platform
	if _, private := state.(feedback.PrivateFeedback); private {
		if _, err := flow.SubmitComment(c.Request.Context(), req.Comment); err != nil {
			respondDomainError(c, err)
			return
		}
	}

	h.finish(c, flow)
}

func (h *handler) regenerateDraft(c *gin.Context) {
	ctx := c.Request.Context()

	rv, err := h.reviews.GetById(ctx, c.Param("id"))
	if err != nil {
		respondDomainError(c, storageErr("get review", err))
		return
	}

	policy, err := h.policies.Get(ctx, rv.EstablishmentId)
	if err != nil {
		respondDomainError(c, storageErr("get response policy", err))
		return
	}

	draft, err := h.drafter.Draft(ctx, *rv, policy)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// a regenerated draft always waits for the merchant
	draft.AutoSend = false
	if err := h.reviews.AttachDraft(ctx, rv.Id, draft); err != nil {
		respondDomainError(c, storageErr("attach draft", err))
		return
	}

	RespondOK(c, draft)
}

func (h *handler) startFlow(c *gin.Context) (*feedback.Flow, bool) {
	est, err := h.establishments.GetById(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, storageErr("get establishment", err))
		return nil, false
	}
	return feedback.NewFlow(*est, h.reviews, h.rewards, h.src), true
}

// finish draws the reward of a flow waiting in RewardOffer. When the reward
// table cannot be read the customer is thanked without a reward.
func (h *handler) finish(c *gin.Context, flow *feedback.Flow) {
	state, err := flow.Reveal(c.Request.Context())
	if err != nil {
		offer, saved := state.(feedback.RewardOffer)
		if !saved {
			respondDomainError(c, err)
			return
		}
		// the review is stored, asking the customer to resubmit would duplicate it
		log.Warn().Err(err).Msgf("flow %s: no reward drawn for review %s", flow.Id(), offer.Review.Id)
		state = feedback.Thanks{Review: offer.Review}
	}

	thanks, ok := state.(feedback.Thanks)
	if !ok {
		log.Error().Msgf("flow %s ended in %s", flow.Id(), state.Name())
		respondDomainError(c, errors.New("unexpected flow state"))
		return
	}

	resp := flowResponse{
		State:    thanks.Name(),
		ReviewId: thanks.Review.Id,
		Reward:   thanks.RewardName,
	}
	if url, ok := flow.RedirectURL(); ok {
		resp.RedirectUrl = utils.ToPointer(url)
	}
	RespondOK(c, resp)
}

func storageErr(op string, err error) error {
	if errors.Is(err, ierr.NotFound) || errors.Is(err, ierr.InvalidInput) {
		return err
	}
	return &ierr.PersistenceFailure{Op: op, Err: err}
}
