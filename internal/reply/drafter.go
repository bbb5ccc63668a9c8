// Package reply drafts answers to customer reviews through the completion service.
package reply

import (
	"context"
	"fmt"
	"strings"
	"time"

	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/gpt"
	"go-feedback-triage/internal/metrics"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/tone"

	"github.com/rs/zerolog/log"
)

// Truncator bounds the review text before it is embedded in the prompt.
type Truncator interface {
	Truncate(s string, maxTokens int) string
	CountTokens(s string) int
}

type Config struct {
	MaxOutputTokens int
	MaxReviewTokens int
}

type Drafter struct {
	completer gpt.Completer
	truncator Truncator
	cnf       Config
	now       func() time.Time
}

// New accepts a nil truncator, in which case review text is sent as is.
func New(completer gpt.Completer, truncator Truncator, cnf Config) *Drafter {
	if cnf.MaxOutputTokens <= 0 {
		cnf.MaxOutputTokens = defaultMaxOutputTokens
	}
	if cnf.MaxReviewTokens <= 0 {
		cnf.MaxReviewTokens = defaultMaxReviewTokens
	}
	return &Drafter{
		completer: completer,
		truncator: truncator,
		cnf:       cnf,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Draft never retries and never sends anything. AutoSend is left false; the
// caller decides it from the policy.
func (d *Drafter) Draft(ctx context.Context, review model.Review, policy model.ResponsePolicy) (model.DraftReply, error) {
	if !review.Rating.Valid() {
		return model.DraftReply{}, ierr.InvalidRating
	}

	directive := tone.Classify(review.Rating)
	prompt := d.prompt(review, policy, directive)
	if d.truncator != nil {
		log.Debug().Msgf("drafter: prompt for review %s has %d tokens", review.Id, d.truncator.CountTokens(prompt))
	}

	resp, err := d.completer.Complete(ctx, gpt.CompletionRequest{
		Prompt:          prompt,
		MaxOutputTokens: d.cnf.MaxOutputTokens,
	})
	if err != nil {
		log.Error().Err(err).Msgf("drafter: completion failed for review %s", review.Id)
		metrics.DraftsGenerated.WithLabelValues(ierr.ReasonServiceUnavailable).Inc()
		return model.DraftReply{}, &ierr.GenerationError{Reason: ierr.ReasonServiceUnavailable, Err: err}
	}

	if len(resp.Segments) == 0 || strings.TrimSpace(resp.Segments[0].Text) == "" {
		metrics.DraftsGenerated.WithLabelValues(ierr.ReasonEmptyCompletion).Inc()
		return model.DraftReply{}, &ierr.GenerationError{Reason: ierr.ReasonEmptyCompletion}
	}

	metrics.DraftsGenerated.WithLabelValues("ok").Inc()
	return model.DraftReply{
		Text:        strings.TrimSpace(resp.Segments[0].Text),
		Tone:        string(directive),
		GeneratedAt: d.now(),
	}, nil
}

func (d *Drafter) prompt(review model.Review, policy model.ResponsePolicy, directive tone.Directive) string {
	text := strings.TrimSpace(review.Text())
	if text == "" {
		text = noComment
	} else if d.truncator != nil {
		text = d.truncator.Truncate(text, d.cnf.MaxReviewTokens)
	}

	business := strings.TrimSpace(policy.CustomContext)
	if business == "" {
		business = noContext
	}

	voice := policy.Tone
	if !voice.Valid() {
		voice = model.ToneFriendly
	}

	return fmt.Sprintf(REPLY_DRAFT_INSTRUCTION, directive, voice, business, review.Rating, text)
}
