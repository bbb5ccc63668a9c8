// Package notification alerts merchants about low ratings. Alerts are best
// effort and never influence review persistence or reward granting.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	ierr "go-feedback-triage/internal/errors"
	"go-feedback-triage/internal/metrics"
	"go-feedback-triage/internal/model"
	"go-feedback-triage/internal/tone"

	"github.com/rs/zerolog/log"
)

type Mailer interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

type Intent struct {
	Recipient string
	Subject   string
	HTMLBody  string
}

type Dispatcher struct {
	mailer   Mailer
	inboxURL string
}

func NewDispatcher(mailer Mailer, inboxURL string) Dispatcher {
	return Dispatcher{
		mailer:   mailer,
		inboxURL: strings.TrimRight(inboxURL, "/"),
	}
}

// Notify returns false when the rating is not alerting for this policy or no
// recipient is configured.
func (d Dispatcher) Notify(review model.Review, establishment model.Establishment, policy model.ResponsePolicy) (Intent, bool) {
	recipient := strings.TrimSpace(policy.NotifyEmail)
	if !tone.ShouldNotify(review.Rating, policy) || recipient == "" {
		return Intent{}, false
	}

	data := alertData{
		Name:     establishment.Name,
		Stars:    Stars(review.Rating),
		Rating:   int(review.Rating),
		Comment:  strings.TrimSpace(review.Text()),
		InboxURL: d.inboxLink(establishment.Id),
	}

	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, data); err != nil {
		log.Error().Err(err).Msgf("notification: failed to render alert for review %s", review.Id)
		return Intent{}, false
	}

	return Intent{
		Recipient: recipient,
		Subject:   fmt.Sprintf("New %s review for %s", data.Stars, establishment.Name),
		HTMLBody:  body.String(),
	}, true
}

// Dispatch builds the alert and hands it to the mailer. The returned error is
// a *NotificationFailure meant to be logged, not propagated.
func (d Dispatcher) Dispatch(ctx context.Context, review model.Review, establishment model.Establishment, policy model.ResponsePolicy) (bool, error) {
	intent, ok := d.Notify(review, establishment, policy)
	if !ok {
		return false, nil
	}

	if err := d.mailer.Send(ctx, intent.Recipient, intent.Subject, intent.HTMLBody); err != nil {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		return false, &ierr.NotificationFailure{Recipient: intent.Recipient, Err: err}
	}

	metrics.NotificationsSent.WithLabelValues("sent").Inc()
	return true, nil
}

func (d Dispatcher) inboxLink(establishmentId string) string {
	return fmt.Sprintf("%s/reviews?establishment=%s", d.inboxURL, url.QueryEscape(establishmentId))
}

// Stars renders "1 star", "2 stars", ...
func Stars(r model.Rating) string {
	if r == 1 {
		return "1 star"
	}
	return fmt.Sprintf("%d stars", r)
}
