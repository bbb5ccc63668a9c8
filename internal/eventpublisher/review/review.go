package review

import (
	"context"
	"time"

	"go-feedback-triage/internal/eventpublisher"
	"go-feedback-triage/internal/eventpublisher/common"
	"go-feedback-triage/internal/eventpublisher/event"
	"go-feedback-triage/internal/model"
	reviewRepo "go-feedback-triage/internal/repository/review"

	"github.com/rs/zerolog/log"
)

const (
	writeTimeout          = time.Second
	writeFailureThreshold = 3
)

type eventFunc func(context.Context) <-chan reviewRepo.ReviewEvent

type ReviewPublisher interface {
	eventpublisher.Publisher[model.Review]
	Start(ctx context.Context) error
}

type reviewPublisher struct {
	eventFn    eventFunc
	submanager *common.SubManager[model.Review]
	publisher  *common.PublisherWithFailureThreshold[model.Review]
}

func newPublisher(fn eventFunc) ReviewPublisher {
	return &reviewPublisher{
		eventFn:    fn,
		submanager: common.NewSubManager[model.Review](),
		publisher:  common.NewPublisherWithFailureThreshold[model.Review](writeTimeout, writeFailureThreshold),
	}
}

func (p *reviewPublisher) Subscribe(subscriber event.WChannel[model.Review]) {
	p.submanager.Subscribe(subscriber)
}

func (p *reviewPublisher) Unsubscribe(subscriber event.WChannel[model.Review]) {
	if p.submanager.Unsubscribe(subscriber) {
		p.publisher.Forget(subscriber)
	}
}

func (p *reviewPublisher) publish(ctx context.Context, reviewEvent reviewRepo.ReviewEvent) {
	p.submanager.OnSubscribers(func(subscriber event.WChannel[model.Review]) {
		go func() {
			if err := p.publisher.Publish(ctx,
				subscriber,
				event.Event[model.Review]{Message: reviewEvent.Review, Err: reviewEvent.Err}); err != nil {
				log.Warn().Err(err).Msg("review publisher: dropping a slow subscriber")
				p.Unsubscribe(subscriber)
			}
		}()
	})
}

func (p *reviewPublisher) Start(ctx context.Context) error {
	defer p.submanager.UnsubscribeAll()

	eventsCh := p.eventFn(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Err(ctx.Err()).Msg("ReviewPublisher stopped")
			return ctx.Err()
		case e, ok := <-eventsCh:
			if !ok {
				return nil
			}
			if e.Err == nil {
				log.Debug().Msgf("publish reviewId %s", e.Review.Id)
			}
			p.publish(ctx, e)
		}
	}
}
