package api

import (
	"go-feedback-triage/internal/metrics"
	"go-feedback-triage/internal/reward"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Establishments EstablishmentStore
	Reviews        ReviewStore
	Rewards        RewardStore
	Policies       PolicyStore
	Drafter        Drafter
	// Source defaults to reward.GlobalSource.
	Source reward.Source
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Source == nil {
		cfg.Source = reward.GlobalSource
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), metrics.Middleware())

	h := newHandler(cfg)

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/q/:code", h.resolveShortCode)
	r.POST("/establishments/:id/rating", h.submitRating)
	r.POST("/establishments/:id/feedback", h.submitFeedback)
	r.POST("/reviews/:id/draft", h.regenerateDraft)

	return r
}
