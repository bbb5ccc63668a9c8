package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReviewsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_reviews_created_total",
		Help: "Reviews persisted by the customer flow.",
	}, []string{"visibility"})

	RewardsDrawn = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_rewards_drawn_total",
		Help: "Reward draws by outcome (won, none).",
	}, []string{"outcome"})

	DraftsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_drafts_generated_total",
		Help: "Reply drafts by result (ok or the generation error reason).",
	}, []string{"result"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_notifications_total",
		Help: "Low rating alerts by result (sent, failed).",
	}, []string{"result"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests.",
	}, []string{"path"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"path", "method", "code"})
)

// Middleware records request counts and latencies by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
