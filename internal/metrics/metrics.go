package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewards_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rewards_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewards_recommendations_total",
			Help: "Card recommendations served, by winning card",
		},
		[]string{"card_id"},
	)

	transactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewards_transactions_recorded_total",
			Help: "Transactions appended to the ledger, by card used",
		},
		[]string{"card_id"},
	)

	rewardLeakage = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewards_leakage_recorded_total",
			Help: "Reward forfeited by recorded transactions versus the best card",
		},
	)
)

func ObserveRecommendation(cardID string) {
	recommendations.WithLabelValues(cardID).Inc()
}

// ObserveTransaction counts a recorded transaction and the reward it left behind.
func ObserveTransaction(cardID string, earned, potential float64) {
	transactionsRecorded.WithLabelValues(cardID).Inc()
	if missed := potential - earned; missed > 0 {
		rewardLeakage.Add(missed)
	}
}

// Middleware records request counts and latency labelled by the matched route
// template, so path parameters do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
