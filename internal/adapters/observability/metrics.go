package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"hotel_sentiment/internal/domain"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aspects", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aspects", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	Predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aspects", Name: "predictions_total", Help: "Review rating requests by outcome."},
		[]string{"outcome"}, // ok|missing_input|malformed|internal
	)
	AspectRatings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aspects", Name: "ratings_total", Help: "Ratings served per aspect and level."},
		[]string{"aspect", "rating"},
	)
	ClausesPerReview = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aspects", Name: "clauses_per_review",
			Help:    "Clauses produced by segmentation per review.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)
	BackfillReviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aspects", Name: "backfill_reviews_total", Help: "Stored reviews processed by the backfill."},
		[]string{"outcome"}, // rated|skipped|failed
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aspects", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

// Serve exposes the default registry on METRICS_ADDR in the background.
// Used by processes without their own HTTP server (the backfill).
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	reg := InitRegistry()
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, Predictions, AspectRatings, ClausesPerReview, BackfillReviews, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObservePrediction(outcome string) {
	Predictions.WithLabelValues(outcome).Inc()
}

// ObserveRatings counts one served rating per aspect, cached or not.
func ObserveRatings(ratings domain.AspectRatings) {
	for aspect, r := range ratings {
		AspectRatings.WithLabelValues(aspect, strconv.FormatFloat(float64(r), 'f', 1, 64)).Inc()
	}
}

// ObserveClauses records the clause count of a freshly segmented review.
// Cache hits skip segmentation and are not counted.
func ObserveClauses(n int) {
	ClausesPerReview.Observe(float64(n))
}

func ObserveBackfill(outcome string) {
	BackfillReviews.WithLabelValues(outcome).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
