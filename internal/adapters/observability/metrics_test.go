package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_sentiment/internal/adapters/observability"
	"hotel_sentiment/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors have children
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObservePrediction("ok")
	observability.ObserveRatings(domain.AspectRatings{"Staf": domain.RatingNegative})
	observability.ObserveClauses(2)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	assert.Contains(t, out, "aspects_http_requests_total")
	assert.Contains(t, out, `aspects_predictions_total{outcome="ok"}`)
	assert.Contains(t, out, `aspects_ratings_total{aspect="Staf",rating="1.0"}`)
	assert.Contains(t, out, "aspects_clauses_per_review_bucket")
}

func TestNewLoggerLevel(t *testing.T) {
	assert.Equal(t, "debug", observability.NewLogger("prod", "debug").GetLevel().String())
	assert.Equal(t, "info", observability.NewLogger("dev", "").GetLevel().String())
	assert.Equal(t, "info", observability.NewLogger("prod", "nonsense").GetLevel().String())
}
