// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_sentiment/internal/adapters/model"
	"hotel_sentiment/internal/adapters/observability"
	"hotel_sentiment/internal/app"
	"hotel_sentiment/internal/domain"
)

const (
	maxBodyBytes   = 1 << 20
	greetingHTML   = "<h1>API Analisis Sentimen Aktif!</h1>"
	missingTextMsg = "Key 'review_text' tidak ditemukan atau kosong."
)

type Handlers struct {
	P       *app.PredictionService
	Model   *model.Pair // nil when the artifacts failed to load
	Lexicon string      // vocabulary fingerprint
	Aspects []string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	// Error mirrors Detail for clients that read {"error": "..."}.
	Error string `json:"error,omitempty"`
}

type predictRequest struct {
	ReviewText string `json:"review_text"`
}

type readiness struct {
	Lexicon     string   `json:"lexicon"`
	Aspects     []string `json:"aspects"`
	ModelLoaded bool     `json:"model_loaded"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", h.home)
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/readyz", h.ready)

	limited := s.mux.With(RateLimit(s.opts.RateLimitRPS, s.opts.RateLimitBurst))
	limited.Post("/predict_aspects", h.predictAspects)
	limited.Post("/v1/reviews/analyze", h.analyze)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Error: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps pipeline errors onto problem responses. No partial
// result is ever written alongside an error.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		writeProblem(w, http.StatusBadRequest, "Missing review text", missingTextMsg)
	case errors.Is(err, domain.ErrMalformedRequest):
		writeProblem(w, http.StatusBadRequest, "Malformed request", err.Error())
	default:
		log.Error().Err(err).Msg("aspect scoring failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, fmt.Errorf("%w: encode response: %v", domain.ErrInternal, err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// decodeReview reads the request envelope. The content type is not checked:
// any body that parses as a JSON object is accepted.
func decodeReview(w http.ResponseWriter, r *http.Request) (string, error) {
	var req predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", domain.ErrMissingInput
		}
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}
	return req.ReviewText, nil
}

func decodeFailed(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrMalformedRequest) {
		observability.ObservePrediction("malformed")
	} else {
		observability.ObservePrediction("missing_input")
	}
	writeError(w, err)
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(greetingHTML))
}

func (h *Handlers) ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, readiness{Lexicon: h.Lexicon, Aspects: h.Aspects, ModelLoaded: h.Model.Loaded()})
}

func (h *Handlers) predictAspects(w http.ResponseWriter, r *http.Request) {
	text, err := decodeReview(w, r)
	if err != nil {
		decodeFailed(w, err)
		return
	}
	out, err := h.P.PredictAspects(r.Context(), text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, out)
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	text, err := decodeReview(w, r)
	if err != nil {
		decodeFailed(w, err)
		return
	}
	out, err := h.P.Analyze(r.Context(), text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, out)
}
