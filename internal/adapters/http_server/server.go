package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	RateLimitRPS   float64 // <= 0 disables the predict rate limit
	RateLimitBurst int

	// TrustProxyHeaders applies X-Forwarded-For / X-Real-IP to RemoteAddr.
	// Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

type Server struct {
	mux  *chi.Mux
	opts Options
}

func New(opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	m := chi.NewRouter()

	// All middlewares go here (before any routes are added)
	if opts.TrustProxyHeaders {
		m.Use(chimw.RealIP)
	}
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	m.Use(Timeout(opts.RequestTimeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m, opts: opts}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
