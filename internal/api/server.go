package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/fighter-timeline/internal/config"
	"github.com/JakeFAU/fighter-timeline/internal/fighter"
	"github.com/JakeFAU/fighter-timeline/internal/highlights"
	"github.com/JakeFAU/fighter-timeline/internal/metrics"
	"github.com/JakeFAU/fighter-timeline/internal/policy/ratelimit"
	"github.com/JakeFAU/fighter-timeline/internal/scroll"
)

const (
	maxBodyBytes   = 1 << 20
	lookupTimeout  = 3 * time.Second
	requestTimeout = 30 * time.Second
)

// ReadyFunc reports whether downstream dependencies can serve traffic.
type ReadyFunc func(ctx context.Context) error

// Server wires HTTP handlers to the highlights service.
type Server struct {
	router     chi.Router
	highlights *highlights.Service
	scroll     scroll.Config
	ready      ReadyFunc
	logger     *zap.Logger
}

// NewServer constructs a Server with middleware and routes. ready may be nil.
func NewServer(
	svc *highlights.Service,
	scrollCfg scroll.Config,
	ready ReadyFunc,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Init()
	s := &Server{
		highlights: svc,
		scroll:     scrollCfg,
		ready:      ready,
		logger:     logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(metrics.Middleware)
	r.Use(timeoutMiddleware(requestTimeout))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		if cfg.Auth.Enabled {
			r.Use(apiKeyMiddleware(cfg.Auth.APIKey))
		}
		if cfg.RateLimit.RPS > 0 {
			limiter := ratelimit.New(ratelimit.Config{RPS: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst})
			r.Use(limiter.Middleware)
		}
		r.Post("/timeline/parse", s.parseTimeline)
		r.Get("/fighters/{id}/timeline", s.fighterTimeline)
		r.Post("/scroll/plan", s.scrollPlan)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), lookupTimeout)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			s.logger.Warn("readiness check failed", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type parseRequest struct {
	BioLong *string `json:"bio_long"`
}

func (s *Server) parseTimeline(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	var text string
	if req.BioLong != nil {
		text = *req.BioLong
	}
	writeJSON(w, http.StatusOK, s.highlights.FromText(text))
}

func (s *Server) fighterTimeline(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid fighter id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), lookupTimeout)
	defer cancel()

	view, err := s.highlights.Build(ctx, id)
	switch {
	case errors.Is(err, fighter.ErrNotFound):
		writeError(w, http.StatusNotFound, "fighter not found")
		return
	case err != nil:
		s.logger.Error("build fighter timeline failed", zap.Int64("fighter_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load fighter")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
