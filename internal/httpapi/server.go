// Package httpapi serves the journal as a JSON API over net/http.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GuotongWu/CookNote/internal/analyzer"
	"github.com/GuotongWu/CookNote/internal/auth"
	"github.com/GuotongWu/CookNote/internal/journal"
	"github.com/GuotongWu/CookNote/internal/metrics"
	"github.com/GuotongWu/CookNote/internal/middleware"
	"github.com/GuotongWu/CookNote/internal/models"
)

// maxBodyBytes bounds request bodies; analysis uploads carry base64 images.
const maxBodyBytes = 32 << 20

// Server holds the dependencies of the API handlers.
type Server struct {
	journal  *journal.Service
	analyzer analyzer.Analyzer
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	auth     *auth.JWTManager
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics instruments every route into m and serves g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithAuth requires a bearer token from jm on every /api/ route.
func WithAuth(jm *auth.JWTManager) Option {
	return func(s *Server) { s.auth = jm }
}

// WithClock sets the time source used for draft previews.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server over the journal and analyzer.
func New(j *journal.Service, a analyzer.Analyzer, opts ...Option) *Server {
	s := &Server{journal: j, analyzer: a, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed handler wrapped in logging and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(s.auth)

	api := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Instrument(s.metrics, pattern, requireAuth(h)))
	}

	api("GET /api/recipes", s.listRecipes)
	api("POST /api/recipes", s.saveRecipe)
	api("GET /api/recipes/{id}", s.getRecipe)
	api("DELETE /api/recipes/{id}", s.deleteRecipe)
	api("POST /api/recipes/{id}/favorite", s.toggleFavorite)
	api("POST /api/recipes/{id}/likes/{memberID}", s.toggleLike)
	api("GET /api/catalog", s.getCatalog)
	api("GET /api/members", s.listMembers)
	api("POST /api/members", s.addMember)
	api("PUT /api/members/{id}", s.updateMember)
	api("DELETE /api/members/{id}", s.deleteMember)
	api("POST /api/cost/preview", s.previewCost)
	api("POST /api/analyze", s.analyze)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return middleware.Logging(middleware.CORS(mux))
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps journal and analyzer errors to status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	var se *analyzer.ServiceError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, journal.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, analyzer.ErrImageCount):
		writeError(w, http.StatusBadRequest, analyzer.UserMessage(err))
	case errors.As(err, &se) && se.Kind == analyzer.KindMalformed:
		writeError(w, http.StatusUnprocessableEntity, analyzer.UserMessage(err))
	case errors.As(err, &se):
		writeError(w, http.StatusBadGateway, analyzer.UserMessage(err))
	default:
		slog.Error("Unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
