// Package api implements the degreecalc REST API.
// It provides classification endpoints backed by Postgres and report storage.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/degreecalc/degreecalc/internal/archive"
	"github.com/degreecalc/degreecalc/internal/cohort"
	"github.com/degreecalc/degreecalc/internal/records"
	"github.com/degreecalc/degreecalc/pkg/classification"
	"github.com/degreecalc/degreecalc/pkg/marks"
)

// Store is the subset of records.Service the API reads and writes.
type Store interface {
	SaveResult(ctx context.Context, row *records.ResultRow) error
	GetResult(ctx context.Context, resultID string) (*records.ResultRow, error)
	ListStudentResults(ctx context.Context, studentID string) ([]records.ResultRow, error)
	GetRun(ctx context.Context, runID string) (*records.Run, error)
}

// CohortProcessor runs a cohort end to end.
type CohortProcessor interface {
	Process(ctx context.Context, c marks.Cohort) (*cohort.Outcome, error)
}

// Options configures the router.
type Options struct {
	// APIKey protects write endpoints. Empty disables auth.
	APIKey string
	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
	// HealthCheck, if set, is called by /healthz (typically a database ping).
	HealthCheck func(ctx context.Context) error
}

// Handler is the top-level API handler for the degreecalc service.
type Handler struct {
	engine  *classification.Engine
	store   Store
	cohorts CohortProcessor
	reports archive.Store
	cache   *ResultCache
	log     zerolog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(engine *classification.Engine, store Store, cohorts CohortProcessor, reports archive.Store, cache *ResultCache, log zerolog.Logger) *Handler {
	if cache == nil {
		cache = NewResultCache(0)
	}
	return &Handler{
		engine:  engine,
		store:   store,
		cohorts: cohorts,
		reports: reports,
		cache:   cache,
		log:     log.With().Str("component", "api").Logger(),
	}
}

// Router builds the chi router with middleware and all API routes.
func (h *Handler) Router(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(h.log), middleware.Recoverer)
	r.Use(CORS(opts.AllowedOrigins))

	r.Get("/healthz", h.healthHandler(opts.HealthCheck))

	r.Route("/api/v1", func(r chi.Router) {
		// Write endpoints (auth-protected)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(opts.APIKey))
			r.Post("/classify", h.handleClassify)
			r.Post("/cohorts", h.handleProcessCohort)
		})

		// Read endpoints
		r.Get("/cohorts/{runID}", h.handleGetRun)
		r.Get("/cohorts/{runID}/report", h.handleGetReport)
		r.Get("/results/{resultID}", h.handleGetResult)
		r.Get("/students/{studentID}/results", h.handleStudentResults)
		r.Get("/gpa-zones", h.handleGPAZones)
	})

	return r
}

func (h *Handler) healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				h.log.Warn().Err(err).Msg("health check failed")
				writeError(w, http.StatusServiceUnavailable, "database unreachable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
