// Package httpapi exposes the DWR API over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"dwr-api/internal/metrics"
	"dwr-api/internal/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ReferenceStore reads lookup data for the report form.
type ReferenceStore interface {
	ListForemen(ctx context.Context) ([]models.Reference, error)
	ListLaborers(ctx context.Context) ([]models.Reference, error)
	ListProjects(ctx context.Context) ([]models.Reference, error)
	ListEquipment(ctx context.Context, equipmentType string) ([]models.Reference, error)
	ListProjectItems(ctx context.Context, projectID string) ([]models.ProjectItem, error)
}

// ReportStore persists submitted reports.
type ReportStore interface {
	Submit(ctx context.Context, report *models.DailyWorkReport) (int64, error)
}

// Pinger checks database reachability (*sql.DB satisfies it).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options shapes the API surface.
type Options struct {
	Prefix       string
	MaxBodyBytes int64
	ExposeErrors bool
	PingTimeout  time.Duration
}

// API holds handler dependencies.
type API struct {
	refs    ReferenceStore
	reports ReportStore
	db      Pinger
	metrics *metrics.Manager
	logger  *zap.Logger
	opts    Options
}

func NewAPI(refs ReferenceStore, reports ReportStore, db Pinger, m *metrics.Manager, logger *zap.Logger, opts Options) *API {
	if opts.Prefix == "" {
		opts.Prefix = "/api"
	}
	opts.Prefix = "/" + strings.Trim(opts.Prefix, "/")
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 5 * time.Second
	}
	return &API{refs: refs, reports: reports, db: db, metrics: m, logger: logger, opts: opts}
}

// Handler builds the full handler chain: request logging, CORS envelope, routing.
func (a *API) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = a.instrument("not_found", http.HandlerFunc(a.notFound))
	r.MethodNotAllowedHandler = a.instrument("method_not_allowed", http.HandlerFunc(a.methodNotAllowed))
	r.Use(a.metricsMiddleware)

	r.HandleFunc("/healthz", a.handleHealth).Methods(http.MethodGet).Name("healthz")
	r.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet).Name("metrics")

	api := r.PathPrefix(a.opts.Prefix).Subrouter()
	api.NotFoundHandler = r.NotFoundHandler
	api.HandleFunc("/foremen", a.listHandler("foremen", a.refs.ListForemen)).Name("foremen")
	api.HandleFunc("/laborers", a.listHandler("laborers", a.refs.ListLaborers)).Name("laborers")
	api.HandleFunc("/projects", a.listHandler("projects", a.refs.ListProjects)).Name("projects")
	api.HandleFunc("/equipment", a.handleEquipment).Name("equipment")
	api.HandleFunc("/project-items", a.handleProjectItems).Name("project-items")
	api.HandleFunc("/submit-dwr", a.handleSubmitDWR).Name("submit-dwr")

	return a.logRequests(withCORS(r))
}

func (a *API) notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func (a *API) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// fail reports an unexpected failure as a 500.
func (a *API) fail(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	a.logger.Error("API error",
		zap.String("endpoint", endpoint),
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.Error(err),
	)
	msg := "Internal server error"
	if a.opts.ExposeErrors {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
}
