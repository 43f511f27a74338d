package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/observability"
)

// NewRouter registers every route on a gorilla/mux router. Each route is
// wrapped with request metrics when m is non-nil, and /metrics is served
// from m's registry.
func NewRouter(h *Handlers, m *observability.Metrics) *mux.Router {
	r := mux.NewRouter()
	route := func(path string, fn http.HandlerFunc) {
		r.Handle(path, m.WrapHandler(path, fn)).Methods(http.MethodGet)
	}

	route("/health", h.Health)
	route("/lci/portfolio", h.Portfolio)
	route("/lci/offices", h.AllOffices)
	route("/lci/offices/{office}", h.Office)
	route("/lci/attorneys/{attorneyID}", h.Attorney)
	route("/lci/stages/{stageID}", h.Stage)
	route("/escalations", h.Escalations)
	route("/cases/{caseID}/score", h.CaseScore)
	route("/offices", h.Offices)
	route("/catalog", h.Catalog)
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(h.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)
	return r
}

type Server struct {
	HTTP *http.Server
	Log  *slog.Logger
}

// NewServer wraps the router with access logging to accessLog and a
// permissive read-only CORS policy.
func NewServer(addr string, log *slog.Logger, h *Handlers, m *observability.Metrics, accessLog io.Writer) *Server {
	var handler http.Handler = NewRouter(h, m)
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
	)(handler)
	handler = handlers.LoggingHandler(accessLog, handler)

	hs := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{HTTP: hs, Log: log}
}

func (s *Server) Start() error {
	s.Log.Info("http server starting", "addr", s.HTTP.Addr)
	return s.HTTP.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.Log.Info("http server stopping")
	return s.HTTP.Shutdown(ctx)
}
