package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/service"
)

type Handlers struct {
	Log     *slog.Logger
	Service *service.Service
}

// scoreResponse wraps a result with the scope it was computed for.
type scoreResponse struct {
	Granularity lci.Granularity `json:"granularity"`
	Scope       string          `json:"scope,omitempty"`
	AsOf        string          `json:"as_of"`
	Result      lci.Result      `json:"result"`
}

type escalationsResponse struct {
	AsOf    string            `json:"as_of"`
	Count   int               `json:"count"`
	Items   []escalation.Item `json:"items"`
	ByLevel map[string]int    `json:"by_level"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "ts": time.Now().UTC()})
}

func (h *Handlers) Portfolio(w http.ResponseWriter, r *http.Request) {
	h.score(w, lci.GranularityPortfolio, "")
}

func (h *Handlers) Office(w http.ResponseWriter, r *http.Request) {
	h.score(w, lci.GranularityOffice, mux.Vars(r)["office"])
}

func (h *Handlers) Attorney(w http.ResponseWriter, r *http.Request) {
	h.score(w, lci.GranularityAttorney, mux.Vars(r)["attorneyID"])
}

func (h *Handlers) Stage(w http.ResponseWriter, r *http.Request) {
	h.score(w, lci.GranularityStage, mux.Vars(r)["stageID"])
}

func (h *Handlers) AllOffices(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.AllOffices()
	if err != nil {
		h.internalError(w, "all offices", err)
		return
	}
	if out == nil {
		out = []lci.OfficeResult{}
	}
	h.Log.Info("computed all offices", "offices", len(out))
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) Escalations(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Escalations()
	if err != nil {
		h.internalError(w, "escalations", err)
		return
	}
	if items == nil {
		items = []escalation.Item{}
	}
	byLevel := make(map[string]int)
	for level, n := range escalation.CountByLevel(items) {
		byLevel[string(level)] = n
	}
	h.Log.Info("derived escalations", "count", len(items))
	writeJSON(w, http.StatusOK, escalationsResponse{
		AsOf:    h.asOf(),
		Count:   len(items),
		Items:   items,
		ByLevel: byLevel,
	})
}

func (h *Handlers) CaseScore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["caseID"]
	cs, err := h.Service.ScoreCase(id)
	if err != nil {
		h.internalError(w, "case score", err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *Handlers) Offices(w http.ResponseWriter, r *http.Request) {
	offices, err := h.Service.Offices()
	if err != nil {
		h.internalError(w, "offices", err)
		return
	}
	if offices == nil {
		offices = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"offices": offices})
}

// Catalog serves the metric catalog as JSON, or as YAML with ?format=yaml.
func (h *Handlers) Catalog(w http.ResponseWriter, r *http.Request) {
	c := h.Service.Catalog()
	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, c)
	case "yaml":
		data, err := catalog.Marshal(c)
		if err != nil {
			h.internalError(w, "catalog", err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	default:
		h.badRequest(w, "format must be json or yaml")
	}
}

func (h *Handlers) score(w http.ResponseWriter, g lci.Granularity, scope string) {
	res, err := h.Service.Score(g, scope)
	if err != nil {
		if errors.Is(err, lci.ErrUnknownGranularity) {
			h.badRequest(w, err.Error())
			return
		}
		h.internalError(w, string(g), err)
		return
	}
	h.Log.Info("computed lci", "granularity", g, "scope", scope, "score", res.Score, "band", res.Band, "records", res.RecordCount)
	writeJSON(w, http.StatusOK, scoreResponse{Granularity: g, Scope: scope, AsOf: h.asOf(), Result: res})
}

func (h *Handlers) asOf() string {
	return h.Service.Engine.AsOf().Format(time.DateOnly)
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.Log.Warn("route not found", "path", r.URL.Path)
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func (h *Handlers) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.Log.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Allow", http.MethodGet)
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func (h *Handlers) badRequest(w http.ResponseWriter, msg string) {
	h.Log.Warn("bad request", "error", msg)
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func (h *Handlers) internalError(w http.ResponseWriter, endpoint string, err error) {
	h.Log.Error("request failed", "endpoint", endpoint, "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
