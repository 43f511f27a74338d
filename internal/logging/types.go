package logging

import (
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
)

// #region run-entry
// RunEntry is a single row in the run_log table: who was scored, under which
// seed and reference date, and what came out.
type RunEntry struct {
	RunID           string
	Granularity     lci.Granularity
	Scope           string // office, attorney id or stage id; empty for portfolio
	Seed            string
	AsOf            time.Time
	RecordCount     int
	CompositeScore  float64
	CompositeBand   band.Band
	EscalationCount int
	DetailJSON      string // optional layer summary
	CreatedAt       time.Time
}

// #endregion run-entry

// #region layer-summary
// LayerSummary is the per-layer digest serialized into detail_json.
type LayerSummary struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Score float64   `json:"score"`
	Band  band.Band `json:"band"`
}

// #endregion layer-summary
