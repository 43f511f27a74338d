package lci

import "github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"

// TrendPoints is the length of every synthesized series.
const TrendPoints = 12

// #region metric-reading
// MetricReading is one metric's value, band, score and sparkline for a run.
type MetricReading struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Value   float64              `json:"value"`
	Target  float64              `json:"target"`
	Unit    string               `json:"unit"`
	Band    band.Band            `json:"band"`
	Score   float64              `json:"score"`
	Trend   [TrendPoints]float64 `json:"trend"`
	Derived bool                 `json:"derived"` // value read from records, not synthesized
}

// #endregion metric-reading

// #region layer-result
// LayerResult aggregates the readings of one layer.
type LayerResult struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Weight  float64         `json:"weight"`
	Score   float64         `json:"score"`
	Band    band.Band       `json:"band"`
	Metrics []MetricReading `json:"metrics"`
}

// #endregion layer-result

// #region result
// Result is the full output of one scoring run. It holds no references back
// into the engine or the input records.
type Result struct {
	Seed        string               `json:"seed"`
	RecordCount int                  `json:"record_count"`
	Score       float64              `json:"score"`
	Band        band.Band            `json:"band"`
	Layers      []LayerResult        `json:"layers"`
	Trend       [TrendPoints]float64 `json:"trend"`
}

// Metrics iterates every reading in layer/metric declaration order.
func (r Result) Metrics(fn func(layer LayerResult, m MetricReading)) {
	for _, l := range r.Layers {
		for _, m := range l.Metrics {
			fn(l, m)
		}
	}
}

// #endregion result

// #region granularity
// Granularity is the scope a score is computed over.
type Granularity string

const (
	GranularityPortfolio Granularity = "portfolio"
	GranularityOffice    Granularity = "office"
	GranularityAttorney  Granularity = "attorney"
	GranularityStage     Granularity = "stage"
)

// #endregion granularity
