package lci

import (
	"math"
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/seeded"
)

// #region constants
const (
	// AgedDiscoveryDays is the day threshold for the aged-discovery metric.
	AgedDiscoveryDays = 180
	// HighRiskFlagCount is the flag count at which a record counts as high risk.
	HighRiskFlagCount = 2

	greenShare = 0.6
	amberShare = 0.3
)

// #endregion constants

// #region resolve
// Resolve returns the current value of def. A handful of metrics are derived
// from the active records in rs; every other metric is synthesized from a
// generator keyed by seedKey and the metric id.
func Resolve(def catalog.MetricDefinition, seedKey string, rs []records.Record, asOf time.Time) float64 {
	if derive, ok := derived[def.ID]; ok {
		return round1(derive(records.Active(rs), asOf))
	}
	return synthesize(def, seedKey)
}

// IsDerived reports whether metricID is computed from records.
func IsDerived(metricID string) bool {
	_, ok := derived[metricID]
	return ok
}

// #endregion resolve

// #region derived
type deriveFunc func(active []records.Record, asOf time.Time) float64

var derived = map[string]deriveFunc{
	catalog.MetricStalledRate:           stalledRate,
	catalog.MetricAgedDiscovery:         agedDiscovery,
	catalog.MetricStageSLACompliance:    stageSLACompliance,
	catalog.MetricHighRiskConcentration: highRiskConcentration,
	catalog.MetricGateCompletion:        gateCompletion,
}

func stalledRate(active []records.Record, _ time.Time) float64 {
	n := 0
	for _, r := range active {
		if r.HasFlag(records.FlagStalled) {
			n++
		}
	}
	return pct(n, len(active))
}

func agedDiscovery(active []records.Record, asOf time.Time) float64 {
	inDiscovery := records.ByStage(active, records.StageDiscovery)
	n := 0
	for _, r := range inDiscovery {
		if r.DaysInStage(asOf) > AgedDiscoveryDays {
			n++
		}
	}
	return pct(n, len(inDiscovery))
}

func stageSLACompliance(active []records.Record, asOf time.Time) float64 {
	n := 0
	for _, r := range active {
		if r.DaysInStage(asOf) <= records.SLADays(r.Stage) {
			n++
		}
	}
	return pct(n, len(active))
}

func highRiskConcentration(active []records.Record, _ time.Time) float64 {
	n := 0
	for _, r := range active {
		if len(r.RiskFlags) >= HighRiskFlagCount {
			n++
		}
	}
	return pct(n, len(active))
}

func gateCompletion(active []records.Record, _ time.Time) float64 {
	var done, total int
	for _, r := range active {
		d, t := r.GateCounts()
		done += d
		total += t
	}
	return pct(done, total)
}

// pct returns 100*n/d with d guarded to at least 1.
func pct(n, d int) float64 {
	return 100 * float64(n) / float64(max(d, 1))
}

// #endregion derived

// #region synthesize
// synthesize draws a band with a 60/30/10 green/amber/red bias, then a
// position inside that band measured from its better end.
func synthesize(def catalog.MetricDefinition, seedKey string) float64 {
	g := seeded.New(seeded.Key(seedKey, def.ID))

	var b band.Band
	switch r := g.Next(); {
	case r < greenShare:
		b = band.Green
	case r < greenShare+amberShare:
		b = band.Amber
	default:
		b = band.Red
	}

	best, worst := band.BestWorst(band.Span(def, b), def.HigherIsBetter)
	return round1(best + g.Next()*(worst-best))
}

// #endregion synthesize

// #region helpers
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// #endregion helpers
