package lci

import (
	"errors"
	"fmt"
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/seeded"
)

// #region engine
// Engine scores record collections against a validated catalog as of a fixed
// reference date. It holds no mutable state, so one Engine may serve any
// number of goroutines.
type Engine struct {
	catalog catalog.Catalog
	asOf    time.Time
}

// NewEngine validates cat and returns an engine pinned to asOf.
func NewEngine(cat catalog.Catalog, asOf time.Time) (*Engine, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &Engine{catalog: cat.Clone(), asOf: asOf.UTC()}, nil
}

// Catalog returns a copy of the engine's catalog.
func (e *Engine) Catalog() catalog.Catalog {
	return e.catalog.Clone()
}

// AsOf returns the reference date used for day counts.
func (e *Engine) AsOf() time.Time {
	return e.asOf
}

// #endregion engine

// #region compute
// Compute scores rs under seed. It is the single entry point behind every
// granularity; callers filter the records and choose the seed.
func (e *Engine) Compute(seed string, rs []records.Record) Result {
	layers := make([]LayerResult, 0, len(e.catalog.Layers))
	for _, ld := range e.catalog.Layers {
		readings := make([]MetricReading, 0, len(ld.Metrics))
		for _, md := range ld.Metrics {
			readings = append(readings, e.read(md, seed, rs))
		}
		layers = append(layers, AggregateLayer(ld, readings))
	}

	score, b := Composite(layers)
	return Result{
		Seed:        seed,
		RecordCount: len(rs),
		Score:       score,
		Band:        b,
		Layers:      layers,
		Trend:       Trend(seeded.Key(seed, "overall", "trend"), score, overallVariance),
	}
}

func (e *Engine) read(md catalog.MetricDefinition, seed string, rs []records.Record) MetricReading {
	v := Resolve(md, seed, rs, e.asOf)
	return MetricReading{
		ID:      md.ID,
		Name:    md.Name,
		Value:   v,
		Target:  md.Target,
		Unit:    md.Unit,
		Band:    band.Classify(v, md),
		Score:   band.Score(v, md),
		Trend:   Trend(seeded.Key(seed, md.ID, "trend"), v, metricVariance(v)),
		Derived: IsDerived(md.ID),
	}
}

// #endregion compute

// #region granularities
// ComputePortfolio scores the whole collection.
func (e *Engine) ComputePortfolio(rs []records.Record) Result {
	return e.Compute(string(GranularityPortfolio), rs)
}

// ComputeOffice scores the records of one office.
func (e *Engine) ComputeOffice(rs []records.Record, office string) Result {
	return e.Compute(seeded.Key(string(GranularityOffice), office), records.ByOffice(rs, office))
}

// ComputeAttorney scores the records owned by the attorney with attorneyID.
// An id missing from the directory scores an empty collection.
func (e *Engine) ComputeAttorney(rs []records.Record, attorneyID string, dir []records.Attorney) Result {
	var owned []records.Record
	if a, ok := records.FindAttorney(dir, attorneyID); ok {
		owned = records.ByAttorney(rs, a.Name)
	}
	return e.Compute(seeded.Key(string(GranularityAttorney), attorneyID), owned)
}

// ComputeStage scores the records currently in stageID.
func (e *Engine) ComputeStage(rs []records.Record, stageID string) Result {
	return e.Compute(seeded.Key(string(GranularityStage), stageID), records.ByStage(rs, stageID))
}

// ErrUnknownGranularity is returned by ComputeScope for an unrecognised scope.
var ErrUnknownGranularity = errors.New("unknown granularity")

// ComputeScope dispatches on granularity. id is ignored for the portfolio.
func (e *Engine) ComputeScope(g Granularity, id string, rs []records.Record, dir []records.Attorney) (Result, error) {
	switch g {
	case GranularityPortfolio, "":
		return e.ComputePortfolio(rs), nil
	case GranularityOffice:
		return e.ComputeOffice(rs, id), nil
	case GranularityAttorney:
		return e.ComputeAttorney(rs, id, dir), nil
	case GranularityStage:
		return e.ComputeStage(rs, id), nil
	default:
		return Result{}, fmt.Errorf("%w %q", ErrUnknownGranularity, g)
	}
}

// #endregion granularities
