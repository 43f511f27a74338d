package casescore

import (
	"math"
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/seeded"
)

// #region config
// Config holds the weights of the single-case heuristic.
type Config struct {
	Base             float64
	OverSLAPenalty   float64 // days in stage beyond SLA
	NearSLAPenalty   float64 // days in stage at NearSLARatio of SLA or more
	NearSLARatio     float64
	StalledPenalty   float64
	PerFlagPenalty   float64 // applied to every flag, stalled included
	GateWeight       float64
	ConfidenceWeight float64
	JitterRange      float64
	UnknownCase      int
}

// DefaultConfig returns the standard heuristic weights.
func DefaultConfig() Config {
	return Config{
		Base:             75,
		OverSLAPenalty:   15,
		NearSLAPenalty:   7,
		NearSLARatio:     0.8,
		StalledPenalty:   10,
		PerFlagPenalty:   3,
		GateWeight:       10,
		ConfidenceWeight: 15,
		JitterRange:      10,
		UnknownCase:      50,
	}
}

// #endregion config

// #region scorer
// Scorer produces a 0-100 health score for one record. It is independent of
// the layered engine.
type Scorer struct {
	config Config
	asOf   time.Time
}

// NewScorer creates a scorer pinned to asOf.
func NewScorer(config Config, asOf time.Time) *Scorer {
	return &Scorer{config: config, asOf: asOf.UTC()}
}

// Score computes the heuristic for r. A stalled record pays the stall penalty
// and the per-flag penalty for the same flag.
func (s *Scorer) Score(r records.Record) int {
	c := s.config
	score := c.Base

	if sla := records.SLADays(r.Stage); sla > 0 {
		days := float64(r.DaysInStage(s.asOf))
		switch {
		case days > float64(sla):
			score -= c.OverSLAPenalty
		case days >= float64(sla)*c.NearSLARatio:
			score -= c.NearSLAPenalty
		}
	}

	if r.HasFlag(records.FlagStalled) {
		score -= c.StalledPenalty
	}
	score -= c.PerFlagPenalty * float64(len(r.RiskFlags))

	score += r.GateRatio() * c.GateWeight
	score += (r.EVConfidence - 0.5) * c.ConfidenceWeight
	score += (seeded.New(r.ID).Next() - 0.5) * c.JitterRange

	return int(math.Round(math.Max(0, math.Min(100, score))))
}

// ScoreByID scores the record with id, or returns the neutral default when
// no such record exists.
func (s *Scorer) ScoreByID(rs []records.Record, id string) int {
	r, ok := records.FindByID(rs, id)
	if !ok {
		return s.config.UnknownCase
	}
	return s.Score(r)
}

// #endregion scorer
