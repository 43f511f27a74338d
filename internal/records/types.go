package records

import "time"

// #region status
// Status is the lifecycle state of a matter.
type Status string

const (
	StatusActive  Status = "active"
	StatusSettled Status = "settled"
	StatusClosed  Status = "closed"
)

// #endregion status

// #region risk-flags
// Risk flags carried on a record. Only FlagStalled has engine-specific meaning;
// the rest count toward flag totals.
const (
	FlagStalled            = "stalled"
	FlagSOLRisk            = "sol-risk"
	FlagCoverageDispute    = "coverage-dispute"
	FlagClientUnresponsive = "client-unresponsive"
	FlagAdverseRuling      = "adverse-ruling"
)

// #endregion risk-flags

// #region record
// Gate is one checklist item a matter must clear in its current stage.
type Gate struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Record is the slice of a case the scoring engine reads. Treated as read-only.
type Record struct {
	ID             string    `json:"id"`
	Stage          string    `json:"stage"`
	Status         Status    `json:"status"`
	Office         string    `json:"office"`
	Attorney       string    `json:"attorney"`
	RiskFlags      []string  `json:"risk_flags"`
	EVConfidence   float64   `json:"ev_confidence"`
	Gates          []Gate    `json:"gates"`
	StageEnteredAt time.Time `json:"stage_entered_at"`
}

// Attorney is one entry of the attorney directory.
type Attorney struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Office string `json:"office"`
}

// #endregion record

// #region record-methods
// IsActive reports whether the matter is still open.
func (r Record) IsActive() bool {
	return r.Status == StatusActive
}

// HasFlag reports whether the record carries flag.
func (r Record) HasFlag(flag string) bool {
	for _, f := range r.RiskFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// DaysInStage returns whole days between stage entry and asOf, never negative.
func (r Record) DaysInStage(asOf time.Time) int {
	if r.StageEnteredAt.IsZero() || asOf.Before(r.StageEnteredAt) {
		return 0
	}
	return int(asOf.Sub(r.StageEnteredAt).Hours() / 24)
}

// GateCounts returns completed and total gate items.
func (r Record) GateCounts() (completed, total int) {
	for _, g := range r.Gates {
		if g.Completed {
			completed++
		}
	}
	return completed, len(r.Gates)
}

// GateRatio returns completed/total gates, or 0 when no gates are defined.
func (r Record) GateRatio() float64 {
	done, total := r.GateCounts()
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// #endregion record-methods
