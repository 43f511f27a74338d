package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
)

// #region new-entry
// NewRunEntry builds a run_log row from a computed result.
func NewRunEntry(g lci.Granularity, scope string, asOf time.Time, res lci.Result, escalations int) (RunEntry, error) {
	layers := make([]LayerSummary, len(res.Layers))
	for i, l := range res.Layers {
		layers[i] = LayerSummary{ID: l.ID, Name: l.Name, Score: l.Score, Band: l.Band}
	}
	detail, err := json.Marshal(layers)
	if err != nil {
		return RunEntry{}, fmt.Errorf("marshal layers: %w", err)
	}

	return RunEntry{
		Granularity:     g,
		Scope:           scope,
		Seed:            res.Seed,
		AsOf:            asOf,
		RecordCount:     res.RecordCount,
		CompositeScore:  res.Score,
		CompositeBand:   res.Band,
		EscalationCount: escalations,
		DetailJSON:      string(detail),
	}, nil
}

// #endregion new-entry

// #region log-run
// LogRun writes entry to the run_log table and returns its run id. A missing
// run id or timestamp is filled in.
func LogRun(db *sql.DB, entry RunEntry) (string, error) {
	if entry.RunID == "" {
		entry.RunID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO run_log (run_id, granularity, scope, seed, as_of, record_count, composite_score, composite_band, escalation_count, detail_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		string(entry.Granularity),
		nullIfEmpty(entry.Scope),
		entry.Seed,
		entry.AsOf.UTC().Format(time.DateOnly),
		entry.RecordCount,
		entry.CompositeScore,
		string(entry.CompositeBand),
		entry.EscalationCount,
		nullIfEmpty(entry.DetailJSON),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("log run: %w", err)
	}
	return entry.RunID, nil
}

// #endregion log-run

// #region list-runs
// ListRuns returns the most recent run_log rows, newest first.
func ListRuns(db *sql.DB, limit int) ([]RunEntry, error) {
	rows, err := db.Query(`SELECT `+runColumns+` FROM run_log ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetRun returns one run_log row. A missing id wraps sql.ErrNoRows.
func GetRun(db *sql.DB, runID string) (RunEntry, error) {
	row := db.QueryRow(`SELECT `+runColumns+` FROM run_log WHERE run_id = ?`, runID)
	e, err := scanRun(row)
	if err != nil {
		return RunEntry{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return e, nil
}

const runColumns = `run_id, granularity, scope, seed, as_of, record_count, composite_score, composite_band, escalation_count, detail_json, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunEntry, error) {
	var e RunEntry
	var granularity, bandStr, asOf, created string
	var scope, detail sql.NullString
	if err := sc.Scan(&e.RunID, &granularity, &scope, &e.Seed, &asOf, &e.RecordCount,
		&e.CompositeScore, &bandStr, &e.EscalationCount, &detail, &created); err != nil {
		return RunEntry{}, fmt.Errorf("scan run: %w", err)
	}
	e.Granularity = lci.Granularity(granularity)
	e.CompositeBand = band.Band(bandStr)
	e.Scope = scope.String
	e.DetailJSON = detail.String
	e.AsOf, _ = time.Parse(time.DateOnly, asOf)
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return e, nil
}

// #endregion list-runs

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
