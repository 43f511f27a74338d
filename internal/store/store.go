package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a case id has no row.
var ErrNotFound = errors.New("not found")

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS cases (
	case_id          TEXT PRIMARY KEY,
	stage            TEXT NOT NULL,
	status           TEXT NOT NULL,
	office           TEXT NOT NULL,
	attorney         TEXT NOT NULL,
	risk_flags       TEXT NOT NULL,
	ev_confidence    REAL NOT NULL,
	gates            TEXT NOT NULL,
	stage_entered_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cases_office ON cases(office);

CREATE TABLE IF NOT EXISTS attorneys (
	attorney_id TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	office      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_log (
	run_id           TEXT PRIMARY KEY,
	granularity      TEXT NOT NULL,
	scope            TEXT,
	seed             TEXT NOT NULL,
	as_of            TEXT NOT NULL,
	record_count     INTEGER NOT NULL,
	composite_score  REAL NOT NULL,
	composite_band   TEXT NOT NULL,
	escalation_count INTEGER NOT NULL DEFAULT 0,
	detail_json      TEXT,
	created_at       TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store holds the live case snapshot and attorney directory in SQLite.
// Scores are never stored here; the run_log table is an audit trail only.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region import
// ImportFixture upserts every case and attorney in f in one transaction.
func (s *Store) ImportFixture(f *records.Fixture) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, r := range f.Cases {
		if err := upsertCase(tx, r); err != nil {
			return err
		}
	}
	for _, a := range f.Attorneys {
		if err := upsertAttorney(tx, a); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertCase(ex execer, r records.Record) error {
	flags, err := json.Marshal(nonNil(r.RiskFlags))
	if err != nil {
		return fmt.Errorf("marshal flags %s: %w", r.ID, err)
	}
	gates := r.Gates
	if gates == nil {
		gates = []records.Gate{}
	}
	gatesJSON, err := json.Marshal(gates)
	if err != nil {
		return fmt.Errorf("marshal gates %s: %w", r.ID, err)
	}
	_, err = ex.Exec(
		`INSERT INTO cases (case_id, stage, status, office, attorney, risk_flags, ev_confidence, gates, stage_entered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(case_id) DO UPDATE SET
		   stage = excluded.stage, status = excluded.status, office = excluded.office,
		   attorney = excluded.attorney, risk_flags = excluded.risk_flags,
		   ev_confidence = excluded.ev_confidence, gates = excluded.gates,
		   stage_entered_at = excluded.stage_entered_at`,
		r.ID, r.Stage, string(r.Status), r.Office, r.Attorney, string(flags),
		r.EVConfidence, string(gatesJSON), r.StageEnteredAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert case %s: %w", r.ID, err)
	}
	return nil
}

func upsertAttorney(ex execer, a records.Attorney) error {
	_, err := ex.Exec(
		`INSERT INTO attorneys (attorney_id, name, office) VALUES (?, ?, ?)
		 ON CONFLICT(attorney_id) DO UPDATE SET name = excluded.name, office = excluded.office`,
		a.ID, a.Name, a.Office,
	)
	if err != nil {
		return fmt.Errorf("upsert attorney %s: %w", a.ID, err)
	}
	return nil
}

// #endregion import

// #region read
const caseColumns = `case_id, stage, status, office, attorney, risk_flags, ev_confidence, gates, stage_entered_at`

// ListCases returns every case ordered by id.
func (s *Store) ListCases() ([]records.Record, error) {
	rows, err := s.db.Query(`SELECT ` + caseColumns + ` FROM cases ORDER BY case_id`)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var out []records.Record
	for rows.Next() {
		r, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetCase returns one case or ErrNotFound.
func (s *Store) GetCase(id string) (records.Record, error) {
	row := s.db.QueryRow(`SELECT `+caseColumns+` FROM cases WHERE case_id = ?`, id)
	r, err := scanCase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return records.Record{}, fmt.Errorf("case %s: %w", id, ErrNotFound)
	}
	return r, err
}

// ListAttorneys returns the attorney directory ordered by id.
func (s *Store) ListAttorneys() ([]records.Attorney, error) {
	rows, err := s.db.Query(`SELECT attorney_id, name, office FROM attorneys ORDER BY attorney_id`)
	if err != nil {
		return nil, fmt.Errorf("list attorneys: %w", err)
	}
	defer rows.Close()

	var out []records.Attorney
	for rows.Next() {
		var a records.Attorney
		if err := rows.Scan(&a.ID, &a.Name, &a.Office); err != nil {
			return nil, fmt.Errorf("scan attorney: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Snapshot reads the full case collection and directory in one call.
func (s *Store) Snapshot() ([]records.Record, []records.Attorney, error) {
	cases, err := s.ListCases()
	if err != nil {
		return nil, nil, err
	}
	dir, err := s.ListAttorneys()
	if err != nil {
		return nil, nil, err
	}
	return cases, dir, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCase(sc scanner) (records.Record, error) {
	var r records.Record
	var status, flags, gates, entered string
	err := sc.Scan(&r.ID, &r.Stage, &status, &r.Office, &r.Attorney, &flags, &r.EVConfidence, &gates, &entered)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return records.Record{}, err
		}
		return records.Record{}, fmt.Errorf("scan case: %w", err)
	}
	r.Status = records.Status(status)
	if err := json.Unmarshal([]byte(flags), &r.RiskFlags); err != nil {
		return records.Record{}, fmt.Errorf("unmarshal flags %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(gates), &r.Gates); err != nil {
		return records.Record{}, fmt.Errorf("unmarshal gates %s: %w", r.ID, err)
	}
	r.StageEnteredAt, err = time.Parse(time.RFC3339Nano, entered)
	if err != nil {
		return records.Record{}, fmt.Errorf("parse stage_entered_at %s: %w", r.ID, err)
	}
	return r, nil
}

// #endregion read

// #region helpers
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// #endregion helpers
