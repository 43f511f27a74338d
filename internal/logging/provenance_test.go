package logging

import (
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	_ "modernc.org/sqlite"
)

// #region helpers
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`CREATE TABLE run_log (
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
	)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func sampleResult() lci.Result {
	return lci.Result{
		Seed:        "office-Newark",
		RecordCount: 14,
		Score:       81.3,
		Band:        band.Amber,
		Layers: []lci.LayerResult{
			{ID: 0, Name: "Intake & Case Opening", Score: 90.2, Band: band.Green},
			{ID: 2, Name: "Inventory Health & Risk", Score: 61.0, Band: band.Red},
		},
	}
}

func mustEntry(t *testing.T, g lci.Granularity, scope string, asOf time.Time, escalations int) RunEntry {
	t.Helper()
	e, err := NewRunEntry(g, scope, asOf, sampleResult(), escalations)
	if err != nil {
		t.Fatalf("NewRunEntry: %v", err)
	}
	return e
}

// #endregion helpers

// #region log-run-tests
func TestLogRun_Success(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	entry := mustEntry(t, lci.GranularityOffice, "Newark", asOf, 3)

	runID, err := LogRun(db, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runID == "" {
		t.Fatal("expected generated run id")
	}

	runs, err := ListRuns(db, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.RunID != runID || got.Granularity != lci.GranularityOffice || got.Scope != "Newark" {
		t.Errorf("unexpected row %+v", got)
	}
	if got.CompositeScore != 81.3 || got.CompositeBand != band.Amber || got.EscalationCount != 3 {
		t.Errorf("unexpected score fields %+v", got)
	}
	if !got.AsOf.Equal(asOf) {
		t.Errorf("as_of = %v, want %v", got.AsOf, asOf)
	}

	var layers []LayerSummary
	if err := json.Unmarshal([]byte(got.DetailJSON), &layers); err != nil {
		t.Fatalf("detail json: %v", err)
	}
	if len(layers) != 2 || layers[1].Band != band.Red {
		t.Errorf("unexpected layer summary %+v", layers)
	}
}

func TestNewRunEntry_UnencodableLayer(t *testing.T) {
	res := sampleResult()
	res.Layers[0].Score = math.NaN()
	if _, err := NewRunEntry(lci.GranularityPortfolio, "", time.Now(), res, 0); err == nil {
		t.Fatal("expected marshal error for NaN layer score")
	}
}

func TestLogRun_PortfolioScopeIsNull(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	entry := mustEntry(t, lci.GranularityPortfolio, "", time.Now(), 0)
	if _, err := LogRun(db, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var scope sql.NullString
	db.QueryRow("SELECT scope FROM run_log").Scan(&scope)
	if scope.Valid {
		t.Error("expected NULL scope for portfolio run")
	}
}

func TestLogRun_KeepsProvidedIDAndTime(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	entry := RunEntry{
		RunID:         "run-fixed",
		Granularity:   lci.GranularityStage,
		Scope:         "discovery",
		Seed:          "stage-discovery",
		AsOf:          created,
		CompositeBand: band.Green,
		CreatedAt:     created,
	}
	runID, err := LogRun(db, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runID != "run-fixed" {
		t.Errorf("run id = %q", runID)
	}
	runs, _ := ListRuns(db, 1)
	if len(runs) != 1 || !runs[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected runs %+v", runs)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, scope := range []string{"first", "second", "third"} {
		e := mustEntry(t, lci.GranularityOffice, scope, base, 0)
		e.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if _, err := LogRun(db, e); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := ListRuns(db, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].Scope != "third" || runs[1].Scope != "second" {
		t.Fatalf("unexpected order %+v", runs)
	}
}

func TestGetRun(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	runID, err := LogRun(db, mustEntry(t, lci.GranularityStage, "trial", time.Now(), 1))
	if err != nil {
		t.Fatal(err)
	}
	got, err := GetRun(db, runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Scope != "trial" || got.EscalationCount != 1 {
		t.Errorf("unexpected run %+v", got)
	}

	if _, err := GetRun(db, "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestLogRun_Error(t *testing.T) {
	db := setupDB(t)
	db.Close() // close to force error

	if _, err := LogRun(db, RunEntry{Seed: "portfolio"}); err == nil {
		t.Fatal("expected error on closed db")
	}
}

// #endregion log-run-tests

// #region null-if-empty-tests
func TestNullIfEmpty(t *testing.T) {
	if nullIfEmpty("") != nil {
		t.Error("expected nil for empty string")
	}
	if nullIfEmpty("hello") != "hello" {
		t.Error("expected passthrough for non-empty string")
	}
}

// #endregion null-if-empty-tests
