package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/logging"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/store"
)

const fixtureJSON = `{
  "cases": [
    {"id": "C-1", "stage": "discovery", "status": "active", "office": "Newark", "attorney": "A. Reyes",
     "risk_flags": ["stalled"], "ev_confidence": 0.6, "gates": [{"name": "rogs", "completed": true}],
     "stage_entered_at": "2025-06-01T00:00:00Z"},
    {"id": "C-2", "stage": "intake", "status": "active", "office": "Camden", "attorney": "B. Osei",
     "risk_flags": [], "ev_confidence": 0.4, "gates": [], "stage_entered_at": "2026-02-20T00:00:00Z"}
  ],
  "attorneys": [
    {"id": "att-1", "name": "A. Reyes", "office": "Newark"},
    {"id": "att-2", "name": "B. Osei", "office": "Camden"}
  ]
}`

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setupStore(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"LCI_DB", "LCI_CATALOG", "LCI_AS_OF", "LCI_ESCALATION_CAP"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	fixture := filepath.Join(dir, "fixture.json")
	if err := os.WriteFile(fixture, []byte(fixtureJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "lci.db")
	out, err := run(t, "import", fixture, "--db", db)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "imported 2 cases, 2 attorneys") {
		t.Fatalf("unexpected import output %q", out)
	}
	return db
}

func TestPortfolioJSON(t *testing.T) {
	db := setupStore(t)
	out, err := run(t, "portfolio", "--db", db, "--as-of", "2026-03-01", "--json")
	if err != nil {
		t.Fatalf("portfolio: %v\n%s", err, out)
	}
	var res lci.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if res.RecordCount != 2 || len(res.Layers) != 7 || res.Seed != "portfolio" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSameAsOfIsReproducible(t *testing.T) {
	db := setupStore(t)
	a, err := run(t, "office", "Newark", "--db", db, "--as-of", "2026-03-01", "--json", "--no-log")
	if err != nil {
		t.Fatal(err)
	}
	b, err := run(t, "office", "Newark", "--db", db, "--as-of", "2026-03-01", "--json", "--no-log")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("identical runs produced different output")
	}
}

func TestTableOutput(t *testing.T) {
	db := setupStore(t)
	out, err := run(t, "stage", "discovery", "--db", db, "--as-of", "2026-03-01")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if !strings.HasPrefix(out, "LCI stage discovery:") || !strings.Contains(out, "Inventory Health & Risk") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
}

func TestEscalationsAndRunLog(t *testing.T) {
	db := setupStore(t)
	out, err := run(t, "escalations", "--db", db, "--as-of", "2026-03-01", "--json")
	if err != nil {
		t.Fatalf("escalations: %v", err)
	}
	var items []escalation.Item
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(items) > 12 {
		t.Fatalf("%d items exceeds cap", len(items))
	}

	st, err := store.NewStore(db)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	runs, err := logging.ListRuns(st.DB(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].EscalationCount != len(items) {
		t.Fatalf("unexpected run log %+v", runs)
	}
}

func TestCaseAndOffices(t *testing.T) {
	db := setupStore(t)
	out, err := run(t, "case", "C-404", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "C-404: 50 (not found, neutral score)" {
		t.Fatalf("unexpected case output %q", out)
	}

	out, err = run(t, "offices", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "Camden\nNewark" {
		t.Fatalf("unexpected offices output %q", out)
	}
}

func TestCatalogValidate(t *testing.T) {
	setupStore(t)
	out, err := run(t, "catalog", "validate")
	if err != nil {
		t.Fatalf("validate default: %v", err)
	}
	if !strings.Contains(out, "built-in catalog: ok (7 layers") {
		t.Fatalf("unexpected output %q", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("layers: []\n"), 0o644)
	if _, err := run(t, "catalog", "validate", bad); err == nil {
		t.Fatal("expected validation error for empty catalog")
	}
}

func TestCatalogShow(t *testing.T) {
	setupStore(t)
	out, err := run(t, "catalog", "show", "gate-completion")
	if err != nil {
		t.Fatalf("show metric: %v", err)
	}
	if !strings.Contains(out, "name: Stage Gate Completion") || !strings.Contains(out, "higher_is_better: true") {
		t.Fatalf("unexpected metric output:\n%s", out)
	}

	out, err = run(t, "catalog", "show", "2", "--json")
	if err != nil {
		t.Fatalf("show layer: %v", err)
	}
	var layer struct {
		Name    string `json:"name"`
		Metrics []any  `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(out), &layer); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if layer.Name != "Inventory Health & Risk" || len(layer.Metrics) == 0 {
		t.Fatalf("unexpected layer %+v", layer)
	}

	if _, err := run(t, "catalog", "show", "no-such-metric"); err == nil {
		t.Fatal("expected error for unknown metric")
	}
	if _, err := run(t, "catalog", "show", "99"); err == nil {
		t.Fatal("expected error for unknown layer")
	}
}

func TestRejectsBadArgs(t *testing.T) {
	db := setupStore(t)
	if _, err := run(t, "portfolio", "--db", db, "--as-of", "yesterday"); err == nil {
		t.Fatal("expected error for malformed --as-of")
	}
	if _, err := run(t, "office", "--db", db); err == nil {
		t.Fatal("expected error for missing office name")
	}
}
