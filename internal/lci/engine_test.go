package lci

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
)

var testAsOf = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// #region helpers
func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(catalog.Default(), testAsOf)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func daysAgo(n int) time.Time {
	return testAsOf.Add(-time.Duration(n) * 24 * time.Hour)
}

func mixedRecords() []records.Record {
	offices := []string{"Newark", "Camden", "Trenton"}
	attorneys := []string{"A. Reyes", "B. Osei", "C. Lin", "D. Novak"}
	stages := []string{records.StageIntake, records.StageDiscovery, records.StageMediation, records.StageTrialPrep}
	var rs []records.Record
	for i := 0; i < 40; i++ {
		r := records.Record{
			ID:             fmt.Sprintf("CASE-%04d", i),
			Stage:          stages[i%len(stages)],
			Status:         records.StatusActive,
			Office:         offices[i%len(offices)],
			Attorney:       attorneys[i%len(attorneys)],
			EVConfidence:   0.4 + float64(i%5)*0.1,
			StageEnteredAt: daysAgo(10 + i*7),
			Gates:          []records.Gate{{Name: "g1", Completed: true}, {Name: "g2", Completed: i%2 == 0}},
		}
		if i%6 == 0 {
			r.RiskFlags = append(r.RiskFlags, records.FlagStalled)
		}
		if i%9 == 0 {
			r.RiskFlags = append(r.RiskFlags, records.FlagSOLRisk)
		}
		if i%10 == 7 {
			r.Status = records.StatusSettled
		}
		rs = append(rs, r)
	}
	return rs
}

func stalledOverSLA(n int) []records.Record {
	rs := make([]records.Record, n)
	for i := range rs {
		rs[i] = records.Record{
			ID:             fmt.Sprintf("STALL-%03d", i),
			Stage:          records.StageDiscovery,
			Status:         records.StatusActive,
			Office:         "Newark",
			Attorney:       "A. Reyes",
			RiskFlags:      []string{records.FlagStalled, records.FlagClientUnresponsive},
			EVConfidence:   0.3,
			StageEnteredAt: daysAgo(300),
		}
	}
	return rs
}

func reading(t *testing.T, res Result, metricID string) MetricReading {
	t.Helper()
	for _, l := range res.Layers {
		for _, m := range l.Metrics {
			if m.ID == metricID {
				return m
			}
		}
	}
	t.Fatalf("metric %q not found", metricID)
	return MetricReading{}
}

// #endregion helpers

// #region invariants
func TestResultInvariants(t *testing.T) {
	e := newEngine(t)
	res := e.ComputePortfolio(mixedRecords())

	if len(res.Layers) != catalog.LayerCount {
		t.Fatalf("expected %d layers, got %d", catalog.LayerCount, len(res.Layers))
	}
	checkScore := func(what string, s float64) {
		if math.IsNaN(s) || s < 0 || s > 100 {
			t.Errorf("%s score %f outside [0,100]", what, s)
		}
	}
	checkScore("composite", res.Score)
	if res.Band != band.ForScore(res.Score) {
		t.Errorf("composite band %s does not match score %f", res.Band, res.Score)
	}
	for _, l := range res.Layers {
		checkScore(l.Name, l.Score)
		if l.Band != band.ForScore(l.Score) {
			t.Errorf("layer %q band %s does not match score %f", l.Name, l.Band, l.Score)
		}
		for _, m := range l.Metrics {
			checkScore(m.ID, m.Score)
			def, _ := e.Catalog().Metric(m.ID)
			if m.Band != band.Classify(m.Value, def) {
				t.Errorf("metric %q band %s != classify %s", m.ID, m.Band, band.Classify(m.Value, def))
			}
			if band.ForScore(m.Score) != m.Band {
				t.Errorf("metric %q score %f disagrees with band %s", m.ID, m.Score, m.Band)
			}
		}
	}
}

func TestCompositeIsRoundedWeightedSum(t *testing.T) {
	e := newEngine(t)
	for _, res := range []Result{
		e.ComputePortfolio(mixedRecords()),
		e.ComputeOffice(mixedRecords(), "Camden"),
		e.ComputeStage(mixedRecords(), records.StageDiscovery),
		e.ComputePortfolio(nil),
	} {
		var sum float64
		for _, l := range res.Layers {
			sum += l.Score * l.Weight
		}
		if want := math.Round(sum*10) / 10; res.Score != want {
			t.Errorf("seed %s: composite %f, want %f", res.Seed, res.Score, want)
		}
	}
}

func TestLayerScoreIsUnweightedMean(t *testing.T) {
	res := newEngine(t).ComputePortfolio(mixedRecords())
	for _, l := range res.Layers {
		var sum float64
		for _, m := range l.Metrics {
			sum += m.Score
		}
		want := math.Round(sum/float64(len(l.Metrics))*10) / 10
		if l.Score != want {
			t.Errorf("layer %q score %f, want %f", l.Name, l.Score, want)
		}
	}
}

// #endregion invariants

// #region determinism
func TestComputeIsDeterministic(t *testing.T) {
	e := newEngine(t)
	rs := mixedRecords()

	a, err := json.Marshal(e.ComputeOffice(rs, "Newark"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(e.ComputeOffice(rs, "Newark"))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatal("identical inputs produced different results")
	}

	other, _ := NewEngine(catalog.Default(), testAsOf)
	if !reflect.DeepEqual(e.ComputePortfolio(rs), other.ComputePortfolio(rs)) {
		t.Fatal("separate engines disagree on identical inputs")
	}
}

func TestGranularitiesUseDistinctSeeds(t *testing.T) {
	e := newEngine(t)
	rs := mixedRecords()
	p := e.ComputePortfolio(rs)
	o := e.ComputeOffice(rs, "Newark")
	if p.Seed == o.Seed {
		t.Fatal("portfolio and office share a seed")
	}
	if o.Seed != "office-Newark" {
		t.Errorf("office seed = %q", o.Seed)
	}
	if reflect.DeepEqual(p.Layers[5].Metrics, o.Layers[5].Metrics) {
		t.Error("synthetic metrics identical across granularities")
	}
}

// #endregion determinism

// #region edge-cases
func TestEmptyPortfolioIsValid(t *testing.T) {
	res := newEngine(t).ComputePortfolio(nil)
	if res.RecordCount != 0 {
		t.Errorf("record count = %d", res.RecordCount)
	}
	if math.IsNaN(res.Score) {
		t.Fatal("composite is NaN")
	}
	for _, id := range []string{
		catalog.MetricStalledRate, catalog.MetricAgedDiscovery, catalog.MetricStageSLACompliance,
		catalog.MetricHighRiskConcentration, catalog.MetricGateCompletion,
	} {
		if v := reading(t, res, id).Value; v != 0 {
			t.Errorf("%s = %f on empty input, want 0", id, v)
		}
	}
}

func TestUnknownAttorneyScoresEmptySet(t *testing.T) {
	e := newEngine(t)
	dir := []records.Attorney{{ID: "att-1", Name: "A. Reyes", Office: "Newark"}}
	res := e.ComputeAttorney(mixedRecords(), "att-404", dir)
	if res.RecordCount != 0 {
		t.Fatalf("expected empty set, got %d records", res.RecordCount)
	}
	known := e.ComputeAttorney(mixedRecords(), "att-1", dir)
	if known.RecordCount != 10 {
		t.Fatalf("expected 10 records for A. Reyes, got %d", known.RecordCount)
	}
}

func TestStalledOverSLADrivesInventoryRed(t *testing.T) {
	res := newEngine(t).ComputePortfolio(stalledOverSLA(25))

	inv := res.Layers[catalog.LayerInventory]
	if inv.Name != "Inventory Health & Risk" {
		t.Fatalf("unexpected layer %q", inv.Name)
	}
	if inv.Band != band.Red {
		t.Fatalf("inventory band = %s (score %f), want red", inv.Band, inv.Score)
	}
	if v := reading(t, res, catalog.MetricStalledRate).Value; v != 100 {
		t.Errorf("stalled rate = %f, want 100", v)
	}
	if v := reading(t, res, catalog.MetricStageSLACompliance).Value; v != 0 {
		t.Errorf("SLA compliance = %f, want 0", v)
	}
}

func TestDerivedReadingsAreMarked(t *testing.T) {
	res := newEngine(t).ComputePortfolio(mixedRecords())
	derived := 0
	for _, l := range res.Layers {
		for _, m := range l.Metrics {
			if m.Derived {
				derived++
			}
		}
	}
	if derived != 5 {
		t.Fatalf("derived readings = %d, want 5", derived)
	}
	if !reading(t, res, catalog.MetricGateCompletion).Derived {
		t.Error("gate completion should be marked derived")
	}
}

func TestComputeScope(t *testing.T) {
	e := newEngine(t)
	rs := mixedRecords()
	got, err := e.ComputeScope(GranularityStage, records.StageIntake, rs, nil)
	if err != nil {
		t.Fatalf("ComputeScope: %v", err)
	}
	if !reflect.DeepEqual(got, e.ComputeStage(rs, records.StageIntake)) {
		t.Fatal("ComputeScope(stage) differs from ComputeStage")
	}
	if _, err := e.ComputeScope("galaxy", "", rs, nil); !errors.Is(err, ErrUnknownGranularity) {
		t.Fatalf("expected ErrUnknownGranularity, got %v", err)
	}
}

func TestNewEngineRejectsInvalidCatalog(t *testing.T) {
	c := catalog.Default()
	c.Layers[0].Weight = 0.5
	if _, err := NewEngine(c, testAsOf); err == nil {
		t.Fatal("expected invalid catalog error")
	}
}

// #endregion edge-cases

// #region concurrency
func TestComputeAllOfficesMatchesSequential(t *testing.T) {
	e := newEngine(t)
	rs := mixedRecords()
	all := e.ComputeAllOffices(rs)
	if len(all) != 3 {
		t.Fatalf("expected 3 offices, got %d", len(all))
	}
	for _, or := range all {
		if !reflect.DeepEqual(or.Result, e.ComputeOffice(rs, or.Office)) {
			t.Errorf("office %s: concurrent result differs", or.Office)
		}
	}
}

// #endregion concurrency
