package catalog

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	c := Default()
	var sum float64
	for _, l := range c.Layers {
		sum += l.Weight
	}
	if math.Abs(sum-1) > WeightTolerance {
		t.Fatalf("weights sum to %f", sum)
	}
}

func TestDefaultShape(t *testing.T) {
	c := Default()
	if len(c.Layers) != LayerCount {
		t.Fatalf("expected %d layers, got %d", LayerCount, len(c.Layers))
	}
	for i, l := range c.Layers {
		if l.ID != i {
			t.Errorf("layer %d has id %d", i, l.ID)
		}
		if len(l.Metrics) < MinLayerMetrics || len(l.Metrics) > MaxLayerMetrics {
			t.Errorf("layer %q has %d metrics", l.Name, len(l.Metrics))
		}
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}

func TestDefaultContainsDerivedMetrics(t *testing.T) {
	c := Default()
	for _, id := range []string{MetricStalledRate, MetricAgedDiscovery, MetricStageSLACompliance, MetricHighRiskConcentration, MetricGateCompletion} {
		if _, ok := c.Metric(id); !ok {
			t.Errorf("missing derived metric %q", id)
		}
	}
	inv, ok := c.Layer(LayerInventory)
	if !ok || inv.Name != "Inventory Health & Risk" {
		t.Fatalf("inventory layer = %+v", inv)
	}
}

func TestDefaultReturnsIndependentCopy(t *testing.T) {
	a := Default()
	a.Layers[0].Weight = 0.9
	a.Layers[0].Metrics[0].Target = -1
	b := Default()
	if b.Layers[0].Weight == 0.9 || b.Layers[0].Metrics[0].Target == -1 {
		t.Fatal("mutating a copy leaked into the default catalog")
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	c := Default()
	c.Layers[0].Weight += 0.05
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "sum to") {
		t.Fatalf("expected weight sum error, got %v", err)
	}
}

func TestValidateRejectsGapInRanges(t *testing.T) {
	c := Default()
	c.Layers[2].Metrics[0].Amber.Min = 9 // green max stays 8
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "not contiguous") {
		t.Fatalf("expected contiguity error, got %v", err)
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	c := Default()
	c.Layers[1].Metrics[1].ID = c.Layers[1].Metrics[0].ID
	c.Layers[3].Metrics = c.Layers[3].Metrics[:2]
	c.Layers[4].Weight = 0
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"duplicate id", "2 metrics", "outside (0,1]", "sum to"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestValidateRejectsWrongLayerCount(t *testing.T) {
	c := Default()
	c.Layers = c.Layers[:6]
	if err := c.Validate(); err == nil {
		t.Fatal("expected layer count error")
	}
}

func TestMarshalParseRoundTripValidates(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.MetricCount() != Default().MetricCount() {
		t.Fatalf("metric count %d != %d", c.MetricCount(), Default().MetricCount())
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	bad := "layers:\n  - id: 0\n    name: Only\n    weight: 1\n    metrics: []\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadOrDefaultEmptyPath(t *testing.T) {
	c, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if len(c.Layers) != LayerCount {
		t.Fatalf("got %d layers", len(c.Layers))
	}
}
