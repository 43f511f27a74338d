package catalog

import (
	"errors"
	"fmt"
	"math"
)

// #region limits
const (
	LayerCount      = 7
	MinLayerMetrics = 3
	MaxLayerMetrics = 5
	WeightTolerance = 1e-6
)

// #endregion limits

// #region validate
// Validate checks the structural invariants of the catalog and returns every
// violation joined into one error, or nil.
func (c Catalog) Validate() error {
	var errs []error

	if len(c.Layers) != LayerCount {
		errs = append(errs, fmt.Errorf("expected %d layers, got %d", LayerCount, len(c.Layers)))
	}

	seenLayers := make(map[int]bool)
	seenMetrics := make(map[string]string)
	var weightSum float64

	for _, l := range c.Layers {
		if l.ID < 0 || l.ID >= LayerCount {
			errs = append(errs, fmt.Errorf("layer %q: id %d outside [0,%d]", l.Name, l.ID, LayerCount-1))
		}
		if seenLayers[l.ID] {
			errs = append(errs, fmt.Errorf("layer %q: duplicate id %d", l.Name, l.ID))
		}
		seenLayers[l.ID] = true

		if l.Weight <= 0 || l.Weight > 1 {
			errs = append(errs, fmt.Errorf("layer %q: weight %.4f outside (0,1]", l.Name, l.Weight))
		}
		weightSum += l.Weight

		if n := len(l.Metrics); n < MinLayerMetrics || n > MaxLayerMetrics {
			errs = append(errs, fmt.Errorf("layer %q: %d metrics, want %d-%d", l.Name, n, MinLayerMetrics, MaxLayerMetrics))
		}

		for _, m := range l.Metrics {
			if m.ID == "" {
				errs = append(errs, fmt.Errorf("layer %q: metric %q has empty id", l.Name, m.Name))
				continue
			}
			if prev, ok := seenMetrics[m.ID]; ok {
				errs = append(errs, fmt.Errorf("metric %q: duplicate id (also in layer %q)", m.ID, prev))
			}
			seenMetrics[m.ID] = l.Name
			if err := validateRanges(m); err != nil {
				errs = append(errs, fmt.Errorf("metric %q: %w", m.ID, err))
			}
		}
	}

	if math.Abs(weightSum-1) > WeightTolerance {
		errs = append(errs, fmt.Errorf("layer weights sum to %.6f, want 1.0", weightSum))
	}

	return errors.Join(errs...)
}

// validateRanges requires each range to be non-inverted and the three ranges
// to touch end to end in direction order.
func validateRanges(m MetricDefinition) error {
	for name, r := range map[string]Range{"green": m.Green, "amber": m.Amber, "red": m.Red} {
		if r.Min > r.Max {
			return fmt.Errorf("%s range inverted [%g,%g]", name, r.Min, r.Max)
		}
	}
	if m.HigherIsBetter {
		if m.Red.Max != m.Amber.Min || m.Amber.Max != m.Green.Min {
			return fmt.Errorf("ranges not contiguous red->amber->green: red %v amber %v green %v", m.Red, m.Amber, m.Green)
		}
		return nil
	}
	if m.Green.Max != m.Amber.Min || m.Amber.Max != m.Red.Min {
		return fmt.Errorf("ranges not contiguous green->amber->red: green %v amber %v red %v", m.Green, m.Amber, m.Red)
	}
	return nil
}

// #endregion validate
