package band

import "github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"

// #region band-type
// Band is the red/amber/green classification used at every level.
type Band string

const (
	Green Band = "green"
	Amber Band = "amber"
	Red   Band = "red"
)

// #endregion band-type

// #region thresholds
// Score thresholds shared by the metric scorer, layer banding and the
// composite. Green scores occupy [85,100], amber [70,85), red [0,70).
const (
	GreenThreshold = 85.0
	AmberThreshold = 70.0
	MaxScore       = 100.0
	MinScore       = 0.0
)

// ForScore bands a 0-100 score.
func ForScore(score float64) Band {
	switch {
	case score >= GreenThreshold:
		return Green
	case score >= AmberThreshold:
		return Amber
	default:
		return Red
	}
}

// #endregion thresholds

// #region classify
// Classify maps a raw metric value to its band. Total for any value.
func Classify(value float64, def catalog.MetricDefinition) Band {
	if def.HigherIsBetter {
		switch {
		case value >= def.Green.Min:
			return Green
		case value >= def.Amber.Min:
			return Amber
		default:
			return Red
		}
	}
	switch {
	case value <= def.Green.Max:
		return Green
	case value <= def.Amber.Max:
		return Amber
	default:
		return Red
	}
}

// #endregion classify

// #region span
// Span returns the range for band b of def.
func Span(def catalog.MetricDefinition, b Band) catalog.Range {
	switch b {
	case Green:
		return def.Green
	case Amber:
		return def.Amber
	default:
		return def.Red
	}
}

// BestWorst returns the better and worse end of r for the metric's direction.
func BestWorst(r catalog.Range, higherIsBetter bool) (best, worst float64) {
	if higherIsBetter {
		return r.Max, r.Min
	}
	return r.Min, r.Max
}

// #endregion span
