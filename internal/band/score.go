package band

import (
	"math"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
)

// #region sub-ranges
type subRange struct {
	lo, hi float64
}

var scoreRanges = map[Band]subRange{
	Green: {lo: GreenThreshold, hi: MaxScore},
	Amber: {lo: AmberThreshold, hi: GreenThreshold},
	Red:   {lo: MinScore, hi: AmberThreshold},
}

// Largest scores an amber or red value may take, keeping the upper end open.
var (
	maxAmberScore = math.Nextafter(GreenThreshold, MinScore)
	maxRedScore   = math.Nextafter(AmberThreshold, MinScore)
)

// #endregion sub-ranges

// #region score
// Score maps a metric value to a continuous 0-100 score. The value is first
// classified, then positioned linearly inside that band's span, so Score and
// Classify can never disagree on the band.
func Score(value float64, def catalog.MetricDefinition) float64 {
	b := Classify(value, def)
	pos := Position(value, def, b)
	sr := scoreRanges[b]
	s := sr.lo + pos*(sr.hi-sr.lo)

	switch b {
	case Amber:
		s = math.Min(s, maxAmberScore)
	case Red:
		s = math.Min(s, maxRedScore)
	}
	return clamp(s, MinScore, MaxScore)
}

// Position returns where value sits inside band b's span, 0 at the worse end
// and 1 at the better end. Zero-width spans sit at 1 for green and amber and
// at 0 for red.
func Position(value float64, def catalog.MetricDefinition, b Band) float64 {
	r := Span(def, b)
	if r.Width() <= 0 {
		if b == Red {
			return 0
		}
		return 1
	}
	best, worst := BestWorst(r, def.HigherIsBetter)
	return clamp((value-worst)/(best-worst), 0, 1)
}

// #endregion score

// #region helpers
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion helpers
