package lci

import (
	"math"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/seeded"
)

// #region trend-config
const (
	driftCenter = 0.45 // below 0.5: mean drift is upward
	driftScale  = 0.3

	metricVarianceRatio = 0.2
	minMetricVariance   = 2.0
	overallVariance     = 8.0
)

// #endregion trend-config

// #region trend
// Trend synthesizes a 12-point history ending exactly at round(current, 1).
// Points never go below zero.
func Trend(seedKey string, current, variance float64) [TrendPoints]float64 {
	g := seeded.New(seedKey)
	var out [TrendPoints]float64

	v := current - variance/2
	for i := range out {
		v = math.Max(0, v+(g.Next()-driftCenter)*variance*driftScale)
		out[i] = round1(v)
	}
	out[TrendPoints-1] = round1(current)
	return out
}

// metricVariance scales trend wiggle to the size of the value.
func metricVariance(value float64) float64 {
	return math.Max(math.Abs(value)*metricVarianceRatio, minMetricVariance)
}

// #endregion trend
