package lci

import (
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
)

// #region layer
// AggregateLayer averages metric scores with equal weight and bands the mean
// on the shared score thresholds. A layer with no readings scores 0.
func AggregateLayer(def catalog.LayerDefinition, readings []MetricReading) LayerResult {
	var sum float64
	for _, m := range readings {
		sum += m.Score
	}
	score := 0.0
	if len(readings) > 0 {
		score = round1(sum / float64(len(readings)))
	}
	return LayerResult{
		ID:      def.ID,
		Name:    def.Name,
		Weight:  def.Weight,
		Score:   score,
		Band:    band.ForScore(score),
		Metrics: readings,
	}
}

// #endregion layer

// #region composite
// Composite returns round(sum(score*weight), 1) and its band.
func Composite(layers []LayerResult) (float64, band.Band) {
	var sum float64
	for _, l := range layers {
		sum += l.Score * l.Weight
	}
	score := round1(sum)
	return score, band.ForScore(score)
}

// #endregion composite
