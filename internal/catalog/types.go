package catalog

// #region range
// Range is a closed numeric interval used for one band of a metric.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Width returns Max - Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// #endregion range

// #region metric-definition
// MetricDefinition is the static configuration of a single metric.
//
// For higher-is-better metrics the ranges ascend red -> amber -> green;
// for lower-is-better metrics they ascend green -> amber -> red.
type MetricDefinition struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	Unit           string  `yaml:"unit" json:"unit"`
	Target         float64 `yaml:"target" json:"target"`
	HigherIsBetter bool    `yaml:"higher_is_better" json:"higher_is_better"`
	Green          Range   `yaml:"green" json:"green"`
	Amber          Range   `yaml:"amber" json:"amber"`
	Red            Range   `yaml:"red" json:"red"`
}

// #endregion metric-definition

// #region layer-definition
// LayerDefinition is one weighted thematic grouping of metrics.
type LayerDefinition struct {
	ID      int                `yaml:"id" json:"id"`
	Name    string             `yaml:"name" json:"name"`
	Weight  float64            `yaml:"weight" json:"weight"`
	Metrics []MetricDefinition `yaml:"metrics" json:"metrics"`
}

// #endregion layer-definition

// #region catalog
// Catalog is the ordered set of layers. Treat it as read-only once validated.
type Catalog struct {
	Layers []LayerDefinition `yaml:"layers" json:"layers"`
}

// Metric looks up a metric definition by id across all layers.
func (c Catalog) Metric(id string) (MetricDefinition, bool) {
	for _, l := range c.Layers {
		for _, m := range l.Metrics {
			if m.ID == id {
				return m, true
			}
		}
	}
	return MetricDefinition{}, false
}

// Layer looks up a layer by id.
func (c Catalog) Layer(id int) (LayerDefinition, bool) {
	for _, l := range c.Layers {
		if l.ID == id {
			return l, true
		}
	}
	return LayerDefinition{}, false
}

// MetricCount returns the number of metrics across all layers.
func (c Catalog) MetricCount() int {
	n := 0
	for _, l := range c.Layers {
		n += len(l.Metrics)
	}
	return n
}

// Clone returns a deep copy so callers can never alias the shared default.
func (c Catalog) Clone() Catalog {
	out := Catalog{Layers: make([]LayerDefinition, len(c.Layers))}
	for i, l := range c.Layers {
		l.Metrics = append([]MetricDefinition(nil), l.Metrics...)
		out.Layers[i] = l
	}
	return out
}

// #endregion catalog
