package escalation

import "github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"

// #region level
// Level is the escalation severity, derived from weeks in breach.
type Level string

const (
	LevelUnitReview Level = "unit-review"
	LevelManager    Level = "manager"
	LevelVP         Level = "vp"
	LevelExecutive  Level = "executive"
)

// LevelFor maps weeks in red to a level: 4+ executive, 3 vp, 2 manager,
// otherwise unit review.
func LevelFor(weeksInRed int) Level {
	switch {
	case weeksInRed >= 4:
		return LevelExecutive
	case weeksInRed >= 3:
		return LevelVP
	case weeksInRed >= 2:
		return LevelManager
	default:
		return LevelUnitReview
	}
}

// #endregion level

// #region item
// Item is one escalation. Items are flat records with no link back to the
// result they were derived from.
type Item struct {
	ID         string    `json:"id"`
	MetricID   string    `json:"metric_id"`
	MetricName string    `json:"metric_name"`
	LayerName  string    `json:"layer_name"`
	Band       band.Band `json:"band"`
	Value      float64   `json:"value"`
	Target     float64   `json:"target"`
	Unit       string    `json:"unit"`
	WeeksInRed int       `json:"weeks_in_red"`
	Level      Level     `json:"escalation_level"`
	Owner      string    `json:"owner"`
	Office     string    `json:"office"`
}

// #endregion item

// #region config
// Config holds the caps and seed for an escalation run.
type Config struct {
	Cap      int    // hard limit on emitted items
	MinItems int    // below this, amber metrics backfill the list
	Seed     string // generator key for the whole run
}

// DefaultConfig returns the standard escalation settings.
func DefaultConfig() Config {
	return Config{
		Cap:      12,
		MinItems: 8,
		Seed:     "escalations-seed",
	}
}

// #endregion config

// #region summary
// CountByLevel tallies items per escalation level.
func CountByLevel(items []Item) map[Level]int {
	out := make(map[Level]int, 4)
	for _, it := range items {
		out[it.Level]++
	}
	return out
}

// #endregion summary
