package escalation

import (
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/band"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/seeded"
)

// Unassigned fills owner or office when there is nothing to draw from.
const Unassigned = "Unassigned"

// #region deriver
// Deriver builds the escalation list from a portfolio result.
type Deriver struct {
	config Config
}

// NewDeriver creates a deriver with the given configuration.
func NewDeriver(config Config) *Deriver {
	return &Deriver{config: config}
}

// #endregion deriver

// #region derive
// Derive emits one item per red metric in layer/metric order, then backfills
// with amber metrics when fewer than MinItems were produced. One generator
// drives the whole run; per item it draws weeks (red only), owner, office.
func (d *Deriver) Derive(res lci.Result, rs []records.Record, dir []records.Attorney) []Item {
	g := seeded.New(d.config.Seed)
	offices := records.ListOffices(rs)
	var items []Item

	res.Metrics(func(l lci.LayerResult, m lci.MetricReading) {
		if m.Band != band.Red {
			return
		}
		weeks := 1 + int(g.Next()*4)
		items = append(items, d.item(g, l, m, weeks, LevelFor(weeks), dir, offices))
	})

	if len(items) < d.config.MinItems {
		res.Metrics(func(l lci.LayerResult, m lci.MetricReading) {
			if m.Band != band.Amber || len(items) >= d.config.Cap {
				return
			}
			items = append(items, d.item(g, l, m, 1, LevelUnitReview, dir, offices))
		})
	}

	if len(items) > d.config.Cap {
		items = items[:d.config.Cap]
	}
	return items
}

// DeriveFromRecords computes the portfolio result with e and derives from it.
func (d *Deriver) DeriveFromRecords(e *lci.Engine, rs []records.Record, dir []records.Attorney) []Item {
	return d.Derive(e.ComputePortfolio(rs), rs, dir)
}

func (d *Deriver) item(g *seeded.Generator, l lci.LayerResult, m lci.MetricReading, weeks int, level Level, dir []records.Attorney, offices []string) Item {
	owner := Unassigned
	if i := g.Intn(len(dir)); len(dir) > 0 {
		owner = dir[i].Name
	}
	office := Unassigned
	if i := g.Intn(len(offices)); len(offices) > 0 {
		office = offices[i]
	}
	return Item{
		ID:         "ESC-" + m.ID,
		MetricID:   m.ID,
		MetricName: m.Name,
		LayerName:  l.Name,
		Band:       m.Band,
		Value:      m.Value,
		Target:     m.Target,
		Unit:       m.Unit,
		WeeksInRed: weeks,
		Level:      level,
		Owner:      owner,
		Office:     office,
	}
}

// #endregion derive
