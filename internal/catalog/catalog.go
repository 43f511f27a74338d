package catalog

import (
	"fmt"
	"sync"
)

// #region metric-ids
// Metric ids whose values are derived from the live record collection.
const (
	MetricStalledRate           = "stalled-rate"
	MetricAgedDiscovery         = "aged-discovery"
	MetricStageSLACompliance    = "stage-sla-compliance"
	MetricHighRiskConcentration = "high-risk-concentration"
	MetricGateCompletion        = "gate-completion"
)

// Layer ids referenced outside the catalog.
const (
	LayerIntake     = 0
	LayerSLA        = 1
	LayerInventory  = 2
	LayerExecution  = 3
	LayerResolution = 4
	LayerClient     = 5
	LayerFinancial  = 6
)

// #endregion metric-ids

// #region builders
func higher(id, name, unit string, target, redMin, amberMin, greenMin, greenMax float64) MetricDefinition {
	return MetricDefinition{
		ID: id, Name: name, Unit: unit, Target: target, HigherIsBetter: true,
		Red:   Range{Min: redMin, Max: amberMin},
		Amber: Range{Min: amberMin, Max: greenMin},
		Green: Range{Min: greenMin, Max: greenMax},
	}
}

func lower(id, name, unit string, target, greenMin, greenMax, amberMax, redMax float64) MetricDefinition {
	return MetricDefinition{
		ID: id, Name: name, Unit: unit, Target: target, HigherIsBetter: false,
		Green: Range{Min: greenMin, Max: greenMax},
		Amber: Range{Min: greenMax, Max: amberMax},
		Red:   Range{Min: amberMax, Max: redMax},
	}
}

// #endregion builders

// #region default
var defaultCatalog = sync.OnceValue(func() Catalog {
	c := Catalog{Layers: []LayerDefinition{
		{ID: LayerIntake, Name: "Intake & Case Opening", Weight: 0.12, Metrics: []MetricDefinition{
			lower("intake-cycle-time", "Intake Cycle Time", "days", 3, 0, 3, 6, 30),
			higher("conflict-check-sla", "Conflict Checks Within SLA", "%", 98, 0, 90, 97, 100),
			higher("opening-docs-complete", "Opening Packet Completeness", "%", 95, 0, 80, 92, 100),
		}},
		{ID: LayerSLA, Name: "SLA Compliance", Weight: 0.18, Metrics: []MetricDefinition{
			higher(MetricStageSLACompliance, "Cases Within Stage SLA", "%", 90, 0, 75, 88, 100),
			higher("client-contact-sla", "Client Contact Within 30 Days", "%", 95, 0, 85, 93, 100),
			higher("deadline-adherence", "Court Deadlines Met", "%", 100, 0, 95, 99, 100),
			lower("response-time", "Client Response Time", "hours", 24, 0, 24, 48, 168),
		}},
		{ID: LayerInventory, Name: "Inventory Health & Risk", Weight: 0.20, Metrics: []MetricDefinition{
			lower(MetricStalledRate, "Stalled Case Rate", "%", 5, 0, 8, 15, 100),
			lower(MetricAgedDiscovery, "Discovery Over 180 Days", "%", 10, 0, 10, 20, 100),
			lower(MetricHighRiskConcentration, "Multi-Flag Risk Concentration", "%", 5, 0, 7, 12, 100),
			lower("caseload-per-attorney", "Active Caseload per Attorney", "cases", 60, 0, 70, 90, 200),
		}},
		{ID: LayerExecution, Name: "Litigation Execution", Weight: 0.15, Metrics: []MetricDefinition{
			higher(MetricGateCompletion, "Stage Gate Completion", "%", 90, 0, 70, 85, 100),
			higher("discovery-on-time", "Discovery Responses On Time", "%", 95, 0, 85, 93, 100),
			higher("expert-disclosure", "Expert Disclosures On Time", "%", 100, 0, 90, 98, 100),
			higher("motion-success", "Dispositive Motion Success", "%", 60, 0, 35, 50, 100),
		}},
		{ID: LayerResolution, Name: "Resolution & Outcomes", Weight: 0.15, Metrics: []MetricDefinition{
			higher("settlement-to-ev", "Settlement vs. Expected Value", "%", 100, 0, 80, 95, 150),
			lower("time-to-resolution", "Median Time to Resolution", "months", 18, 0, 18, 24, 60),
			higher("trial-win-rate", "Trial Win Rate", "%", 65, 0, 40, 55, 100),
		}},
		{ID: LayerClient, Name: "Client Experience", Weight: 0.10, Metrics: []MetricDefinition{
			higher("client-satisfaction", "Client Satisfaction", "score", 4.5, 1, 3.8, 4.3, 5),
			lower("complaint-rate", "Complaint Rate", "%", 1, 0, 2, 4, 20),
			lower("update-cadence", "Days Between Client Updates", "days", 14, 0, 14, 21, 60),
		}},
		{ID: LayerFinancial, Name: "Financial Control", Weight: 0.10, Metrics: []MetricDefinition{
			lower("cost-to-ev", "Cost to Expected Value", "%", 15, 0, 18, 25, 60),
			higher("realization-rate", "Billing Realization", "%", 92, 0, 80, 88, 100),
			lower("wip-aging", "Unbilled WIP Age", "days", 30, 0, 45, 75, 180),
			lower("budget-variance", "Budget Variance", "%", 5, 0, 5, 12, 50),
		}},
	}}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("catalog: compiled-in catalog is invalid: %v", err))
	}
	return c
})

// Default returns a copy of the compiled-in catalog. It panics on first use
// if the compiled configuration fails validation.
func Default() Catalog {
	return defaultCatalog().Clone()
}

// #endregion default
