package records

// #region stages
// Stage is one step of the litigation lifecycle with its SLA target in days.
type Stage struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SLADays int    `json:"sla_days"`
}

const (
	StageIntake        = "intake"
	StageInvestigation = "investigation"
	StagePleadings     = "pleadings"
	StageDiscovery     = "discovery"
	StageExpert        = "expert"
	StageMediation     = "mediation"
	StageTrialPrep     = "trial-prep"
	StageTrial         = "trial"
	StageSettlement    = "settlement"
)

// Stages lists every stage in lifecycle order.
var Stages = []Stage{
	{ID: StageIntake, Name: "Intake", SLADays: 14},
	{ID: StageInvestigation, Name: "Investigation", SLADays: 45},
	{ID: StagePleadings, Name: "Pleadings", SLADays: 30},
	{ID: StageDiscovery, Name: "Discovery", SLADays: 180},
	{ID: StageExpert, Name: "Expert Disclosure", SLADays: 60},
	{ID: StageMediation, Name: "Mediation", SLADays: 45},
	{ID: StageTrialPrep, Name: "Trial Preparation", SLADays: 60},
	{ID: StageTrial, Name: "Trial", SLADays: 30},
	{ID: StageSettlement, Name: "Settlement Administration", SLADays: 30},
}

// StageByID looks up a stage.
func StageByID(id string) (Stage, bool) {
	for _, s := range Stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// SLADays returns the stage SLA target, or 0 for an unknown stage.
func SLADays(stageID string) int {
	s, ok := StageByID(stageID)
	if !ok {
		return 0
	}
	return s.SLADays
}

// #endregion stages
