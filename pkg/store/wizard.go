package store

// WizardState is the guided-conversation state owned by the caller between
// turns. The state machine replaces it wholesale on every transition, so a
// caller can keep prior snapshots for back-navigation and replay.
type WizardState struct {
	Step        string `json:"step"`
	Action      string `json:"action"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Product     string `json:"product"`
	Constraints string `json:"constraints"`
}

// Wizard steps
const (
	StepGreeting           = "GREETING"
	StepMenu               = "MENU"
	StepCollectCategory    = "COLLECT_CATEGORY"
	StepCollectSubcategory = "COLLECT_SUBCATEGORY"
	StepCollectProduct     = "COLLECT_PRODUCT"
	StepCollectConstraints = "COLLECT_CONSTRAINTS"
	StepGenerate           = "GENERATE"
)

// EmptyWizardState returns a fresh state at the greeting step.
func EmptyWizardState() WizardState {
	return WizardState{Step: StepGreeting}
}
