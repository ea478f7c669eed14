package wizard

import (
	"strings"

	"adwise-be/pkg/store"
)

// Option is one selectable choice in a wizard payload.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Desc  string `json:"desc,omitempty"`
}

// UI payload types
const (
	UITypeMenu       = "menu"
	UITypeCategories = "categories"
	UITypeInput      = "input"
	UITypeResult     = "result"
)

// Payload is what the guided UI renders after a turn. AgentPrompt is set
// only when Ready is true; callers must not invoke the agent before that.
type Payload struct {
	Message     string   `json:"message"`
	UIType      string   `json:"ui_type"`
	Options     []Option `json:"options"`
	Ready       bool     `json:"ready"`
	AgentPrompt string   `json:"agent_prompt,omitempty"`
}

// backCommands are recognized globally, before any per-state logic.
var backCommands = map[string]struct{}{
	"__back":   {},
	"back":     {},
	"go back":  {},
	"prev":     {},
	"previous": {},
	"return":   {},
	"חזור":     {},
	"אחורה":    {},
}

// ProcessMessage is the wizard transition function: (input, state) in, a new
// state and UI payload out. It owns no memory; the caller persists state
// between turns and may replay or roll back freely.
func ProcessMessage(input string, state *store.WizardState) (store.WizardState, Payload) {
	var current store.WizardState
	if state != nil && state.Step != "" {
		current = *state
	} else {
		current = store.EmptyWizardState()
	}

	text := strings.TrimSpace(input)

	if _, isBack := backCommands[strings.ToLower(text)]; isBack && text != "" {
		next := goBack(current)
		return next, payloadForStep(next)
	}

	switch current.Step {
	case store.StepGreeting:
		next := current
		next.Step = store.StepMenu
		return next, Payload{
			Message: "👋 Welcome to **Ad-Wise**!\n\n" +
				"I help you craft high-converting ad copy grounded in real product listing data.\n\n" +
				"Choose an option:",
			UIType:  UITypeMenu,
			Options: menuOptions(),
		}

	case store.StepMenu:
		if !validAction(text) {
			return current, Payload{
				Message: "Please choose one of the options below:",
				UIType:  UITypeMenu,
				Options: menuOptions(),
			}
		}
		next := current
		next.Step = store.StepCollectCategory
		next.Action = text
		return next, payloadForStep(next)

	case store.StepCollectCategory:
		if findCategory(text) == nil {
			return current, Payload{
				Message: "Please select a category from the list:",
				UIType:  UITypeCategories,
				Options: topLevelOptions(),
			}
		}
		next := current
		next.Category = text
		if hasSubcategories(text) {
			next.Step = store.StepCollectSubcategory
			return next, payloadForStep(next)
		}
		next.Step = store.StepCollectProduct
		next.Subcategory = ""
		return next, payloadForStep(next)

	case store.StepCollectSubcategory:
		if !validSubcategory(current.Category, text) {
			return current, Payload{
				Message: "Please select a sub-category:",
				UIType:  UITypeCategories,
				Options: subcategoryOptions(current.Category),
			}
		}
		next := current
		next.Step = store.StepCollectProduct
		next.Subcategory = text
		return next, payloadForStep(next)

	case store.StepCollectProduct:
		if len(text) < 5 {
			return current, Payload{
				Message: "Please describe your product in a bit more detail:",
				UIType:  UITypeInput,
			}
		}
		next := current
		next.Step = store.StepCollectConstraints
		next.Product = text
		return next, payloadForStep(next)

	case store.StepCollectConstraints:
		constraints := text
		if strings.EqualFold(text, "skip") {
			constraints = ""
		}
		next := current
		next.Step = store.StepGenerate
		next.Constraints = constraints

		catLabel := categoryLabel(next.Category, next.Subcategory)
		return next, Payload{
			Message:     "✅ Got it! Generating output for _" + catLabel + "_...",
			UIType:      UITypeResult,
			Ready:       true,
			AgentPrompt: buildAgentPrompt(next),
		}

	case store.StepGenerate:
		// A result was just shown; any input restarts at the menu.
		next := store.EmptyWizardState()
		next.Step = store.StepMenu
		return next, payloadForStep(next)
	}

	next := store.EmptyWizardState()
	return next, payloadForStep(next)
}

// goBack transitions to the state-specific predecessor, clearing only the
// fields collected after it so earlier answers survive.
func goBack(state store.WizardState) store.WizardState {
	switch state.Step {
	case store.StepGreeting, store.StepMenu, store.StepCollectCategory:
		next := store.EmptyWizardState()
		next.Step = store.StepMenu
		return next

	case store.StepCollectSubcategory:
		next := state
		next.Step = store.StepCollectCategory
		next.Subcategory = ""
		return next

	case store.StepCollectProduct:
		next := state
		next.Product = ""
		next.Constraints = ""
		if hasSubcategories(state.Category) {
			next.Step = store.StepCollectSubcategory
			return next
		}
		next.Step = store.StepCollectCategory
		next.Category = ""
		next.Subcategory = ""
		return next

	case store.StepCollectConstraints:
		next := state
		next.Step = store.StepCollectProduct
		next.Constraints = ""
		return next

	case store.StepGenerate:
		next := state
		next.Step = store.StepCollectConstraints
		return next
	}

	next := store.EmptyWizardState()
	next.Step = store.StepMenu
	return next
}

// payloadForStep renders the standard prompt for a state's step.
func payloadForStep(state store.WizardState) Payload {
	switch state.Step {
	case store.StepMenu:
		return Payload{
			Message: "What would you like to do today?",
			UIType:  UITypeMenu,
			Options: menuOptions(),
		}

	case store.StepCollectCategory:
		return Payload{
			Message: "Select the **main category** of your product:",
			UIType:  UITypeCategories,
			Options: topLevelOptions(),
		}

	case store.StepCollectSubcategory:
		catLabel := categoryLabel(state.Category, "")
		return Payload{
			Message: "Great — **" + catLabel + "**! Now pick a sub-category:",
			UIType:  UITypeCategories,
			Options: subcategoryOptions(state.Category),
		}

	case store.StepCollectProduct:
		catLabel := categoryLabel(state.Category, state.Subcategory)
		return Payload{
			Message: "Perfect — **" + catLabel + "**!\n\n" +
				"Describe your product:\n" +
				"• Name / model\n" +
				"• Key features (material, size, color, specs)\n" +
				"• What makes it unique",
			UIType: UITypeInput,
		}

	case store.StepCollectConstraints:
		return Payload{
			Message: "Any constraints or preferences?\n\n" +
				"Examples:\n" +
				"• Target audience\n" +
				"• Tone\n" +
				"• Language (default: English)\n" +
				"• Things to avoid (e.g. no emojis)\n\n" +
				"Or type **skip**.",
			UIType: UITypeInput,
		}
	}

	return Payload{
		Message: "Something went wrong. Let's start over!",
		UIType:  UITypeMenu,
		Options: menuOptions(),
	}
}

// actionInstructions are the per-action Task: lines of the agent prompt.
var actionInstructions = map[string]string{
	ActionFullAd:       "Write a full high-converting ad: headline + 5 bullets + short description + keywords + publishing tips.",
	ActionHeadlineOnly: "Write ONLY a high-converting headline for this product. Output only 'Headline: ...'.",
	ActionKeywords5:    "Generate ONLY a list of 5 keywords/phrases that MUST be included in the headline. Output only 'Keywords: k1, k2, k3, k4, k5'.",
}

// buildAgentPrompt renders the structured request string consumed by the
// agent pipeline.
func buildAgentPrompt(state store.WizardState) string {
	instruction, ok := actionInstructions[state.Action]
	if !ok {
		instruction = "Write a full high-converting ad."
	}

	constraints := state.Constraints
	if constraints == "" {
		constraints = "None"
	}

	var b strings.Builder
	b.WriteString("Product: " + state.Product + "\n")
	b.WriteString("Category: " + categoryLabel(state.Category, state.Subcategory) + "\n")
	b.WriteString("RAG Category Filter: " + filterID(state.Category, state.Subcategory) + "\n")
	b.WriteString("Constraints: " + constraints + "\n")
	b.WriteString("Platform: E-commerce\n")
	b.WriteString("Task: " + instruction)
	return b.String()
}

func menuOptions() []Option {
	opts := make([]Option, len(MenuActions))
	for i, a := range MenuActions {
		opts[i] = Option{ID: a.ID, Label: a.Label, Desc: a.Desc}
	}
	return opts
}

func topLevelOptions() []Option {
	opts := make([]Option, len(CategoryTree))
	for i, c := range CategoryTree {
		opts[i] = Option{ID: c.ID, Label: c.Label}
	}
	return opts
}

func subcategoryOptions(catID string) []Option {
	c := findCategory(catID)
	if c == nil {
		return nil
	}
	opts := make([]Option, len(c.Subcategories))
	for i, s := range c.Subcategories {
		opts[i] = Option{ID: s.ID, Label: s.Label}
	}
	return opts
}

func validAction(id string) bool {
	for _, a := range MenuActions {
		if a.ID == id {
			return true
		}
	}
	return false
}

func validSubcategory(catID, subID string) bool {
	c := findCategory(catID)
	if c == nil {
		return false
	}
	for _, s := range c.Subcategories {
		if s.ID == subID {
			return true
		}
	}
	return false
}
