package models

// Panel is the dashboard modal that is currently open.
type Panel string

const (
	PanelNone   Panel = ""
	PanelRules  Panel = "rules"
	PanelWishes Panel = "wishes"
	PanelDinner Panel = "dinner"
)

// ParsePanel maps a form value to a Panel. Unknown values close the modal.
func ParsePanel(v string) Panel {
	switch Panel(v) {
	case PanelRules, PanelWishes, PanelDinner:
		return Panel(v)
	}
	return PanelNone
}

// AppState is the complete in-memory state of one participant's page.
// It is owned by the party controller and only changes through its operations.
type AppState struct {
	Session Session `json:"session"`

	// Panel is the open dashboard modal, if any.
	Panel Panel `json:"panel,omitempty"`

	// Revealed is set once the participant opens the gift box. It never resets.
	Revealed bool `json:"revealed,omitempty"`

	// SuggestPrompt and SuggestResult hold the AI box contents.
	SuggestPrompt string `json:"suggestPrompt,omitempty"`
	SuggestResult string `json:"suggestResult,omitempty"`
}

// NewAppState returns the state of a freshly loaded page.
func NewAppState() AppState {
	return AppState{Session: NewSession()}
}
