package models

// Stage is the screen the onboarding flow is currently showing.
type Stage string

const (
	StageWelcome      Stage = "WELCOME"
	StageRegistration Stage = "REGISTRATION"
	StageNameInput    Stage = "NAME_INPUT"
	StageDashboard    Stage = "DASHBOARD"
)

// Valid reports whether s is one of the four known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageWelcome, StageRegistration, StageNameInput, StageDashboard:
		return true
	}
	return false
}

// Session is the participant's onboarding state.
// Email and DisplayName are each set at most once during onboarding.
type Session struct {
	// Email is the participant's email. Always contains "@" once set.
	Email string `json:"email,omitempty"`

	// DisplayName is the name given on the letter screen, as typed. It is never blank.
	DisplayName string `json:"displayName,omitempty"`

	// Stage is recomputed by Resume and advanced by the submit operations.
	// It is never persisted.
	Stage Stage `json:"stage"`
}

// NewSession returns a session on the welcome screen.
func NewSession() Session {
	return Session{Stage: StageWelcome}
}
