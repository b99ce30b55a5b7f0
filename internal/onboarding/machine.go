// Package onboarding implements the stage machine that decides which screen a
// participant sees: WELCOME -> REGISTRATION -> NAME_INPUT -> DASHBOARD.
//
// WELCOME is always the initial state, whatever the store holds. Resume, triggered by the
// participant pressing "enter", derives the next stage from the persisted email and name.
// DASHBOARD is terminal: there is no sign-out, no profile edit and no way back.
package onboarding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/amigo/internal/models"
)

// Profile is the part of the persisted-state contract the machine reads and writes.
type Profile interface {
	Email(ctx context.Context) (string, bool)
	SetEmail(ctx context.Context, email string) error
	DisplayName(ctx context.Context) (string, bool)
	SetDisplayName(ctx context.Context, name string) error
}

// Observer is notified after every stage change.
type Observer func(from, to models.Stage)

// Machine drives one participant's session through onboarding.
// It is not safe for concurrent use; each request builds its own.
type Machine struct {
	profile  Profile
	session  models.Session
	observer Observer
}

// New creates a Machine starting from session. A zero session starts on WELCOME.
func New(profile Profile, session models.Session, observer Observer) *Machine {
	if !session.Stage.Valid() {
		session.Stage = models.StageWelcome
	}
	return &Machine{profile: profile, session: session, observer: observer}
}

// Session returns the current session value.
func (m *Machine) Session() models.Session {
	return m.session
}

// Stage returns the current stage.
func (m *Machine) Stage() models.Stage {
	return m.session.Stage
}

// Resume derives the stage from the persisted email and name:
//
//	no email         -> REGISTRATION
//	email, no name   -> NAME_INPUT (email loaded)
//	email and name   -> DASHBOARD  (both loaded)
//
// Calling it again with an unchanged store yields the same stage.
func (m *Machine) Resume(ctx context.Context) models.Stage {
	if m.session.Stage == models.StageDashboard {
		return m.session.Stage
	}

	email, ok := m.profile.Email(ctx)
	if !ok {
		m.moveTo(models.StageRegistration)
		return m.session.Stage
	}
	m.session.Email = email

	name, ok := m.profile.DisplayName(ctx)
	if !ok {
		m.moveTo(models.StageNameInput)
		return m.session.Stage
	}
	m.session.DisplayName = name
	m.moveTo(models.StageDashboard)
	return m.session.Stage
}

// SubmitEmail stores candidate and moves REGISTRATION -> NAME_INPUT.
// It reports false, writes nothing and stays put when the machine is not on
// REGISTRATION or the candidate fails ValidEmail. A storage error also leaves the stage unchanged.
func (m *Machine) SubmitEmail(ctx context.Context, candidate string) (bool, error) {
	if m.session.Stage != models.StageRegistration {
		slog.Debug("SubmitEmail ignored", "stage", m.session.Stage)
		return false, nil
	}
	if !ValidEmail(candidate) {
		return false, nil
	}

	if err := m.profile.SetEmail(ctx, candidate); err != nil {
		return false, fmt.Errorf("failed to persist email: %w", err)
	}
	m.session.Email = candidate
	m.moveTo(models.StageNameInput)
	return true, nil
}

// SubmitName stores the candidate as typed and moves NAME_INPUT -> DASHBOARD.
// Rejections follow the same silent policy as SubmitEmail.
func (m *Machine) SubmitName(ctx context.Context, candidate string) (bool, error) {
	if m.session.Stage != models.StageNameInput {
		slog.Debug("SubmitName ignored", "stage", m.session.Stage)
		return false, nil
	}
	if !ValidName(candidate) {
		return false, nil
	}

	if err := m.profile.SetDisplayName(ctx, candidate); err != nil {
		return false, fmt.Errorf("failed to persist display name: %w", err)
	}
	m.session.DisplayName = candidate
	m.moveTo(models.StageDashboard)
	return true, nil
}

func (m *Machine) moveTo(stage models.Stage) {
	from := m.session.Stage
	m.session.Stage = stage
	if from != stage && m.observer != nil {
		m.observer(from, stage)
	}
}
