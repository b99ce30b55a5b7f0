// Package party is the controller for one participant's page. It owns the AppState
// value and is the only code that changes it: every operation takes the current state and
// returns the next one.
package party

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/amigo/internal/assignment"
	"github.com/mmynk/amigo/internal/board"
	"github.com/mmynk/amigo/internal/countdown"
	"github.com/mmynk/amigo/internal/event"
	"github.com/mmynk/amigo/internal/models"
	"github.com/mmynk/amigo/internal/onboarding"
	"github.com/mmynk/amigo/internal/suggest"
)

// Store is the persisted-state contract of one origin.
type Store interface {
	onboarding.Profile
	board.Lists
}

// Lists named in append notifications.
const (
	ListWishes      = "wishes"
	ListSuggestions = "suggestions"
)

// Config holds the controller's collaborators.
type Config struct {
	Event     *event.Event
	Suggester *suggest.Service

	// Now defaults to time.Now.
	Now func() time.Time

	// OnTransition and OnAppend are optional hooks for metrics.
	OnTransition onboarding.Observer
	OnAppend     func(list string)
}

// Controller applies participant actions to an AppState.
type Controller struct {
	event     *event.Event
	suggester *suggest.Service
	now       func() time.Time
	observer  onboarding.Observer
	onAppend  func(string)
}

// New creates a Controller.
func New(cfg Config) *Controller {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		event:     cfg.Event,
		suggester: cfg.Suggester,
		now:       now,
		observer:  cfg.OnTransition,
		onAppend:  cfg.OnAppend,
	}
}

// Event returns the event definition.
func (c *Controller) Event() *event.Event {
	return c.event
}

// Enter resumes onboarding from the store. It only acts on the welcome screen.
func (c *Controller) Enter(ctx context.Context, store Store, st models.AppState) models.AppState {
	if st.Session.Stage != models.StageWelcome {
		return st
	}
	m := onboarding.New(store, st.Session, c.observer)
	stage := m.Resume(ctx)
	st.Session = m.Session()
	slog.Debug("Entered", "stage", stage)
	return st
}

// SubmitEmail applies the registration form.
func (c *Controller) SubmitEmail(ctx context.Context, store Store, st models.AppState, email string) (models.AppState, bool, error) {
	m := onboarding.New(store, st.Session, c.observer)
	ok, err := m.SubmitEmail(ctx, email)
	if err != nil {
		return st, false, err
	}
	st.Session = m.Session()
	return st, ok, nil
}

// SubmitName applies the letter form.
func (c *Controller) SubmitName(ctx context.Context, store Store, st models.AppState, name string) (models.AppState, bool, error) {
	m := onboarding.New(store, st.Session, c.observer)
	ok, err := m.SubmitName(ctx, name)
	if err != nil {
		return st, false, err
	}
	st.Session = m.Session()
	return st, ok, nil
}

// Reveal opens the gift box. It stays open for the rest of the page's life.
func (c *Controller) Reveal(st models.AppState) models.AppState {
	if st.Session.Stage == models.StageDashboard {
		st.Revealed = true
	}
	return st
}

// OpenPanel shows one of the dashboard modals; PanelNone closes it.
func (c *Controller) OpenPanel(st models.AppState, p models.Panel) models.AppState {
	if st.Session.Stage == models.StageDashboard {
		st.Panel = p
	}
	return st
}

// ClosePanel closes the open modal.
func (c *Controller) ClosePanel(st models.AppState) models.AppState {
	return c.OpenPanel(st, models.PanelNone)
}

// AddWish appends a gift idea owned by the participant.
func (c *Controller) AddWish(ctx context.Context, store Store, st models.AppState, text string) (models.AppState, bool, error) {
	if st.Session.Stage != models.StageDashboard {
		return st, false, nil
	}
	ok, err := board.New(store, c.now).AddWish(ctx, st.Session.Email, text)
	if err != nil {
		return st, false, err
	}
	if ok {
		c.appended(ListWishes)
	}
	return st, ok, nil
}

// AddSuggestion appends a dinner suggestion by the participant.
func (c *Controller) AddSuggestion(ctx context.Context, store Store, st models.AppState, dish string) (models.AppState, bool, error) {
	if st.Session.Stage != models.StageDashboard {
		return st, false, nil
	}
	ok, err := board.New(store, c.now).AddSuggestion(ctx, st.Session.Email, dish)
	if err != nil {
		return st, false, err
	}
	if ok {
		c.appended(ListSuggestions)
	}
	return st, ok, nil
}

// AskSuggestion runs the AI box. key identifies the control, normally the origin.
// A blank prompt changes nothing.
func (c *Controller) AskSuggestion(ctx context.Context, key string, st models.AppState, prompt string) models.AppState {
	if st.Session.Stage != models.StageDashboard || !board.ValidItem(prompt) {
		return st
	}
	st.SuggestPrompt = prompt
	st.SuggestResult = c.suggester.Suggest(ctx, key, prompt)
	return st
}

// SuggestConfigured reports whether the AI box can be used.
func (c *Controller) SuggestConfigured() bool {
	return c.suggester.Configured()
}

func (c *Controller) appended(list string) {
	if c.onAppend != nil {
		c.onAppend(list)
	}
}

// View is everything the dashboard shows.
type View struct {
	Title       string
	Email       string
	DisplayName string

	// Recipient is derived from Email on every call and never stored.
	Recipient string
	Revealed  bool
	Panel     models.Panel

	EventDate time.Time
	Remaining countdown.Remaining
	Rules     []event.Rule

	MyWishes      []models.GiftIdea
	VisibleWishes []models.GiftIdea
	Suggestions   []models.DinnerSuggestion

	SuggestConfigured bool
	SuggestPrompt     string
	SuggestResult     string
}

// Dashboard builds the dashboard view. It reports false unless the state is on DASHBOARD.
func (c *Controller) Dashboard(ctx context.Context, store Store, st models.AppState) (View, bool) {
	if st.Session.Stage != models.StageDashboard {
		return View{}, false
	}

	now := c.now()
	target := c.event.Next(now)
	mine, others := board.Partition(store.GiftIdeas(ctx), st.Session.Email)

	return View{
		Title:             c.event.Title,
		Email:             st.Session.Email,
		DisplayName:       st.Session.DisplayName,
		Recipient:         assignment.Assign(st.Session.Email, c.event.Roster),
		Revealed:          st.Revealed,
		Panel:             st.Panel,
		EventDate:         target,
		Remaining:         countdown.Until(now, target),
		Rules:             c.event.Rules,
		MyWishes:          mine,
		VisibleWishes:     others,
		Suggestions:       store.Suggestions(ctx),
		SuggestConfigured: c.suggester.Configured(),
		SuggestPrompt:     st.SuggestPrompt,
		SuggestResult:     st.SuggestResult,
	}, true
}
