package service

import (
	"time"

	"github.com/mmynk/amigo/internal/countdown"
	"github.com/mmynk/amigo/internal/models"
)

// Every request carries the state token from the previous reply. An empty token is a
// freshly loaded page.

type EnterRequest struct {
	State string `json:"state"`
}

type SubmitEmailRequest struct {
	State string `json:"state"`
	Email string `json:"email"`
}

type SubmitNameRequest struct {
	State string `json:"state"`
	Name  string `json:"name"`
}

type GetDashboardRequest struct {
	State string `json:"state"`
}

type RevealRequest struct {
	State string `json:"state"`
}

type AddWishRequest struct {
	State string `json:"state"`
	Item  string `json:"item"`
}

type AddSuggestionRequest struct {
	State string `json:"state"`
	Dish  string `json:"dish"`
}

type AskSuggestionRequest struct {
	State  string `json:"state"`
	Prompt string `json:"prompt"`
}

// StateReply is returned by every operation that may change the state.
type StateReply struct {
	State string       `json:"state"`
	Stage models.Stage `json:"stage"`

	// Accepted is false when the input was rejected and nothing changed.
	Accepted bool `json:"accepted"`
}

type AskSuggestionReply struct {
	StateReply
	Result string `json:"result"`
}

type Rule struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Dashboard mirrors the dashboard screen. Recipient is only set once revealed.
type Dashboard struct {
	Title       string `json:"title"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Recipient   string `json:"recipient,omitempty"`
	Revealed    bool   `json:"revealed"`

	EventDate time.Time           `json:"eventDate"`
	Remaining countdown.Remaining `json:"remaining"`
	Rules     []Rule              `json:"rules"`

	MyWishes      []models.GiftIdea         `json:"myWishes"`
	VisibleWishes []models.GiftIdea         `json:"visibleWishes"`
	Suggestions   []models.DinnerSuggestion `json:"suggestions"`

	SuggestConfigured bool `json:"suggestConfigured"`
}

type GetDashboardReply struct {
	State     string    `json:"state"`
	Dashboard Dashboard `json:"dashboard"`
}
