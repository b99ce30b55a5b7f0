// Package models defines the core domain models for the gift exchange.
//
// # Persisted Models
//
// The following models are stored as JSON lists in the key-value store:
//   - GiftIdea: a hint about something a participant would like to receive
//   - DinnerSuggestion: a dish proposed for the event dinner
//
// Both lists are append-only. Nothing in this module updates or removes an entry once written.
//
// # In-Memory Models
//
//   - Session: the participant's email, display name and onboarding stage
//   - AppState: everything a screen needs to render, carried by the page as a signed token
//
// The stage is never persisted. It is recomputed from the stored email and name when the
// participant presses "enter" on the welcome screen.
//
// # Derived Values
//
// The gift recipient is derived from the participant's email on every render and is never stored.
package models
