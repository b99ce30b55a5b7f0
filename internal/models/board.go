package models

// GiftIdea is a hint a participant posts about something they would like.
// Field names match the JSON written by earlier versions of the app.
type GiftIdea struct {
	// ID is a decimal Unix-millisecond timestamp, unique within the list.
	ID string `json:"id"`

	// Item is the idea text as typed. Never empty.
	Item string `json:"item"`

	// Description is optional extra detail. Older entries carry it; the UI does not set it.
	Description string `json:"description,omitempty"`

	// OwnerEmail is the email of the participant who wants this gift.
	OwnerEmail string `json:"forEmail"`
}

// DinnerSuggestion is a dish proposed for the event dinner.
type DinnerSuggestion struct {
	ID string `json:"id"`

	// Dish is the suggestion text as typed. Never empty.
	Dish string `json:"dish"`

	// AuthorLabel is the local part of the author's email.
	AuthorLabel string `json:"author"`
}
