// Package records implements the persisted-state contract: four independent records
// in a key-value store, with lists encoded as JSON arrays.
//
// Reads never fail. A record that is missing, unreadable or malformed is reported as
// absent (strings) or empty (lists), so a cleared or corrupted store cannot stop the app.
// Writes replace the whole record; appending to a list is read-all, append, write-all.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mmynk/amigo/internal/models"
	"github.com/mmynk/amigo/internal/storage"
)

// Store keys. These names are shared with data written by earlier versions of the app.
const (
	KeyEmail       = "ns_user_email"
	KeyDisplayName = "ns_user_name"
	KeyWishes      = "ns_wishes"
	KeySuggestions = "ns_suggestions"
)

// Records reads and writes the four persisted records of one origin.
type Records struct {
	store storage.Store
}

// New creates Records on top of store.
func New(store storage.Store) *Records {
	return &Records{store: store}
}

// Email returns the stored email. An empty value counts as absent.
func (r *Records) Email(ctx context.Context) (string, bool) {
	return r.readString(ctx, KeyEmail)
}

// SetEmail stores the email exactly as given.
func (r *Records) SetEmail(ctx context.Context, email string) error {
	return r.writeString(ctx, KeyEmail, email)
}

// DisplayName returns the stored display name. An empty value counts as absent.
func (r *Records) DisplayName(ctx context.Context) (string, bool) {
	return r.readString(ctx, KeyDisplayName)
}

// SetDisplayName stores the display name.
func (r *Records) SetDisplayName(ctx context.Context, name string) error {
	return r.writeString(ctx, KeyDisplayName, name)
}

// GiftIdeas returns the gift-idea list in insertion order.
func (r *Records) GiftIdeas(ctx context.Context) []models.GiftIdea {
	return readList[models.GiftIdea](ctx, r.store, KeyWishes)
}

// SetGiftIdeas replaces the gift-idea list.
func (r *Records) SetGiftIdeas(ctx context.Context, ideas []models.GiftIdea) error {
	return writeList(ctx, r.store, KeyWishes, ideas)
}

// Suggestions returns the dinner-suggestion list in insertion order.
func (r *Records) Suggestions(ctx context.Context) []models.DinnerSuggestion {
	return readList[models.DinnerSuggestion](ctx, r.store, KeySuggestions)
}

// SetSuggestions replaces the dinner-suggestion list.
func (r *Records) SetSuggestions(ctx context.Context, suggestions []models.DinnerSuggestion) error {
	return writeList(ctx, r.store, KeySuggestions, suggestions)
}

func (r *Records) readString(ctx context.Context, key string) (string, bool) {
	value, ok, err := r.store.Get(ctx, key)
	if err != nil {
		slog.Warn("Record unreadable, treating as absent", "key", key, "error", err)
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func (r *Records) writeString(ctx context.Context, key, value string) error {
	if err := r.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func readList[T any](ctx context.Context, store storage.Store, key string) []T {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		slog.Warn("List unreadable, using empty list", "key", key, "error", err)
		return []T{}
	}
	if !ok || raw == "" {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("List malformed, using empty list", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		// "null" decodes without error
		return []T{}
	}
	return items
}

func writeList[T any](ctx context.Context, store storage.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
