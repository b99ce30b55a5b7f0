// Package board manages the two append-only lists on the dashboard:
// gift-idea hints and dinner-menu suggestions.
package board

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/amigo/internal/models"
)

// Lists is the part of the persisted-state contract the board reads and writes.
type Lists interface {
	GiftIdeas(ctx context.Context) []models.GiftIdea
	SetGiftIdeas(ctx context.Context, ideas []models.GiftIdea) error
	Suggestions(ctx context.Context) []models.DinnerSuggestion
	SetSuggestions(ctx context.Context, suggestions []models.DinnerSuggestion) error
}

// Board appends to the lists of one origin.
type Board struct {
	lists Lists
	now   func() time.Time
}

// New creates a Board. A nil clock means time.Now.
func New(lists Lists, now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{lists: lists, now: now}
}

// ValidItem reports whether text is non-empty after trimming whitespace.
// Rejections are silent, like the onboarding validators.
func ValidItem(text string) bool {
	return strings.TrimSpace(text) != ""
}

// AddWish appends a gift idea owned by owner. Blank text is ignored.
// The text is stored as typed.
func (b *Board) AddWish(ctx context.Context, owner, text string) (bool, error) {
	if !ValidItem(text) {
		return false, nil
	}

	ideas := b.lists.GiftIdeas(ctx)
	last := ""
	if len(ideas) > 0 {
		last = ideas[len(ideas)-1].ID
	}
	ideas = append(ideas, models.GiftIdea{
		ID:         nextID(b.now(), last),
		Item:       text,
		OwnerEmail: owner,
	})

	if err := b.lists.SetGiftIdeas(ctx, ideas); err != nil {
		return false, fmt.Errorf("failed to append gift idea: %w", err)
	}
	return true, nil
}

// AddSuggestion appends a dinner suggestion labelled with the author's email local part.
func (b *Board) AddSuggestion(ctx context.Context, authorEmail, dish string) (bool, error) {
	if !ValidItem(dish) {
		return false, nil
	}

	suggestions := b.lists.Suggestions(ctx)
	last := ""
	if len(suggestions) > 0 {
		last = suggestions[len(suggestions)-1].ID
	}
	suggestions = append(suggestions, models.DinnerSuggestion{
		ID:          nextID(b.now(), last),
		Dish:        dish,
		AuthorLabel: AuthorLabel(authorEmail),
	})

	if err := b.lists.SetSuggestions(ctx, suggestions); err != nil {
		return false, fmt.Errorf("failed to append dinner suggestion: %w", err)
	}
	return true, nil
}

// AuthorLabel returns the part of email before the first "@".
func AuthorLabel(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// Partition splits ideas into those owned by email and everyone else's,
// keeping list order in both. Every idea lands in exactly one of the two.
func Partition(ideas []models.GiftIdea, email string) (mine, others []models.GiftIdea) {
	mine = []models.GiftIdea{}
	others = []models.GiftIdea{}
	for _, idea := range ideas {
		if idea.OwnerEmail == email {
			mine = append(mine, idea)
		} else {
			others = append(others, idea)
		}
	}
	return mine, others
}

// nextID returns the creation timestamp in Unix milliseconds, bumped past the
// previous id when the clock has not moved on.
func nextID(now time.Time, last string) string {
	id := now.UnixMilli()
	if prev, err := strconv.ParseInt(last, 10, 64); err == nil && id <= prev {
		id = prev + 1
	}
	return strconv.FormatInt(id, 10)
}
