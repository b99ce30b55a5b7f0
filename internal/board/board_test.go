package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/amigo/internal/models"
	"github.com/mmynk/amigo/internal/records"
	"github.com/mmynk/amigo/internal/storage/memory"
)

func frozen(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

type readOnlyLists struct{ *records.Records }

func (readOnlyLists) SetGiftIdeas(context.Context, []models.GiftIdea) error {
	return errors.New("read-only")
}

func TestAddWish(t *testing.T) {
	ctx := context.Background()

	t.Run("appends without touching prior entries", func(t *testing.T) {
		r := records.New(memory.New())
		b := New(r, frozen(1_700_000_000_000))

		for i, text := range []string{"Bufanda", "Libro", "Taza"} {
			before := r.GiftIdeas(ctx)
			ok, err := b.AddWish(ctx, "a@b.com", text)
			require.NoError(t, err)
			require.True(t, ok)

			after := r.GiftIdeas(ctx)
			require.Len(t, after, i+1)
			assert.Equal(t, before, after[:len(before)])
			assert.Equal(t, text, after[i].Item)
			assert.Equal(t, "a@b.com", after[i].OwnerEmail)
		}
	})

	t.Run("blank text leaves the list unchanged", func(t *testing.T) {
		store := memory.New()
		r := records.New(store)
		b := New(r, nil)
		_, err := b.AddWish(ctx, "a@b.com", "Libro")
		require.NoError(t, err)

		for _, text := range []string{"", "   ", "\n\t"} {
			ok, err := b.AddWish(ctx, "a@b.com", text)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Len(t, r.GiftIdeas(ctx), 1)
		}
	})

	t.Run("text is stored as typed", func(t *testing.T) {
		r := records.New(memory.New())
		_, err := New(r, nil).AddWish(ctx, "a@b.com", "  Libro ")
		require.NoError(t, err)
		assert.Equal(t, "  Libro ", r.GiftIdeas(ctx)[0].Item)
	})

	t.Run("ids are unique even within one millisecond", func(t *testing.T) {
		r := records.New(memory.New())
		b := New(r, frozen(1_700_000_000_000))
		for i := 0; i < 5; i++ {
			_, err := b.AddWish(ctx, "a@b.com", "x")
			require.NoError(t, err)
		}

		seen := map[string]bool{}
		for _, idea := range r.GiftIdeas(ctx) {
			assert.False(t, seen[idea.ID], "duplicate id %s", idea.ID)
			seen[idea.ID] = true
		}
		assert.Equal(t, "1700000000000", r.GiftIdeas(ctx)[0].ID)
		assert.Equal(t, "1700000000004", r.GiftIdeas(ctx)[4].ID)
	})

	t.Run("write failure reports an error", func(t *testing.T) {
		b := New(readOnlyLists{records.New(memory.New())}, nil)
		ok, err := b.AddWish(ctx, "a@b.com", "Libro")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestAddSuggestion(t *testing.T) {
	ctx := context.Background()
	r := records.New(memory.New())
	b := New(r, frozen(1_700_000_000_000))

	ok, err := b.AddSuggestion(ctx, "josete@fiesta.es", "Empanada de pollo")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.AddSuggestion(ctx, "josete@fiesta.es", " ")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []models.DinnerSuggestion{
		{ID: "1700000000000", Dish: "Empanada de pollo", AuthorLabel: "josete"},
	}, r.Suggestions(ctx))
}

func TestAuthorLabel(t *testing.T) {
	tests := map[string]string{
		"ana@x.com": "ana",
		"a@b@c":     "a",
		"@x.com":    "",
		"noat":      "noat",
	}
	for in, want := range tests {
		assert.Equal(t, want, AuthorLabel(in), in)
	}
}

func TestPartition(t *testing.T) {
	ideas := []models.GiftIdea{
		{ID: "1", Item: "a", OwnerEmail: "p@q.com"},
		{ID: "2", Item: "b", OwnerEmail: "r@s.com"},
		{ID: "3", Item: "c", OwnerEmail: "p@q.com"},
		{ID: "4", Item: "d", OwnerEmail: "P@Q.com"},
	}

	t.Run("no overlap and no omission", func(t *testing.T) {
		for _, email := range []string{"p@q.com", "r@s.com", "nobody@x.com", ""} {
			mine, others := Partition(ideas, email)
			assert.Len(t, append(append([]models.GiftIdea{}, mine...), others...), len(ideas))

			ids := map[string]int{}
			for _, w := range mine {
				assert.Equal(t, email, w.OwnerEmail)
				ids[w.ID]++
			}
			for _, w := range others {
				assert.NotEqual(t, email, w.OwnerEmail)
				ids[w.ID]++
			}
			for _, idea := range ideas {
				assert.Equal(t, 1, ids[idea.ID], "idea %s under %s", idea.ID, email)
			}
		}
	})

	t.Run("keeps list order", func(t *testing.T) {
		mine, others := Partition(ideas, "p@q.com")
		assert.Equal(t, []string{"1", "3"}, []string{mine[0].ID, mine[1].ID})
		assert.Equal(t, "2", others[0].ID)
		assert.Equal(t, "4", others[1].ID)
	})

	t.Run("empty list gives empty slices", func(t *testing.T) {
		mine, others := Partition(nil, "p@q.com")
		assert.NotNil(t, mine)
		assert.NotNil(t, others)
		assert.Empty(t, mine)
		assert.Empty(t, others)
	})
}

func TestSeededWishVisibility(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, records.KeyWishes, `[{"id":"1","item":"Bufanda","forEmail":"p@q.com"}]`))
	ideas := records.New(store).GiftIdeas(ctx)

	mine, others := Partition(ideas, "p@q.com")
	assert.Len(t, mine, 1)
	assert.Empty(t, others)

	mine, others = Partition(ideas, "z@z.com")
	assert.Empty(t, mine)
	assert.Len(t, others, 1)
}
