package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/amigo/internal/models"
)

func sample() models.AppState {
	return models.AppState{
		Session: models.Session{
			Email:       "x@y.com",
			DisplayName: "Lu",
			Stage:       models.StageDashboard,
		},
		Panel:         models.PanelWishes,
		Revealed:      true,
		SuggestPrompt: "pádel",
		SuggestResult: "1. Pala",
	}
}

func TestEncodeDecode(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Encode("origin-a", sample())
	require.NoError(t, err)

	st, err := m.Decode("origin-a", token)
	require.NoError(t, err)
	assert.Equal(t, sample(), st)
}

func TestDecodeRejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, err := m.Encode("origin-a", sample())
	require.NoError(t, err)

	t.Run("missing", func(t *testing.T) {
		_, err := m.Decode("origin-a", "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("other origin", func(t *testing.T) {
		_, err := m.Decode("origin-b", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		_, err := NewManager("other", time.Hour).Decode("origin-a", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := m.Decode("origin-a", token+"x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewManager("test-secret", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Decode("origin-a", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown stage", func(t *testing.T) {
		bad := sample()
		bad.Session.Stage = "LIMBO"
		tok, err := m.Encode("origin-a", bad)
		require.NoError(t, err)
		_, err = m.Decode("origin-a", tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRestore(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	assert.Equal(t, models.NewAppState(), m.Restore("origin-a", ""))
	assert.Equal(t, models.NewAppState(), m.Restore("origin-a", "garbage"))

	token, err := m.Encode("origin-a", sample())
	require.NoError(t, err)
	assert.Equal(t, sample(), m.Restore("origin-a", token))
}
