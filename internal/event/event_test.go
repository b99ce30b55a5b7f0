package event

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/amigo/internal/assignment"
)

func TestDefault(t *testing.T) {
	ev, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Amigo Invisible", ev.Title)
	assert.Equal(t, Date{Month: time.December, Day: 22}, ev.Date)
	assert.Equal(t, assignment.DefaultRoster, ev.Roster)
	assert.NotEmpty(t, ev.Rules)
	assert.Equal(t, "Presupuesto", ev.Rules[0].Title)
}

func TestNext(t *testing.T) {
	ev, err := Default()
	require.NoError(t, err)

	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 12, 22, 0, 0, 0, 0, time.UTC), ev.Next(now))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "minimal uses default roster", doc: "title: Cena\ndate: {month: 1, day: 6}\n"},
		{name: "custom roster", doc: "title: Cena\ndate: {month: 1, day: 6}\nroster: [Uno, Dos]\n"},
		{name: "missing title", doc: "date: {month: 1, day: 6}\n", wantErr: true},
		{name: "bad month", doc: "title: x\ndate: {month: 13, day: 1}\n", wantErr: true},
		{name: "day past month end", doc: "title: x\ndate: {month: 4, day: 31}\n", wantErr: true},
		{name: "empty roster name", doc: "title: x\ndate: {month: 1, day: 1}\nroster: [Uno, '']\n", wantErr: true},
		{name: "not yaml", doc: "title: [unclosed", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Parse([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, ev.Roster)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path is the default event", func(t *testing.T) {
		ev, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "Amigo Invisible", ev.Title)
	})

	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "event.yaml")
		require.NoError(t, os.WriteFile(path, []byte("title: Reyes\ndate: {month: 1, day: 6}\nroster: [Melchor, Gaspar, Baltasar]\n"), 0o644))

		ev, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Reyes", ev.Title)
		assert.Equal(t, []string{"Melchor", "Gaspar", "Baltasar"}, ev.Roster)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
