// Package event loads the event definition: title, date, rules and recipient roster.
package event

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/amigo/internal/assignment"
	"github.com/mmynk/amigo/internal/countdown"
)

//go:embed default.yaml
var defaultYAML []byte

// Rule is one line of the rules panel.
type Rule struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Date is the yearly day the gifts are exchanged.
type Date struct {
	Month time.Month `yaml:"month"`
	Day   int        `yaml:"day"`
}

// Event describes the gift exchange.
type Event struct {
	Title  string   `yaml:"title"`
	Date   Date     `yaml:"date"`
	Rules  []Rule   `yaml:"rules"`
	Roster []string `yaml:"roster"`
}

// Default returns the built-in event.
func Default() (*Event, error) {
	return Parse(defaultYAML)
}

// Load reads the event from path, or returns the built-in event when path is empty.
func Load(path string) (*Event, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}
	ev, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ev, nil
}

// Parse decodes and validates an event document. A missing roster falls back to
// assignment.DefaultRoster.
func Parse(data []byte) (*Event, error) {
	var ev Event
	if err := yaml.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}
	if len(ev.Roster) == 0 {
		ev.Roster = append([]string(nil), assignment.DefaultRoster...)
	}
	if err := ev.validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Next returns the next occurrence of the event at or after now.
func (e *Event) Next(now time.Time) time.Time {
	return countdown.EventDate(now, e.Date.Month, e.Date.Day)
}

func (e *Event) validate() error {
	if e.Title == "" {
		return errors.New("event title is required")
	}
	if e.Date.Month < time.January || e.Date.Month > time.December {
		return fmt.Errorf("invalid event month %d", e.Date.Month)
	}
	// Day 31 of a 30-day month would silently roll over
	probe := time.Date(2024, e.Date.Month, e.Date.Day, 0, 0, 0, 0, time.UTC)
	if e.Date.Day < 1 || probe.Month() != e.Date.Month {
		return fmt.Errorf("invalid event day %d for month %d", e.Date.Day, e.Date.Month)
	}
	for i, name := range e.Roster {
		if name == "" {
			return fmt.Errorf("roster entry %d is empty", i)
		}
	}
	return nil
}
