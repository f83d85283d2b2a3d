package events

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Events []Event `yaml:"events"`
}

// LoadSeed decodes a YAML document with a top-level events list and
// validates every entry. Unknown keys are rejected.
func LoadSeed(r io.Reader) ([]Event, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidSeed, err)
	}

	for i := range f.Events {
		e := &f.Events[i]
		in := NewEvent{
			Title:        e.Title,
			Description:  e.Description,
			Date:         e.Date,
			Time:         e.Time,
			Location:     e.Location,
			Category:     e.Category,
			MaxAttendees: e.MaxAttendees,
		}.Normalize()
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("%w: event %d: %w", ErrInvalidSeed, i+1, err)
		}
		e.Title, e.Description, e.Location = in.Title, in.Description, in.Location

		for j := range e.Attendees {
			a := e.Attendees[j].Normalize()
			if err := a.Validate(); err != nil {
				return nil, fmt.Errorf("%w: event %d attendee %d: %w", ErrInvalidSeed, i+1, j+1, err)
			}
			e.Attendees[j] = a
		}
	}
	return f.Events, nil
}

// DefaultSeed returns the built-in sample events.
func DefaultSeed() []Event {
	events, err := LoadSeed(bytes.NewReader(defaultSeed))
	if err != nil {
		panic(err)
	}
	return events
}

// Seed imports events read from r, or the built-in seed when r is nil.
func (s *Store) Seed(ctx context.Context, r io.Reader) error {
	events := DefaultSeed()
	if r != nil {
		var err error
		if events, err = LoadSeed(r); err != nil {
			return err
		}
	}
	return s.Import(ctx, events)
}
