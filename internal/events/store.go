package events

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/microblog/pkg/logger"
	"github.com/dmitrymomot/microblog/pkg/slug"
)

// Store keeps events in process memory. Each Store is independent,
// and all methods are safe for concurrent use.
type Store struct {
	gen    *slug.Generator
	logger *slog.Logger
	events map[int]*Event
	bySlug map[string]int
	order  []int
	nextID int
	mu     sync.RWMutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSlugGenerator replaces the default slug generator.
func WithSlugGenerator(g *slug.Generator) StoreOption {
	return func(s *Store) {
		if g != nil {
			s.gen = g
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		gen:    slug.NewGenerator(),
		logger: logger.NewNope(),
		events: make(map[int]*Event),
		bySlug: make(map[string]int),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates in, assigns the next id and a slug unique within the store,
// and appends the event.
func (s *Store) Add(ctx context.Context, in NewEvent) (Event, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The write lock is held while probing, so the slug cannot be taken
	// between the check and the insert.
	sl, err := s.gen.Unique(ctx, in.Title, s.slugTaken)
	if err != nil {
		return Event{}, fmt.Errorf("generate slug: %w", err)
	}

	e := &Event{
		ID:           s.nextID,
		Title:        in.Title,
		Slug:         sl,
		Description:  in.Description,
		Date:         in.Date,
		Time:         in.Time,
		Location:     in.Location,
		Category:     in.Category,
		MaxAttendees: in.MaxAttendees,
		Featured:     in.Featured,
	}
	s.insert(e)

	s.logger.InfoContext(ctx, "event added", slog.Int("id", e.ID), slog.String("slug", e.Slug))
	return e.clone(), nil
}

// Import inserts complete events such as seed data. Events without a slug get
// one from their title; an explicit slug that is already in use fails the
// whole import with nothing inserted. Ids are always reassigned.
func (s *Store) Import(ctx context.Context, events []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make(map[string]bool, len(events))
	taken := func(ctx context.Context, candidate string) (bool, error) {
		used, _ := s.slugTaken(ctx, candidate)
		return used || pending[candidate], nil
	}

	prepared := make([]*Event, 0, len(events))
	for _, ev := range events {
		e := ev.clone()
		e.Slug = strings.TrimSpace(e.Slug)
		if e.Slug == "" {
			sl, err := s.gen.Unique(ctx, e.Title, taken)
			if err != nil {
				return fmt.Errorf("generate slug for %q: %w", e.Title, err)
			}
			e.Slug = sl
		} else if used, _ := taken(ctx, e.Slug); used {
			return fmt.Errorf("%w: %q", ErrDuplicateSlug, e.Slug)
		}
		pending[e.Slug] = true
		prepared = append(prepared, &e)
	}

	for _, e := range prepared {
		e.ID = s.nextID
		s.insert(e)
	}
	return nil
}

// insert requires the write lock.
func (s *Store) insert(e *Event) {
	s.events[e.ID] = e
	s.bySlug[e.Slug] = e.ID
	s.order = append(s.order, e.ID)
	s.nextID = e.ID + 1
}

// slugTaken is the uniqueness oracle. Callers hold the lock.
func (s *Store) slugTaken(_ context.Context, candidate string) (bool, error) {
	_, ok := s.bySlug[candidate]
	return ok, nil
}

// List returns all events in insertion order.
func (s *Store) List(_ context.Context) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.events[id].clone())
	}
	return out
}

// Featured returns the featured events in insertion order.
func (s *Store) Featured(ctx context.Context) []Event {
	all := s.List(ctx)
	out := all[:0]
	for _, e := range all {
		if e.Featured {
			out = append(out, e)
		}
	}
	return out
}

// BySlug returns the event with the given slug.
func (s *Store) BySlug(_ context.Context, sl string) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySlug[sl]
	if !ok {
		return Event{}, ErrNotFound
	}
	return s.events[id].clone(), nil
}

// Register adds an attendee to the event with the given slug.
// Emails are compared case-insensitively.
func (s *Store) Register(ctx context.Context, sl string, a Attendee) (Event, error) {
	a = a.Normalize()
	if err := a.Validate(); err != nil {
		return Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.bySlug[sl]
	if !ok {
		return Event{}, ErrNotFound
	}
	e := s.events[id]

	for _, existing := range e.Attendees {
		if strings.EqualFold(existing.Email, a.Email) {
			return Event{}, ErrAlreadyRegistered
		}
	}
	if e.IsFull() {
		return Event{}, ErrEventFull
	}

	e.Attendees = append(e.Attendees, a)
	s.logger.InfoContext(ctx, "attendee registered",
		slog.String("slug", e.Slug),
		slog.Int("attendees", len(e.Attendees)))
	return e.clone(), nil
}
