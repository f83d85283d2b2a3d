package events_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/microblog/internal/events"
	"github.com/dmitrymomot/microblog/pkg/validator"
)

func newEvent(title string) events.NewEvent {
	return events.NewEvent{
		Title:        title,
		Description:  "Un evento de prueba",
		Date:         "2025-10-01",
		Time:         "18:30",
		Location:     "Sala 2",
		Category:     "Social",
		MaxAttendees: 2,
	}
}

func TestStoreAdd(t *testing.T) {
	ctx := context.Background()
	store := events.NewStore()

	first, err := store.Add(ctx, newEvent("  Taller de Go  "))
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Taller de Go", first.Title)
	assert.Equal(t, "taller-de-go", first.Slug)

	second, err := store.Add(ctx, newEvent("Taller de Go"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "taller-de-go-1", second.Slug)

	accented, err := store.Add(ctx, newEvent("Día de Tecnología"))
	require.NoError(t, err)
	assert.Equal(t, "dia-de-tecnologia", accented.Slug)

	list := store.List(ctx)
	require.Len(t, list, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].ID, list[1].ID, list[2].ID})
}

func TestStoreAddValidation(t *testing.T) {
	store := events.NewStore()

	in := newEvent("")
	in.Date = "15/09/2025"
	in.Category = "Fiesta"
	in.MaxAttendees = -1

	_, err := store.Add(context.Background(), in)
	require.Error(t, err)

	verrs := validator.ExtractValidationErrors(err)
	assert.True(t, verrs.Has("title"))
	assert.True(t, verrs.Has("date"))
	assert.True(t, verrs.Has("category"))
	assert.True(t, verrs.Has("max_attendees"))
	assert.False(t, verrs.Has("time"))
	assert.Empty(t, store.List(context.Background()))
}

func TestStoreIndependent(t *testing.T) {
	ctx := context.Background()
	a := events.NewStore()
	b := events.NewStore()

	_, err := a.Add(ctx, newEvent("Solo en A"))
	require.NoError(t, err)

	assert.Len(t, a.List(ctx), 1)
	assert.Empty(t, b.List(ctx))
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := events.NewStore()
	e, err := store.Add(ctx, newEvent("Copia"))
	require.NoError(t, err)

	_, err = store.Register(ctx, e.Slug, events.Attendee{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	got, err := store.BySlug(ctx, e.Slug)
	require.NoError(t, err)
	got.Attendees[0].Name = "mutated"
	got.Title = "mutated"

	again, err := store.BySlug(ctx, e.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Attendees[0].Name)
	assert.Equal(t, "Copia", again.Title)
}

func TestStoreBySlugNotFound(t *testing.T) {
	_, err := events.NewStore().BySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, events.ErrNotFound)
}

func TestStoreRegister(t *testing.T) {
	ctx := context.Background()
	store := events.NewStore()
	e, err := store.Add(ctx, newEvent("Cupos limitados"))
	require.NoError(t, err)

	updated, err := store.Register(ctx, e.Slug, events.Attendee{Name: " Ana ", Email: "Ana@Example.com"})
	require.NoError(t, err)
	require.Len(t, updated.Attendees, 1)
	assert.Equal(t, events.Attendee{Name: "Ana", Email: "ana@example.com"}, updated.Attendees[0])
	assert.Equal(t, 1, updated.SpotsLeft())

	_, err = store.Register(ctx, e.Slug, events.Attendee{Name: "Otra Ana", Email: "ANA@example.com"})
	assert.ErrorIs(t, err, events.ErrAlreadyRegistered)

	_, err = store.Register(ctx, e.Slug, events.Attendee{Name: "Luis", Email: "luis@example.com"})
	require.NoError(t, err)

	_, err = store.Register(ctx, e.Slug, events.Attendee{Name: "Tarde", Email: "tarde@example.com"})
	assert.ErrorIs(t, err, events.ErrEventFull)

	_, err = store.Register(ctx, "missing", events.Attendee{Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, events.ErrNotFound)

	_, err = store.Register(ctx, e.Slug, events.Attendee{Name: "", Email: "not-an-email"})
	verrs := validator.ExtractValidationErrors(err)
	assert.True(t, verrs.Has("name"))
	assert.True(t, verrs.Has("email"))
}

func TestStoreRegisterUnlimited(t *testing.T) {
	ctx := context.Background()
	store := events.NewStore()
	in := newEvent("Sin límite")
	in.MaxAttendees = 0
	e, err := store.Add(ctx, in)
	require.NoError(t, err)

	for i := range 10 {
		_, err := store.Register(ctx, e.Slug, events.Attendee{Name: "P", Email: fmt.Sprintf("p%d@example.com", i)})
		require.NoError(t, err)
	}
	got, err := store.BySlug(ctx, e.Slug)
	require.NoError(t, err)
	assert.Equal(t, -1, got.SpotsLeft())
	assert.False(t, got.IsFull())
}

func TestStoreConcurrentAddUniqueSlugs(t *testing.T) {
	ctx := context.Background()
	store := events.NewStore()

	const n = 25
	var wg sync.WaitGroup
	slugs := make([]string, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := store.Add(ctx, newEvent("Mismo título"))
			assert.NoError(t, err)
			slugs[i] = e.Slug
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, s := range slugs {
		assert.False(t, seen[s], "duplicate slug %q", s)
		seen[s] = true
	}
	assert.True(t, seen["mismo-titulo"])
	assert.True(t, seen[fmt.Sprintf("mismo-titulo-%d", n-1)])
}

func TestStoreConcurrentRegisterRespectsCapacity(t *testing.T) {
	ctx := context.Background()
	store := events.NewStore()
	in := newEvent("Concurrido")
	in.MaxAttendees = 5
	e, err := store.Add(ctx, in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, full int
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Register(ctx, e.Slug, events.Attendee{Name: "P", Email: fmt.Sprintf("c%d@example.com", i)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, events.ErrEventFull):
				full++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 15, full)
}

func TestStoreFeatured(t *testing.T) {
	ctx := context.Background()
	store := events.NewStore()

	plain := newEvent("Normal")
	star := newEvent("Destacado")
	star.Featured = true
	_, err := store.Add(ctx, plain)
	require.NoError(t, err)
	_, err = store.Add(ctx, star)
	require.NoError(t, err)

	featured := store.Featured(ctx)
	require.Len(t, featured, 1)
	assert.Equal(t, "destacado", featured[0].Slug)
	assert.Len(t, store.List(ctx), 2)
}

func TestEventStartsAt(t *testing.T) {
	e := events.Event{Date: "2025-09-15", Time: "14:00"}
	at, ok := e.StartsAt()
	require.True(t, ok)
	assert.Equal(t, 14, at.Hour())
	assert.Equal(t, 15, at.Day())

	_, ok = events.Event{Date: "nope"}.StartsAt()
	assert.False(t, ok)
}

func TestStoreSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("built-in", func(t *testing.T) {
		store := events.NewStore()
		require.NoError(t, store.Seed(ctx, nil))

		e, err := store.BySlug(ctx, "conferencia-python")
		require.NoError(t, err)
		assert.Equal(t, "Conferencia de Python", e.Title)
		assert.Equal(t, "Tecnología", e.Category)
		assert.Equal(t, 50, e.MaxAttendees)
		assert.True(t, e.Featured)
		require.Len(t, e.Attendees, 1)
		assert.Equal(t, "juan@example.com", e.Attendees[0].Email)

		next, err := store.Add(ctx, newEvent("Conferencia Python"))
		require.NoError(t, err)
		assert.Equal(t, 2, next.ID)
		assert.Equal(t, "conferencia-python-1", next.Slug)
	})

	t.Run("custom file", func(t *testing.T) {
		doc := `
events:
  - title: Torneo de ajedrez
    description: Rondas rápidas
    date: "2025-11-02"
    time: "09:00"
    location: Biblioteca
    category: Deportivo
  - title: Torneo de ajedrez
    description: Segunda edición
    date: "2025-12-02"
    time: "09:00"
    location: Biblioteca
    category: Deportivo
`
		store := events.NewStore()
		require.NoError(t, store.Seed(ctx, strings.NewReader(doc)))

		list := store.List(ctx)
		require.Len(t, list, 2)
		assert.Equal(t, "torneo-de-ajedrez", list[0].Slug)
		assert.Equal(t, "torneo-de-ajedrez-1", list[1].Slug)
	})

	t.Run("duplicate explicit slug", func(t *testing.T) {
		store := events.NewStore()
		require.NoError(t, store.Seed(ctx, nil))

		err := store.Import(ctx, []events.Event{{Title: "Otra", Slug: "conferencia-python"}})
		assert.ErrorIs(t, err, events.ErrDuplicateSlug)
		assert.Len(t, store.List(ctx), 1)
	})

	t.Run("invalid entry", func(t *testing.T) {
		doc := `
events:
  - title: Sin fecha
    description: x
    time: "09:00"
    location: y
    category: Social
`
		err := events.NewStore().Seed(ctx, strings.NewReader(doc))
		assert.ErrorIs(t, err, events.ErrInvalidSeed)
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := events.LoadSeed(strings.NewReader("events:\n  - titel: typo\n"))
		assert.ErrorIs(t, err, events.ErrInvalidSeed)
	})

	t.Run("empty document", func(t *testing.T) {
		got, err := events.LoadSeed(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
