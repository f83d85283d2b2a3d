package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/microblog/internal/events"
	"github.com/dmitrymomot/microblog/internal/handlers"
	"github.com/dmitrymomot/microblog/internal/views"
	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/pkg/cookie"
)

func newEventsApp(t *testing.T) (*web.App, *events.Store) {
	t.Helper()

	set, err := views.NewEvents()
	require.NoError(t, err)

	store := events.NewStore()
	require.NoError(t, store.Seed(context.Background(), nil))

	app := web.New(
		web.WithCookieManager(cookie.New(cookie.WithSecret(strings.Repeat("e", 32)))),
		web.WithErrorHandler(handlers.ErrorHandler(set)),
		web.WithNotFoundHandler(handlers.NotFound),
		web.WithHandlers(handlers.NewEvents(store, set)),
	)
	return app, store
}

func eventForm(title string) url.Values {
	return url.Values{
		"title":         {title},
		"description":   {"Charla abierta"},
		"date":          {"2025-11-20"},
		"time":          {"19:00"},
		"location":      {"Sala 3"},
		"category":      {"Cultural"},
		"max_attendees": {"1"},
	}
}

func TestEventsIndex(t *testing.T) {
	app, _ := newEventsApp(t)

	w := newClient(t, app).get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Conferencia de Python")
	assert.Contains(t, w.Body.String(), "Destacados")
	assert.Contains(t, w.Body.String(), `lang="es"`)
}

func TestEventDetail(t *testing.T) {
	app, _ := newEventsApp(t)
	c := newClient(t, app)

	w := c.get("/event/conferencia-python")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Auditorio Principal")
	assert.Contains(t, w.Body.String(), "Juan Pérez")

	w = c.get("/event/no-existe")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Evento no encontrado")
	assert.Contains(t, w.Body.String(), "Volver al inicio")
}

func TestCreateEvent(t *testing.T) {
	app, store := newEventsApp(t)
	c := newClient(t, app)

	w := c.get("/admin/event")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<option>Tecnología</option>")

	w = c.post("/admin/event", eventForm("Noche de Cine"))
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/event/noche-de-cine", w.Header().Get("Location"))

	w = c.get("/event/noche-de-cine")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Evento creado correctamente")

	w = c.post("/admin/event", eventForm("Noche de Cine"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/event/noche-de-cine-1", w.Header().Get("Location"))
	assert.Len(t, store.List(context.Background()), 3)
}

func TestCreateEventInvalid(t *testing.T) {
	app, store := newEventsApp(t)
	c := newClient(t, app)

	form := eventForm("Sin fecha")
	form.Set("date", "mañana")
	w := c.post("/admin/event", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Debe ser una fecha (AAAA-MM-DD)")
	assert.Contains(t, w.Body.String(), `value="Sin fecha"`)

	form = eventForm("Cupo raro")
	form.Set("max_attendees", "muchos")
	w = c.post("/admin/event", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Debe ser un número entero")

	assert.Len(t, store.List(context.Background()), 1)
}

func TestRegisterForEvent(t *testing.T) {
	app, _ := newEventsApp(t)
	c := newClient(t, app)

	w := c.post("/admin/event", eventForm("Club de Lectura"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = c.get("/event/club-de-lectura/register/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Registro: Club de Lectura")

	w = c.post("/event/club-de-lectura/register/", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/event/club-de-lectura", w.Header().Get("Location"))

	w = c.get("/event/club-de-lectura")
	assert.Contains(t, w.Body.String(), "Registro completado")
	assert.Contains(t, w.Body.String(), "Evento completo")

	t.Run("same email", func(t *testing.T) {
		w := c.post("/event/club-de-lectura/register/", url.Values{"name": {"Ana"}, "email": {"ANA@example.com"}})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Este email ya está registrado en el evento")
	})

	t.Run("full", func(t *testing.T) {
		w := c.post("/event/club-de-lectura/register/", url.Values{"name": {"Luis"}, "email": {"luis@example.com"}})
		require.Equal(t, http.StatusSeeOther, w.Code)

		w = c.get("/event/club-de-lectura")
		assert.Contains(t, w.Body.String(), "El evento está completo")
	})

	t.Run("invalid", func(t *testing.T) {
		w := c.post("/event/conferencia-python/register/", url.Values{"name": {""}, "email": {"nope"}})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "field-error")
	})

	t.Run("unknown event", func(t *testing.T) {
		w := c.post("/event/no-existe/register/", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Evento no encontrado")
	})
}
