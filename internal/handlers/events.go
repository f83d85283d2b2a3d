package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/microblog/internal/events"
	"github.com/dmitrymomot/microblog/internal/views"
	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/pkg/validator"
)

var eventFields = []string{"title", "description", "date", "time", "location", "category", "max_attendees", "featured"}

// Events serves the event listing prototype.
type Events struct {
	store EventStore
	views *views.Set
}

// NewEvents creates the events handler.
func NewEvents(store EventStore, set *views.Set) *Events {
	return &Events{store: store, views: set}
}

func (h *Events) Routes(r web.Router) {
	r.GET("/", h.index)
	r.GET("/event/{slug}", h.show)
	r.Form("/admin/event", h.newForm, h.create)
	r.Form("/event/{slug}/register/", h.registerForm, h.register)
}

func (h *Events) index(c web.Context) error {
	return c.Render(http.StatusOK, h.views.EventList(views.EventList{
		Events:   h.store.List(c),
		Featured: h.store.Featured(c),
		Page:     page(c, "Eventos"),
	}))
}

func (h *Events) show(c web.Context) error {
	e, err := h.event(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, h.views.EventDetail(views.EventDetail{
		Event: e,
		Page:  page(c, e.Title),
	}))
}

func (h *Events) newForm(c web.Context) error {
	return h.renderForm(c, http.StatusOK, views.Form{})
}

func (h *Events) create(c web.Context) error {
	values := formValues(c, eventFields...)

	maxAttendees, err := parseCapacity(values["max_attendees"])
	if err != nil {
		return h.renderForm(c, http.StatusUnprocessableEntity, views.Form{
			Values: values,
			Errors: fieldError("max_attendees", "Debe ser un número entero"),
		})
	}

	e, err := h.store.Add(c, events.NewEvent{
		Title:        values["title"],
		Description:  values["description"],
		Date:         values["date"],
		Time:         values["time"],
		Location:     values["location"],
		Category:     values["category"],
		MaxAttendees: maxAttendees,
		Featured:     c.FormBool("featured"),
	})
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		verrs.Translate(events.TranslateES)
		return h.renderForm(c, http.StatusUnprocessableEntity, views.Form{Values: values, Errors: verrs})
	}
	if err != nil {
		return err
	}

	flash(c, flashSuccess, "Evento creado correctamente")
	return c.Redirect(http.StatusSeeOther, "/event/"+e.Slug)
}

func (h *Events) renderForm(c web.Context, code int, form views.Form) error {
	return c.Render(code, h.views.EventForm(views.EventForm{Form: form, Page: page(c, "Nuevo evento")}))
}

func (h *Events) registerForm(c web.Context) error {
	e, err := h.event(c)
	if err != nil {
		return err
	}
	return h.renderRegister(c, http.StatusOK, e, views.Form{})
}

func (h *Events) register(c web.Context) error {
	values := formValues(c, "name", "email")
	sl := c.Param("slug")

	_, err := h.store.Register(c, sl, events.Attendee{Name: values["name"], Email: values["email"]})

	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		flash(c, flashSuccess, "Registro completado")
		return c.Redirect(http.StatusSeeOther, "/event/"+sl)
	case errors.As(err, &verrs):
		verrs.Translate(events.TranslateES)
	case errors.Is(err, events.ErrAlreadyRegistered):
		verrs = fieldError("email", "Este email ya está registrado en el evento")
	case errors.Is(err, events.ErrEventFull):
		flash(c, flashDanger, "El evento está completo")
		return c.Redirect(http.StatusSeeOther, "/event/"+sl)
	default:
		if isNotFound(err) {
			return eventNotFound()
		}
		return err
	}

	e, err := h.event(c)
	if err != nil {
		return err
	}
	return h.renderRegister(c, http.StatusUnprocessableEntity, e, views.Form{Values: values, Errors: verrs})
}

func (h *Events) renderRegister(c web.Context, code int, e events.Event, form views.Form) error {
	return c.Render(code, h.views.Register(views.RegisterForm{
		Event: e,
		Form:  form,
		Page:  page(c, "Registro: "+e.Title),
	}))
}

func (h *Events) event(c web.Context) (events.Event, error) {
	e, err := h.store.BySlug(c, c.Param("slug"))
	if isNotFound(err) {
		return events.Event{}, eventNotFound()
	}
	return e, err
}

func eventNotFound() error {
	return web.ErrNotFound("Evento no encontrado")
}

// parseCapacity treats an empty field as unlimited.
func parseCapacity(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
