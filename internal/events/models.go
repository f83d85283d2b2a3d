package events

import (
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/microblog/pkg/validator"
)

// Date and time layouts used by forms and seed files.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Categories lists the allowed event categories.
var Categories = []string{"Tecnología", "Académico", "Cultural", "Deportivo", "Social"}

// Attendee is a person registered for an event.
type Attendee struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Event is a listed event together with its registrations.
type Event struct {
	Title        string     `yaml:"title"`
	Slug         string     `yaml:"slug"`
	Description  string     `yaml:"description"`
	Date         string     `yaml:"date"`
	Time         string     `yaml:"time"`
	Location     string     `yaml:"location"`
	Category     string     `yaml:"category"`
	Attendees    []Attendee `yaml:"attendees"`
	ID           int        `yaml:"id"`
	MaxAttendees int        `yaml:"max_attendees"`
	Featured     bool       `yaml:"featured"`
}

// StartsAt combines Date and Time in the local zone. ok is false when either does not parse.
func (e Event) StartsAt() (t time.Time, ok bool) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, time.Local)
	return t, err == nil
}

// SpotsLeft returns the remaining capacity, or -1 when the event is unlimited.
func (e Event) SpotsLeft() int {
	if e.MaxAttendees <= 0 {
		return -1
	}
	return max(e.MaxAttendees-len(e.Attendees), 0)
}

// IsFull reports whether a capacity limit is set and reached.
func (e Event) IsFull() bool {
	return e.SpotsLeft() == 0
}

func (e Event) clone() Event {
	e.Attendees = slices.Clone(e.Attendees)
	return e
}

// NewEvent is the input of Store.Add.
type NewEvent struct {
	Title        string
	Description  string
	Date         string
	Time         string
	Location     string
	Category     string
	MaxAttendees int
	Featured     bool
}

// Normalize trims surrounding whitespace from every text field.
func (in NewEvent) Normalize() NewEvent {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Location = strings.TrimSpace(in.Location)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

func (in NewEvent) Validate() error {
	return validator.Apply(
		validator.RequiredString("title", in.Title),
		validator.MaxLenString("title", in.Title, 200),
		validator.RequiredString("description", in.Description),
		validator.RequiredString("date", in.Date),
		layoutRule("date", in.Date, DateLayout, "must be a date (YYYY-MM-DD)"),
		validator.RequiredString("time", in.Time),
		layoutRule("time", in.Time, TimeLayout, "must be a time (HH:MM)"),
		validator.RequiredString("location", in.Location),
		validator.OneOf("category", in.Category, Categories...),
		validator.MinNum("max_attendees", in.MaxAttendees, 0),
	)
}

// Normalize trims the name and lowercases the email.
func (a Attendee) Normalize() Attendee {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	return a
}

func (a Attendee) Validate() error {
	return validator.Apply(
		validator.RequiredString("name", a.Name),
		validator.MaxLenString("name", a.Name, 120),
		validator.RequiredString("email", a.Email),
		validator.Email("email", a.Email),
	)
}

// layoutRule passes for empty values so RequiredString reports those.
func layoutRule(field, value, layout, msg string) validator.Rule {
	return validator.Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			_, err := time.Parse(layout, value)
			return err == nil
		},
		Error: validator.ValidationError{
			Field:             field,
			Message:           msg,
			TranslationKey:    "validation.format",
			TranslationValues: map[string]any{"field": field, "layout": layout},
		},
	}
}
