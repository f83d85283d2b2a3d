package views

import (
	"html/template"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/internal/events"
	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/pkg/validator"
)

// Page carries what the layout needs on every page.
type Page struct {
	CurrentUser *blog.User
	Title       string
	Brand       string
	Lang        string
	Flashes     []web.FlashMessage
}

// Form holds submitted values and their validation errors for re-rendering.
type Form struct {
	Values map[string]string
	Errors validator.ValidationErrors
}

// Value returns the submitted value of field.
func (f Form) Value(field string) string {
	return f.Values[field]
}

type PostCard struct {
	Summary string
	Post    blog.Post
}

type PostList struct {
	Heading string
	Posts   []PostCard
	Page    Page
}

type PostDetail struct {
	Body    template.HTML
	Post    blog.Post
	Page    Page
	CanEdit bool
}

type PostForm struct {
	Action     string
	Form       Form
	Categories []blog.Category
	Page       Page
	Editing    bool
}

type AuthForm struct {
	Next string
	Form Form
	Page Page
}

type ErrorPage struct {
	Heading   string
	Message   string
	RequestID string
	Page      Page
	Code      int
}

type EventList struct {
	Events   []events.Event
	Featured []events.Event
	Page     Page
}

type EventDetail struct {
	Event events.Event
	Page  Page
}

type EventForm struct {
	Form       Form
	Categories []string
	Page       Page
}

type RegisterForm struct {
	Form  Form
	Event events.Event
	Page  Page
}
