// Package views renders the HTML pages of both applications.
//
// Pages are html/template files embedded in the binary. Each typed method
// returns a templ.Component, so handlers render them with web.Context.Render.
package views

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/internal/events"
)

var ErrUnknownPage = errors.New("views: unknown page")

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and other assets, rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"categoryLabel": blog.CategoryLabel,
}

// Set is a parsed family of pages sharing a layout and navigation.
type Set struct {
	pages map[string]*template.Template
	brand string
	lang  string
}

// NewBlog parses the blog pages.
func NewBlog() (*Set, error) {
	return newSet("Microblog", "en", "templates/blog",
		"post_list", "post_detail", "post_form", "signup", "login")
}

// NewEvents parses the events pages.
func NewEvents() (*Set, error) {
	return newSet("Eventos", "es", "templates/events",
		"event_list", "event_detail", "event_form", "register")
}

func newSet(brand, lang, dir string, names ...string) (*Set, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html", dir+"/nav.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	s := &Set{pages: make(map[string]*template.Template), brand: brand, lang: lang}
	for _, name := range append(names, "error") {
		file := dir + "/" + name + ".html"
		if name == "error" {
			file = "templates/error.html"
		}

		t, err := template.Must(base.Clone()).ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		s.pages[name] = t
	}
	return s, nil
}

// page stamps the set's brand and language on p.
func (s *Set) page(p Page) Page {
	p.Brand = s.brand
	p.Lang = s.lang
	return p
}

func (s *Set) render(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		t, ok := s.pages[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPage, name)
		}
		return t.ExecuteTemplate(w, "layout", data)
	})
}

// Error renders the error page of the set.
func (s *Set) Error(d ErrorPage) templ.Component {
	d.Page = s.page(d.Page)
	return s.render("error", d)
}

func (s *Set) PostList(d PostList) templ.Component {
	d.Page = s.page(d.Page)
	return s.render("post_list", d)
}

func (s *Set) PostDetail(d PostDetail) templ.Component {
	d.Page = s.page(d.Page)
	return s.render("post_detail", d)
}

func (s *Set) PostForm(d PostForm) templ.Component {
	d.Page = s.page(d.Page)
	if d.Categories == nil {
		d.Categories = blog.Categories
	}
	return s.render("post_form", d)
}

func (s *Set) Signup(d AuthForm) templ.Component {
	d.Page = s.page(d.Page)
	return s.render("signup", d)
}

func (s *Set) Login(d AuthForm) templ.Component {
	d.Page = s.page(d.Page)
	return s.render("login", d)
}

func (s *Set) EventList(d EventList) templ.Component {
	d.Page = s.page(d.Page)
	return s.render("event_list", d)
}

func (s *Set) EventDetail(d EventDetail) templ.Component {
	d.Page = s.page(d.Page)
	return s.render("event_detail", d)
}

func (s *Set) EventForm(d EventForm) templ.Component {
	d.Page = s.page(d.Page)
	if d.Categories == nil {
		d.Categories = events.Categories
	}
	return s.render("event_form", d)
}

func (s *Set) Register(d RegisterForm) templ.Component {
	d.Page = s.page(d.Page)
	return s.render("register", d)
}
