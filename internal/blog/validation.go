package blog

import (
	"strings"

	"github.com/dmitrymomot/microblog/pkg/validator"
)

// PostInput is the editable part of a post as submitted by a form.
type PostInput struct {
	Title       string
	Content     string
	Excerpt     string
	Category    string
	IsPublished bool
}

// Normalize trims surrounding whitespace from every text field.
func (in PostInput) Normalize() PostInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

func (in PostInput) Validate() error {
	return validator.Apply(
		validator.RequiredString("title", in.Title),
		validator.MinLenString("title", in.Title, 3),
		validator.MaxLenString("title", in.Title, 255),
		validator.RequiredString("content", in.Content),
		validator.MinLenString("content", in.Content, 10),
		validator.MaxLenString("excerpt", in.Excerpt, 500),
		validator.When(in.Category != "", validator.OneOf("category", in.Category, categoryValues()...)),
	)
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

func (in SignupInput) Normalize() SignupInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return in
}

func (in SignupInput) Validate() error {
	return validator.Apply(
		validator.RequiredString("username", in.Username),
		validator.MinLenString("username", in.Username, 3),
		validator.MaxLenString("username", in.Username, 80),
		validator.RequiredString("email", in.Email),
		validator.Email("email", in.Email),
		validator.MaxLenString("email", in.Email, 255),
		validator.RequiredString("password", in.Password),
		validator.MinLenString("password", in.Password, 6),
		validator.MaxLenString("password", in.Password, 128),
	)
}

type LoginInput struct {
	Email    string
	Password string
	Remember bool
}

func (in LoginInput) Validate() error {
	return validator.Apply(
		validator.RequiredString("email", in.Email),
		validator.Email("email", strings.TrimSpace(in.Email)),
		validator.MaxLenString("email", in.Email, 255),
		validator.RequiredString("password", in.Password),
	)
}
