package handlers

import (
	"context"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/internal/events"
)

// UserService is the part of blog.UserService the handlers use.
type UserService interface {
	Signup(ctx context.Context, in blog.SignupInput) (*blog.User, error)
	Authenticate(ctx context.Context, in blog.LoginInput) (*blog.User, error)
	ByID(ctx context.Context, id int64) (*blog.User, error)
	ByUsername(ctx context.Context, username string) (*blog.User, error)
}

// PostService is the part of blog.PostService the handlers use.
type PostService interface {
	Create(ctx context.Context, author *blog.User, in blog.PostInput) (*blog.Post, error)
	Update(ctx context.Context, actor *blog.User, id int64, in blog.PostInput) (*blog.Post, error)
	Delete(ctx context.Context, actor *blog.User, id int64) error
	Editable(ctx context.Context, actor *blog.User, id int64) (*blog.Post, error)
	BySlug(ctx context.Context, slug string) (*blog.Post, error)
	Published(ctx context.Context) ([]blog.Post, error)
	ByUser(ctx context.Context, userID int64) ([]blog.Post, error)
	ByCategory(ctx context.Context, category string) ([]blog.Post, error)
}

// EventStore is the part of events.Store the handlers use.
type EventStore interface {
	Add(ctx context.Context, in events.NewEvent) (events.Event, error)
	List(ctx context.Context) []events.Event
	Featured(ctx context.Context) []events.Event
	BySlug(ctx context.Context, slug string) (events.Event, error)
	Register(ctx context.Context, slug string, a events.Attendee) (events.Event, error)
}

var (
	_ UserService = (*blog.UserService)(nil)
	_ PostService = (*blog.PostService)(nil)
	_ EventStore  = (*events.Store)(nil)
)
