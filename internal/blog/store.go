package blog

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/microblog/internal/repository"
)

// PostStore persists posts. Writes run inside the caller's transaction.
type PostStore interface {
	PostSlugExists(ctx context.Context, slug string) (bool, error)
	CreatePost(ctx context.Context, tx pgx.Tx, p Post) (Post, error)
	UpdatePost(ctx context.Context, tx pgx.Tx, p Post) (Post, error)
	DeletePost(ctx context.Context, id int64) error
	GetPost(ctx context.Context, id int64) (Post, error)
	GetPublishedPostBySlug(ctx context.Context, slug string) (Post, error)
	ListPublishedPosts(ctx context.Context) ([]Post, error)
	ListPublishedPostsByUser(ctx context.Context, userID int64) ([]Post, error)
	ListPublishedPostsByCategory(ctx context.Context, category string) ([]Post, error)
}

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

// PostgresStore implements PostStore and UserStore on top of repository.Queries.
type PostgresStore struct {
	q *repository.Queries
}

func NewPostgresStore(q *repository.Queries) *PostgresStore {
	return &PostgresStore{q: q}
}

func (s *PostgresStore) PostSlugExists(ctx context.Context, slug string) (bool, error) {
	return s.q.PostSlugExists(ctx, slug)
}

func (s *PostgresStore) CreatePost(ctx context.Context, tx pgx.Tx, p Post) (Post, error) {
	row, err := s.q.WithTx(tx).CreatePost(ctx, repository.CreatePostParams{
		UserID:      p.UserID,
		Title:       p.Title,
		Content:     p.Content,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Category:    p.Category,
		IsPublished: p.IsPublished,
	})
	if err != nil {
		return Post{}, err
	}
	return postFromRow(row), nil
}

func (s *PostgresStore) UpdatePost(ctx context.Context, tx pgx.Tx, p Post) (Post, error) {
	row, err := s.q.WithTx(tx).UpdatePost(ctx, repository.UpdatePostParams{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Category:    p.Category,
		IsPublished: p.IsPublished,
	})
	if err != nil {
		return Post{}, err
	}
	return postFromRow(row), nil
}

func (s *PostgresStore) DeletePost(ctx context.Context, id int64) error {
	return s.q.DeletePost(ctx, id)
}

func (s *PostgresStore) GetPost(ctx context.Context, id int64) (Post, error) {
	row, err := s.q.GetPost(ctx, id)
	if err != nil {
		return Post{}, err
	}
	return postFromRow(row), nil
}

func (s *PostgresStore) GetPublishedPostBySlug(ctx context.Context, slug string) (Post, error) {
	row, err := s.q.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		return Post{}, err
	}
	return postFromRow(row), nil
}

func (s *PostgresStore) ListPublishedPosts(ctx context.Context) ([]Post, error) {
	return postsFromRows(s.q.ListPublishedPosts(ctx))
}

func (s *PostgresStore) ListPublishedPostsByUser(ctx context.Context, userID int64) ([]Post, error) {
	return postsFromRows(s.q.ListPublishedPostsByUser(ctx, userID))
}

func (s *PostgresStore) ListPublishedPostsByCategory(ctx context.Context, category string) ([]Post, error) {
	return postsFromRows(s.q.ListPublishedPostsByCategory(ctx, category))
}

func (s *PostgresStore) CreateUser(ctx context.Context, u User) (User, error) {
	row, err := s.q.CreateUser(ctx, repository.CreateUserParams{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
	})
	if err != nil {
		return User{}, err
	}
	return userFromRow(row), nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (User, error) {
	return userOrErr(s.q.GetUserByID(ctx, id))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return userOrErr(s.q.GetUserByEmail(ctx, email))
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return userOrErr(s.q.GetUserByUsername(ctx, username))
}

func postFromRow(r repository.Post) Post {
	return Post{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Content:     r.Content,
		Slug:        r.Slug,
		Excerpt:     r.Excerpt,
		Category:    r.Category,
		Author:      r.Author,
		IsPublished: r.IsPublished,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func postsFromRows(rows []repository.Post, err error) ([]Post, error) {
	if err != nil {
		return nil, err
	}
	posts := make([]Post, len(rows))
	for i, r := range rows {
		posts[i] = postFromRow(r)
	}
	return posts, nil
}

func userFromRow(r repository.User) User {
	return User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		IsAdmin:      r.IsAdmin,
		Phone:        r.Phone,
		Bio:          r.Bio,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func userOrErr(r repository.User, err error) (User, error) {
	if err != nil {
		return User{}, err
	}
	return userFromRow(r), nil
}
