package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/microblog/pkg/db"
	"github.com/dmitrymomot/microblog/pkg/logger"
	"github.com/dmitrymomot/microblog/pkg/slug"
)

// DefaultCommitAttempts allows one regeneration after a slug conflict on commit.
const DefaultCommitAttempts = 2

// PostService implements post use cases on top of a PostStore.
type PostService struct {
	txb            db.TxBeginner
	posts          PostStore
	slugs          *slug.Generator
	log            *slog.Logger
	commitAttempts int
}

// PostOption configures a PostService.
type PostOption func(*PostService)

// WithSlugGenerator replaces the default slug generator.
func WithSlugGenerator(g *slug.Generator) PostOption {
	return func(s *PostService) {
		if g != nil {
			s.slugs = g
		}
	}
}

// WithCommitAttempts sets how many times Save commits a post whose slug it
// generated before giving up with ErrSlugConflict. Values below 1 are ignored.
func WithCommitAttempts(n int) PostOption {
	return func(s *PostService) {
		if n > 0 {
			s.commitAttempts = n
		}
	}
}

func WithPostLogger(l *slog.Logger) PostOption {
	return func(s *PostService) {
		if l != nil {
			s.log = l
		}
	}
}

func NewPostService(txb db.TxBeginner, posts PostStore, opts ...PostOption) *PostService {
	s := &PostService{
		txb:            txb,
		posts:          posts,
		slugs:          slug.NewGenerator(),
		log:            logger.NewNope(),
		commitAttempts: DefaultCommitAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save inserts p when p.ID is zero and updates it otherwise.
//
// An empty slug is generated from the title. If the commit then hits a unique
// constraint, the transaction is rolled back, the slug regenerated and the
// commit retried, up to the configured number of attempts. A slug the post
// already had is never regenerated: a conflict on it is returned as
// ErrSlugConflict right away. Other commit errors are returned as they are.
//
// On success p holds the stored record. On failure p is left as it was passed in.
func (s *PostService) Save(ctx context.Context, p *Post) error {
	generated := p.Slug == ""

	var lastErr error
	for attempt := 1; attempt <= s.commitAttempts; attempt++ {
		candidate := *p
		if generated {
			sl, err := s.slugs.Unique(ctx, p.Title, s.posts.PostSlugExists)
			if err != nil {
				return fmt.Errorf("generate slug: %w", err)
			}
			candidate.Slug = sl
		}

		saved, err := s.commit(ctx, candidate)
		if err == nil {
			*p = saved
			return nil
		}
		if !db.IsUniqueViolation(err) {
			return err
		}

		lastErr = err
		if !generated {
			break
		}
		s.log.WarnContext(ctx, "post slug taken at commit",
			slog.String("slug", candidate.Slug),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", s.commitAttempts),
		)
	}

	return errors.Join(ErrSlugConflict, lastErr)
}

func (s *PostService) commit(ctx context.Context, p Post) (Post, error) {
	var saved Post
	err := db.WithTx(ctx, s.txb, func(tx pgx.Tx) error {
		var err error
		if p.ID == 0 {
			saved, err = s.posts.CreatePost(ctx, tx, p)
		} else {
			saved, err = s.posts.UpdatePost(ctx, tx, p)
		}
		return err
	})
	return saved, err
}

// Create validates in and saves a new published post owned by author.
func (s *PostService) Create(ctx context.Context, author *User, in PostInput) (*Post, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := &Post{
		UserID:      author.ID,
		Author:      author.Username,
		Title:       in.Title,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		Category:    in.Category,
		IsPublished: true,
	}
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "post created",
		slog.Int64("post_id", p.ID),
		slog.String("slug", p.Slug),
	)
	return p, nil
}

// Update applies in to the post with the given id. The slug does not change.
// A post deleted while the update runs yields ErrNotFound.
func (s *PostService) Update(ctx context.Context, actor *User, id int64, in PostInput) (*Post, error) {
	p, err := s.Editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Content = in.Content
	p.Excerpt = in.Excerpt
	p.Category = in.Category
	p.IsPublished = in.IsPublished

	if err := s.Save(ctx, p); err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// Delete removes the post if actor owns it or is an admin.
func (s *PostService) Delete(ctx context.Context, actor *User, id int64) error {
	if _, err := s.Editable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return mapNotFound(err)
	}

	s.log.InfoContext(ctx, "post deleted",
		slog.Int64("post_id", id),
		slog.Int64("actor_id", actor.ID),
	)
	return nil
}

// Editable loads a post, published or not, that actor is allowed to modify.
func (s *PostService) Editable(ctx context.Context, actor *User, id int64) (*Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(p) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*Post, error) {
	p, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

// BySlug returns a published post.
func (s *PostService) BySlug(ctx context.Context, slug string) (*Post, error) {
	p, err := s.posts.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

// Published lists published posts, newest first.
func (s *PostService) Published(ctx context.Context) ([]Post, error) {
	return s.posts.ListPublishedPosts(ctx)
}

func (s *PostService) ByUser(ctx context.Context, userID int64) ([]Post, error) {
	return s.posts.ListPublishedPostsByUser(ctx, userID)
}

func (s *PostService) ByCategory(ctx context.Context, category string) ([]Post, error) {
	return s.posts.ListPublishedPostsByCategory(ctx, category)
}

func mapNotFound(err error) error {
	if db.IsNotFound(err) {
		return errors.Join(ErrNotFound, err)
	}
	return err
}
