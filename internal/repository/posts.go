package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/microblog/pkg/db"
)

const postColumns = `p.id, p.user_id, p.title, p.content, p.slug,
	COALESCE(p.excerpt, ''), COALESCE(p.category, ''), p.is_published,
	p.created_at, p.updated_at, u.username`

const postFrom = ` FROM posts p JOIN users u ON u.id = p.user_id`

type CreatePostParams struct {
	Title       string
	Content     string
	Slug        string
	Excerpt     string
	Category    string
	UserID      int64
	IsPublished bool
}

// CreatePost inserts a post. A duplicate slug fails with SQLSTATE 23505 on posts_slug_key.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO posts (user_id, title, content, slug, excerpt, category, is_published)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		RETURNING id`,
		arg.UserID,
		arg.Title,
		arg.Content,
		arg.Slug,
		arg.Excerpt,
		arg.Category,
		arg.IsPublished,
	).Scan(&id)
	if err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	return q.GetPost(ctx, id)
}

type UpdatePostParams struct {
	Title       string
	Content     string
	Slug        string
	Excerpt     string
	Category    string
	ID          int64
	IsPublished bool
}

func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (Post, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE posts
		SET title = $2, content = $3, slug = $4, excerpt = NULLIF($5, ''),
			category = NULLIF($6, ''), is_published = $7, updated_at = now()
		WHERE id = $1`,
		arg.ID,
		arg.Title,
		arg.Content,
		arg.Slug,
		arg.Excerpt,
		arg.Category,
		arg.IsPublished,
	)
	if err != nil {
		return Post{}, fmt.Errorf("update post %d: %w", arg.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return Post{}, fmt.Errorf("update post %d: %w", arg.ID, db.ErrNotFound)
	}
	return q.GetPost(ctx, arg.ID)
}

func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete post %d: %w", id, db.ErrNotFound)
	}
	return nil
}

func (q *Queries) GetPost(ctx context.Context, id int64) (Post, error) {
	row := q.db.QueryRow(ctx, `SELECT `+postColumns+postFrom+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err != nil {
		return Post{}, fmt.Errorf("get post %d: %w", id, notFound(err))
	}
	return p, nil
}

func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug string) (Post, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+postColumns+postFrom+` WHERE p.slug = $1 AND p.is_published`, slug)
	p, err := scanPost(row)
	if err != nil {
		return Post{}, fmt.Errorf("get post %q: %w", slug, notFound(err))
	}
	return p, nil
}

// PostSlugExists reports whether any post, published or not, uses slug.
func (q *Queries) PostSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check post slug: %w", err)
	}
	return exists, nil
}

func (q *Queries) ListPublishedPosts(ctx context.Context) ([]Post, error) {
	return q.listPosts(ctx, `WHERE p.is_published`)
}

func (q *Queries) ListPublishedPostsByUser(ctx context.Context, userID int64) ([]Post, error) {
	return q.listPosts(ctx, `WHERE p.is_published AND p.user_id = $1`, userID)
}

func (q *Queries) ListPublishedPostsByCategory(ctx context.Context, category string) ([]Post, error) {
	return q.listPosts(ctx, `WHERE p.is_published AND p.category = $1`, category)
}

func (q *Queries) listPosts(ctx context.Context, where string, args ...any) ([]Post, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+postColumns+postFrom+` `+where+` ORDER BY p.created_at DESC, p.id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Content,
		&p.Slug,
		&p.Excerpt,
		&p.Category,
		&p.IsPublished,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Author,
	)
	return p, err
}
