package blog_test

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/pkg/db"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	err error
	txs []*fakeTx
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// fakeStore keeps posts and users in memory and enforces the same unique
// constraints as the schema.
type fakeStore struct {
	posts   map[int64]blog.Post
	users   map[int64]blog.User
	oracle  []string
	commits []string
	// onCommit runs before every create or update and can fail it.
	onCommit func(s *fakeStore, p blog.Post) error
	nextID   int64
	mu       sync.Mutex
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts: make(map[int64]blog.Post),
		users: make(map[int64]blog.User),
	}
}

// insert adds a post directly, as another writer would.
func (s *fakeStore) insert(p blog.Post) blog.Post {
	s.nextID++
	p.ID = s.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.posts[p.ID] = p
	return p
}

func (s *fakeStore) slugTaken(slug string, exceptID int64) bool {
	for id, p := range s.posts {
		if id != exceptID && p.Slug == slug {
			return true
		}
	}
	return false
}

func (s *fakeStore) PostSlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oracle = append(s.oracle, slug)
	return s.slugTaken(slug, 0), nil
}

func (s *fakeStore) CreatePost(_ context.Context, _ pgx.Tx, p blog.Post) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commits = append(s.commits, p.Slug)
	if s.onCommit != nil {
		if err := s.onCommit(s, p); err != nil {
			return blog.Post{}, err
		}
	}
	if s.slugTaken(p.Slug, 0) {
		return blog.Post{}, uniqueViolation("posts_slug_key")
	}
	return s.insert(p), nil
}

func (s *fakeStore) UpdatePost(_ context.Context, _ pgx.Tx, p blog.Post) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commits = append(s.commits, p.Slug)
	if s.onCommit != nil {
		if err := s.onCommit(s, p); err != nil {
			return blog.Post{}, err
		}
	}
	if _, ok := s.posts[p.ID]; !ok {
		return blog.Post{}, db.ErrNotFound
	}
	if s.slugTaken(p.Slug, p.ID) {
		return blog.Post{}, uniqueViolation("posts_slug_key")
	}
	p.UpdatedAt = time.Now()
	s.posts[p.ID] = p
	return p, nil
}

func (s *fakeStore) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *fakeStore) GetPost(_ context.Context, id int64) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return blog.Post{}, pgx.ErrNoRows
	}
	return p, nil
}

func (s *fakeStore) GetPublishedPostBySlug(_ context.Context, slug string) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.Slug == slug && p.IsPublished {
			return p, nil
		}
	}
	return blog.Post{}, db.ErrNotFound
}

func (s *fakeStore) list(keep func(blog.Post) bool) []blog.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []blog.Post
	for _, p := range s.posts {
		if p.IsPublished && keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b blog.Post) int { return cmp.Compare(b.ID, a.ID) })
	return out
}

func (s *fakeStore) ListPublishedPosts(context.Context) ([]blog.Post, error) {
	return s.list(func(blog.Post) bool { return true }), nil
}

func (s *fakeStore) ListPublishedPostsByUser(_ context.Context, userID int64) ([]blog.Post, error) {
	return s.list(func(p blog.Post) bool { return p.UserID == userID }), nil
}

func (s *fakeStore) ListPublishedPostsByCategory(_ context.Context, category string) ([]blog.Post, error) {
	return s.list(func(p blog.Post) bool { return p.Category == category }), nil
}

func (s *fakeStore) CreateUser(_ context.Context, u blog.User) (blog.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return blog.User{}, uniqueViolation("users_email_key")
		}
		if existing.Username == u.Username {
			return blog.User{}, uniqueViolation("users_username_key")
		}
	}
	s.nextID++
	u.ID = s.nextID
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) findUser(match func(blog.User) bool) (blog.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			return u, nil
		}
	}
	return blog.User{}, db.ErrNotFound
}

func (s *fakeStore) GetUserByID(_ context.Context, id int64) (blog.User, error) {
	return s.findUser(func(u blog.User) bool { return u.ID == id })
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (blog.User, error) {
	return s.findUser(func(u blog.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *fakeStore) GetUserByUsername(_ context.Context, username string) (blog.User, error) {
	return s.findUser(func(u blog.User) bool { return u.Username == username })
}

var errConnReset = errors.New("connection reset by peer")
