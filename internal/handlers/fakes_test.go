package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/pkg/slug"
)

const testPassword = "secret123"

type fakeUsers struct {
	mu    sync.Mutex
	users map[int64]*blog.User
}

func newFakeUsers(users ...blog.User) *fakeUsers {
	f := &fakeUsers{users: make(map[int64]*blog.User)}
	for _, u := range users {
		f.users[u.ID] = &u
	}
	return f
}

func (f *fakeUsers) remove(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func (f *fakeUsers) Signup(_ context.Context, in blog.SignupInput) (*blog.User, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == in.Email {
			return nil, blog.ErrEmailTaken
		}
		if u.Username == in.Username {
			return nil, blog.ErrUsernameTaken
		}
	}
	u := &blog.User{ID: int64(len(f.users) + 100), Username: in.Username, Email: in.Email}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, in blog.LoginInput) (*blog.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(in.Email)) && in.Password == testPassword {
			return u, nil
		}
	}
	return nil, blog.ErrInvalidCredentials
}

func (f *fakeUsers) ByID(_ context.Context, id int64) (*blog.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, blog.ErrNotFound
}

func (f *fakeUsers) ByUsername(_ context.Context, username string) (*blog.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, blog.ErrNotFound
}

// fakePosts keeps posts in insertion order. A title equal to conflictTitle
// fails with ErrSlugConflict.
type fakePosts struct {
	mu     sync.Mutex
	posts  []*blog.Post
	nextID int64
}

const conflictTitle = "Raced title"

func newFakePosts(posts ...blog.Post) *fakePosts {
	f := &fakePosts{nextID: 1}
	for _, p := range posts {
		f.posts = append(f.posts, &p)
		f.nextID = max(f.nextID, p.ID+1)
	}
	return f
}

func (f *fakePosts) Create(_ context.Context, author *blog.User, in blog.PostInput) (*blog.Post, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Title == conflictTitle {
		return nil, blog.ErrSlugConflict
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	p := &blog.Post{
		ID:          f.nextID,
		UserID:      author.ID,
		Author:      author.Username,
		Title:       in.Title,
		Slug:        slug.Make(in.Title),
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		Category:    in.Category,
		IsPublished: true,
		CreatedAt:   time.Now(),
	}
	f.nextID++
	f.posts = append(f.posts, p)
	return p, nil
}

func (f *fakePosts) Update(ctx context.Context, actor *blog.User, id int64, in blog.PostInput) (*blog.Post, error) {
	p, err := f.Editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	p.Title, p.Content, p.Excerpt, p.Category, p.IsPublished = in.Title, in.Content, in.Excerpt, in.Category, in.IsPublished
	return p, nil
}

func (f *fakePosts) Delete(ctx context.Context, actor *blog.User, id int64) error {
	if _, err := f.Editable(ctx, actor, id); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakePosts) Editable(_ context.Context, actor *blog.User, id int64) (*blog.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			if !actor.CanModify(p) {
				return nil, blog.ErrForbidden
			}
			return p, nil
		}
	}
	return nil, blog.ErrNotFound
}

func (f *fakePosts) BySlug(_ context.Context, sl string) (*blog.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == sl && p.IsPublished {
			cp := *p
			return &cp, nil
		}
	}
	return nil, blog.ErrNotFound
}

func (f *fakePosts) Published(context.Context) ([]blog.Post, error) {
	return f.filter(func(*blog.Post) bool { return true }), nil
}

func (f *fakePosts) ByUser(_ context.Context, userID int64) ([]blog.Post, error) {
	return f.filter(func(p *blog.Post) bool { return p.UserID == userID }), nil
}

func (f *fakePosts) ByCategory(_ context.Context, category string) ([]blog.Post, error) {
	return f.filter(func(p *blog.Post) bool { return p.Category == category }), nil
}

func (f *fakePosts) filter(keep func(*blog.Post) bool) []blog.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []blog.Post
	for _, p := range f.posts {
		if p.IsPublished && keep(p) {
			out = append(out, *p)
		}
	}
	return out
}

// client is a minimal browser: it keeps cookies between requests and never
// follows redirects.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, h: h, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) post(target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}
