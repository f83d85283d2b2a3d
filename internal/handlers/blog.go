package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/internal/views"
	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/middlewares"
	"github.com/dmitrymomot/microblog/pkg/markdown"
	"github.com/dmitrymomot/microblog/pkg/validator"
)

// summaryLength is the rune limit of generated post summaries.
const summaryLength = 200

var postFields = []string{"title", "content", "excerpt", "category", "is_published"}

// Blog serves the blog pages.
type Blog struct {
	users UserService
	posts PostService
	views *views.Set
	md    *markdown.Renderer
}

// NewBlog creates the blog handler.
func NewBlog(users UserService, posts PostService, set *views.Set) *Blog {
	return &Blog{
		users: users,
		posts: posts,
		views: set,
		md:    markdown.NewRenderer(),
	}
}

func (h *Blog) Routes(r web.Router) {
	r.Group(func(r web.Router) {
		r.Use(LoadUser(h.users))

		r.GET("/", h.index)
		r.GET("/post/{slug}/", h.showPost)
		r.GET("/user/{username}/", h.userPosts)
		r.GET("/category/{category}/", h.categoryPosts)

		guest := middlewares.RedirectAuthenticated("/")
		r.Form("/signup/", h.signupForm, h.signup, guest)
		r.Form("/login", h.loginForm, h.login, guest)
		r.Form("/logout", h.logout, h.logout)

		r.Route("/admin/post", func(r web.Router) {
			r.Use(middlewares.RequireAuth())

			r.Form("/", h.newPostForm, h.createPost)
			r.Form("/{id}/edit/", h.editPostForm, h.updatePost)
			r.POST("/{id}/delete/", h.deletePost)
		})
	})
}

func (h *Blog) index(c web.Context) error {
	posts, err := h.posts.Published(c)
	if err != nil {
		return err
	}
	return h.renderList(c, "", "Latest posts", posts)
}

func (h *Blog) showPost(c web.Context) error {
	post, err := h.posts.BySlug(c, c.Param("slug"))
	if err != nil {
		return err
	}

	body, err := h.md.Render(post.Content)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, h.views.PostDetail(views.PostDetail{
		Post:    *post,
		Body:    body,
		CanEdit: currentUser(c).CanModify(post),
		Page:    page(c, post.Title),
	}))
}

func (h *Blog) userPosts(c web.Context) error {
	user, err := h.users.ByUsername(c, c.Param("username"))
	if err != nil {
		return err
	}
	posts, err := h.posts.ByUser(c, user.ID)
	if err != nil {
		return err
	}
	return h.renderList(c, user.Username, "Posts by "+user.Username, posts)
}

func (h *Blog) categoryPosts(c web.Context) error {
	category := c.Param("category")
	posts, err := h.posts.ByCategory(c, category)
	if err != nil {
		return err
	}
	label := blog.CategoryLabel(category)
	return h.renderList(c, label, "Category: "+label, posts)
}

func (h *Blog) renderList(c web.Context, title, heading string, posts []blog.Post) error {
	cards := make([]views.PostCard, len(posts))
	for i, p := range posts {
		summary := p.Excerpt
		if summary == "" {
			summary = h.md.Summary(p.Content, summaryLength)
		}
		cards[i] = views.PostCard{Post: p, Summary: summary}
	}

	return c.Render(http.StatusOK, h.views.PostList(views.PostList{
		Heading: heading,
		Posts:   cards,
		Page:    page(c, title),
	}))
}

func (h *Blog) signupForm(c web.Context) error {
	return h.renderSignup(c, http.StatusOK, views.Form{})
}

func (h *Blog) signup(c web.Context) error {
	values := formValues(c, "username", "email")
	user, err := h.users.Signup(c, blog.SignupInput{
		Username: values["username"],
		Email:    values["email"],
		Password: c.Request().FormValue("password"),
	})

	var verrs validator.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
	case errors.Is(err, blog.ErrEmailTaken):
		verrs = fieldError("email", "Email already registered")
	case errors.Is(err, blog.ErrUsernameTaken):
		verrs = fieldError("username", "Username already taken")
	default:
		return err
	}
	if verrs != nil {
		return h.renderSignup(c, http.StatusUnprocessableEntity, views.Form{Values: values, Errors: verrs})
	}

	if err := c.AuthenticateSession(user.ID, false); err != nil {
		return err
	}
	flash(c, flashSuccess, "Account created. You are now logged in!")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Blog) renderSignup(c web.Context, code int, form views.Form) error {
	return c.Render(code, h.views.Signup(views.AuthForm{Form: form, Page: page(c, "Sign up")}))
}

func (h *Blog) loginForm(c web.Context) error {
	return h.renderLogin(c, http.StatusOK, views.Form{})
}

func (h *Blog) login(c web.Context) error {
	values := formValues(c, "email")
	in := blog.LoginInput{
		Email:    values["email"],
		Password: c.Request().FormValue("password"),
		Remember: c.FormBool("remember_me"),
	}

	user, err := h.users.Authenticate(c, in)

	var verrs validator.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		return h.renderLogin(c, http.StatusUnprocessableEntity, views.Form{Values: values, Errors: verrs})
	case errors.Is(err, blog.ErrInvalidCredentials):
		return h.renderLogin(c, http.StatusUnauthorized, views.Form{
			Values: values,
			Errors: fieldError("password", "Invalid email or password"),
		})
	default:
		return err
	}

	if err := c.AuthenticateSession(user.ID, in.Remember); err != nil {
		return err
	}
	flash(c, flashSuccess, "Logged in successfully!")
	return c.Redirect(http.StatusSeeOther, redirectTarget(c.Query("next"), c.Request().Host, "/"))
}

func (h *Blog) renderLogin(c web.Context, code int, form views.Form) error {
	next := c.Query("next")
	if !isSafeRedirect(next, c.Request().Host) {
		next = ""
	}
	return c.Render(code, h.views.Login(views.AuthForm{Next: next, Form: form, Page: page(c, "Log in")}))
}

func (h *Blog) logout(c web.Context) error {
	c.DestroySession()
	flash(c, flashInfo, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Blog) newPostForm(c web.Context) error {
	return h.renderPostForm(c, http.StatusOK, "/admin/post/", false, views.Form{})
}

func (h *Blog) createPost(c web.Context) error {
	values := formValues(c, postFields...)
	post, err := h.posts.Create(c, currentUser(c), postInput(c))
	if err != nil {
		return h.postFailed(c, err, "/admin/post/", false, values)
	}

	flash(c, flashSuccess, "Post created successfully!")
	return c.Redirect(http.StatusSeeOther, post.URL())
}

func (h *Blog) editPostForm(c web.Context) error {
	id, ok := web.ParamID(c, "id")
	if !ok {
		return web.ErrNotFound(defaultMessage(http.StatusNotFound))
	}
	post, err := h.posts.Editable(c, currentUser(c), id)
	if err != nil {
		return err
	}

	values := map[string]string{
		"title":    post.Title,
		"content":  post.Content,
		"excerpt":  post.Excerpt,
		"category": post.Category,
	}
	if post.IsPublished {
		values["is_published"] = "y"
	}
	return h.renderPostForm(c, http.StatusOK, editURL(id), true, views.Form{Values: values})
}

func (h *Blog) updatePost(c web.Context) error {
	id, ok := web.ParamID(c, "id")
	if !ok {
		return web.ErrNotFound(defaultMessage(http.StatusNotFound))
	}

	in := postInput(c)
	in.IsPublished = c.FormBool("is_published")
	post, err := h.posts.Update(c, currentUser(c), id, in)
	if err != nil {
		return h.postFailed(c, err, editURL(id), true, formValues(c, postFields...))
	}

	flash(c, flashSuccess, "Post updated successfully!")
	return c.Redirect(http.StatusSeeOther, post.URL())
}

func (h *Blog) deletePost(c web.Context) error {
	id, ok := web.ParamID(c, "id")
	if !ok {
		return web.ErrNotFound(defaultMessage(http.StatusNotFound))
	}
	if err := h.posts.Delete(c, currentUser(c), id); err != nil {
		return err
	}

	flash(c, flashSuccess, "Post deleted successfully!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// postFailed re-renders the form for validation errors and slug conflicts
// and passes every other error on.
func (h *Blog) postFailed(c web.Context, err error, action string, editing bool, values map[string]string) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return h.renderPostForm(c, http.StatusUnprocessableEntity, action, editing, views.Form{Values: values, Errors: verrs})
	case errors.Is(err, blog.ErrSlugConflict):
		c.LogWarn("post slug conflict", "error", err)
		return h.renderPostForm(c, http.StatusConflict, action, editing, views.Form{
			Values: values,
			Errors: fieldError("title", "Another post with this title was saved at the same moment. Please submit again."),
		})
	}
	return err
}

func (h *Blog) renderPostForm(c web.Context, code int, action string, editing bool, form views.Form) error {
	title := "New post"
	if editing {
		title = "Edit post"
	}
	return c.Render(code, h.views.PostForm(views.PostForm{
		Action:  action,
		Editing: editing,
		Form:    form,
		Page:    page(c, title),
	}))
}

func postInput(c web.Context) blog.PostInput {
	return blog.PostInput{
		Title:    c.Form("title"),
		Content:  c.Form("content"),
		Excerpt:  c.Form("excerpt"),
		Category: c.Form("category"),
	}
}

func editURL(id int64) string {
	return fmt.Sprintf("/admin/post/%d/edit/", id)
}
