package blog

import "time"

// Categories lists the allowed post categories in display order.
var Categories = []Category{
	{Value: "technology", Label: "Technology"},
	{Value: "lifestyle", Label: "Lifestyle"},
	{Value: "travel", Label: "Travel"},
	{Value: "food", Label: "Food"},
	{Value: "sports", Label: "Sports"},
	{Value: "business", Label: "Business"},
	{Value: "education", Label: "Education"},
	{Value: "other", Label: "Other"},
}

type Category struct {
	Value string
	Label string
}

// CategoryLabel returns the display label of value, or value itself when unknown.
func CategoryLabel(value string) string {
	for _, c := range Categories {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

func categoryValues() []string {
	values := make([]string, len(Categories))
	for i, c := range Categories {
		values[i] = c.Value
	}
	return values
}

type User struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	Bio          string
	ID           int64
	IsAdmin      bool
}

// CanModify reports whether u may edit or delete p.
func (u *User) CanModify(p *Post) bool {
	return u != nil && p != nil && (u.IsAdmin || p.UserID == u.ID)
}

// Post is a blog entry. Slug is assigned on the first save and kept afterwards.
type Post struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string
	Content     string
	Slug        string
	Excerpt     string
	Category    string
	Author      string
	ID          int64
	UserID      int64
	IsPublished bool
}

// URL is the public address of the post.
func (p Post) URL() string {
	return "/post/" + p.Slug + "/"
}
