package repository

import "time"

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

type Post struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string
	Content   string
	Slug      string
	Excerpt   string
	Category  string
	// Author is the username of the owner, filled by read queries only.
	Author      string
	ID          int64
	UserID      int64
	IsPublished bool
}
