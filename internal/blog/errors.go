package blog

import "errors"

var (
	ErrNotFound           = errors.New("blog: not found")
	ErrForbidden          = errors.New("blog: action not allowed for this user")
	ErrSlugConflict       = errors.New("blog: slug already in use")
	ErrEmailTaken         = errors.New("blog: email already registered")
	ErrUsernameTaken      = errors.New("blog: username already taken")
	ErrInvalidCredentials = errors.New("blog: invalid email or password")
)
