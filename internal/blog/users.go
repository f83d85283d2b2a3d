package blog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/microblog/pkg/db"
	"github.com/dmitrymomot/microblog/pkg/logger"
	"github.com/dmitrymomot/microblog/pkg/password"
)

// UserService handles signup, login and user lookups.
type UserService struct {
	users  UserStore
	hasher *password.Hasher
	log    *slog.Logger
}

type UserOption func(*UserService)

// WithHasher replaces the default bcrypt hasher, e.g. with a cheaper cost in tests.
func WithHasher(h *password.Hasher) UserOption {
	return func(s *UserService) {
		if h != nil {
			s.hasher = h
		}
	}
}

func WithUserLogger(l *slog.Logger) UserOption {
	return func(s *UserService) {
		if l != nil {
			s.log = l
		}
	}
}

func NewUserService(users UserStore, opts ...UserOption) *UserService {
	s := &UserService{
		users:  users,
		hasher: password.NewHasher(password.DefaultCost),
		log:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup validates in and creates a regular user.
// Duplicate emails and usernames fail with ErrEmailTaken and ErrUsernameTaken.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*User, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.CreateUser(ctx, User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		// Lost a race with a concurrent signup.
		if db.IsUniqueViolation(err) {
			switch db.ConstraintName(err) {
			case "users_email_key":
				return nil, ErrEmailTaken
			case "users_username_key":
				return nil, ErrUsernameTaken
			}
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "user signed up",
		slog.Int64("user_id", u.ID),
		slog.String("username", u.Username),
	)
	return &u, nil
}

func (s *UserService) ensureFree(ctx context.Context, in SignupInput) error {
	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return ErrEmailTaken
	} else if !db.IsNotFound(err) {
		return err
	}

	if _, err := s.users.GetUserByUsername(ctx, in.Username); err == nil {
		return ErrUsernameTaken
	} else if !db.IsNotFound(err) {
		return err
	}
	return nil
}

// Authenticate returns the user with the given credentials.
// Unknown emails and wrong passwords both fail with ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, in LoginInput) (*User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserService) ByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (s *UserService) ByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}
