package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"timetrack/internal/app/server/crypto"
	"timetrack/internal/utils/logger"
)

type Servicer interface {
	List(ctx context.Context) ([]User, error)
	Find(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, req CreateRequest) (User, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Authenticate(ctx context.Context, email, password string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With(slog.String("component", "user_service")),
	}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// Create hashes the password with a fresh salt and stores the account.
func (s *Service) Create(ctx context.Context, req CreateRequest) (User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.ValidateCreate(req); err != nil {
		s.log.Debug("validation failed", slog.String("email", req.Email), logger.Err(err))
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	creds, err := crypto.HashPassword(req.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:        uuid.New(),
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  creds.Hash,
		Salt:      creds.Salt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user created", slog.String("user_id", u.ID.String()))
	return u, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (User, error) {
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if err := s.validator.ValidatePatch(patch); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var creds *crypto.Credentials
	if patch.Password != nil {
		c, err := crypto.HashPassword(*patch.Password)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		creds = &c
	}

	u, err := s.repo.Update(ctx, id, func(u *User) error {
		if patch.UserName != nil {
			u.UserName = *patch.UserName
		}
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if creds != nil {
			u.Password = creds.Hash
			u.Salt = creds.Salt
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return User{}, ErrNotFound
		case errors.Is(err, ErrEmailTaken):
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("user updated", slog.String("user_id", id.String()), slog.Bool("password_changed", creds != nil))
	return u, nil
}

// Delete removes the user; categories and time entries go with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// Authenticate returns ErrNotFound for an unknown email and
// ErrInvalidCredentials for a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user by email: %w", err)
	}

	if !crypto.VerifyHex(password, crypto.Credentials{Hash: u.Password, Salt: u.Salt}) {
		s.log.Debug("password mismatch", slog.String("user_id", u.ID.String()))
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
