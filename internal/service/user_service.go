// Package service holds the account business rules: registration
// uniqueness, credential verification and update semantics. It sits
// between the HTTP handlers and the repository and owns all input
// validation, so malformed requests never reach the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/marslanding/backend/internal/auth"
	"github.com/marslanding/backend/internal/model"
	"github.com/marslanding/backend/internal/repository"
)

var (
	// ErrValidation marks malformed input. Non-retryable, caller's fault.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials is returned for both "unknown email" and
	// "wrong password" so the response never reveals whether an email
	// is registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Users is the slice of the repository the service consumes.
type Users interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Insert(ctx context.Context, u *model.User) (*model.User, error)
	UpdateFields(ctx context.Context, id string, patch repository.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, skip, limit int64) ([]model.User, error)
}

// UserUpdate carries a partial self-update. Nil fields stay unchanged.
// Password is raw here; the service hashes it before anything below
// this layer sees it.
type UserUpdate struct {
	Email    *string
	FullName *string
	Password *string
	IsActive *bool
}

// UserService implements the account business rules.
type UserService struct {
	users  Users
	hasher *auth.Hasher

	// dummyHash is verified against when the email is unknown, so the
	// latency of "unknown email" tracks that of "wrong password".
	dummyHash string
}

// NewUserService builds a UserService over the given repository and
// hasher.
func NewUserService(users Users, hasher *auth.Hasher) (*UserService, error) {
	dummy, err := hasher.Hash("credential-padding-only")
	if err != nil {
		return nil, fmt.Errorf("init dummy digest: %w", err)
	}
	return &UserService{users: users, hasher: hasher, dummyHash: dummy}, nil
}

// Register creates a new active, non-superuser account. The email
// pre-check gives a friendly error in the common case; the collection's
// unique index closes the race when two registrations collide, and
// both paths surface the same ErrEmailExists.
func (s *UserService) Register(ctx context.Context, email, fullName, password string) (*model.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, repository.ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.users.Insert(ctx, &model.User{
		Email:          email,
		FullName:       fullName,
		HashedPassword: hash,
		IsActive:       true,
		IsSuperuser:    false,
	})
}

// Authenticate verifies credentials and returns the account. Unknown
// email and wrong password are indistinguishable: same error, and a
// bcrypt comparison runs in both cases.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Update applies a partial update to an account. A new password is
// validated and hashed here so the raw value never reaches the
// repository or the store.
func (s *UserService) Update(ctx context.Context, id string, in UserUpdate) (*model.User, error) {
	patch := repository.UserPatch{
		FullName: in.FullName,
		IsActive: in.IsActive,
	}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return nil, err
		}
		patch.Email = in.Email
	}
	if in.FullName != nil {
		if err := validateFullName(*in.FullName); err != nil {
			return nil, err
		}
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.HashedPassword = &hash
	}
	return s.users.UpdateFields(ctx, id, patch)
}

// GetByID returns a single account.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

// List returns a page of accounts. Limit defaults to 100 and is capped
// there; skip below zero is treated as zero.
func (s *UserService) List(ctx context.Context, skip, limit int64) ([]model.User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.users.List(ctx, skip, limit)
}

// Delete removes an account; reports whether anything was deleted.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	return s.users.Delete(ctx, id)
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: malformed email", ErrValidation)
	}
	return nil
}

func validateFullName(name string) error {
	if len(name) < 1 || len(name) > 100 {
		return fmt.Errorf("%w: full_name length must be in [1,100]", ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 100 {
		return fmt.Errorf("%w: password length must be in [8,100]", ErrValidation)
	}
	return nil
}
