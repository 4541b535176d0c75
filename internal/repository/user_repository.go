package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/marslanding/backend/internal/model"
	"github.com/marslanding/backend/internal/store"
)

// UserPatch enumerates exactly the mutable account fields. Nil means
// "leave unchanged". The password arrives already hashed; raw
// passwords never reach this layer.
type UserPatch struct {
	Email          *string
	FullName       *string
	HashedPassword *string
	IsActive       *bool
}

// UserRepo provides account CRUD over an injected document store.
type UserRepo struct {
	store store.Store
}

// NewUserRepo returns a UserRepo backed by s.
func NewUserRepo(s store.Store) *UserRepo { return &UserRepo{store: s} }

// FindByID fetches an account by its opaque identifier.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.store.FindOne(ctx, store.Filter{"_id": id}, &u); err != nil {
		if errors.Is(err, store.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches an account by email. Emails are stored lowercase,
// so normalizing the input makes the match case-insensitive.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.store.FindOne(ctx, store.Filter{"email": NormalizeEmail(email)}, &u); err != nil {
		if errors.Is(err, store.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Insert stores a new account and returns it with the generated id and
// timestamps filled in. A unique-index violation surfaces as
// ErrEmailExists regardless of any pre-check the caller ran.
func (r *UserRepo) Insert(ctx context.Context, u *model.User) (*model.User, error) {
	now := time.Now().UTC()
	u.Email = NormalizeEmail(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now

	id, err := r.store.InsertOne(ctx, u)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// UpdateFields applies a partial update. Only fields set on the patch
// are written; updated_at is refreshed on every successful update.
// Returns ErrNotFound when no account has the given id.
func (r *UserRepo) UpdateFields(ctx context.Context, id string, patch UserPatch) (*model.User, error) {
	set := store.Fields{"updated_at": time.Now().UTC()}
	if patch.Email != nil {
		set["email"] = NormalizeEmail(*patch.Email)
	}
	if patch.FullName != nil {
		set["full_name"] = *patch.FullName
	}
	if patch.HashedPassword != nil {
		set["hashed_password"] = *patch.HashedPassword
	}
	if patch.IsActive != nil {
		set["is_active"] = *patch.IsActive
	}

	matched, err := r.store.UpdateOne(ctx, store.Filter{"_id": id}, set)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		if errors.Is(err, store.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if matched == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes an account. Deleting a missing id is not an error;
// the boolean reports whether anything was removed.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.store.DeleteOne(ctx, store.Filter{"_id": id})
	if err != nil {
		if errors.Is(err, store.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return deleted > 0, nil
}

// List returns a stable page of accounts.
func (r *UserRepo) List(ctx context.Context, skip, limit int64) ([]model.User, error) {
	var users []model.User
	if err := r.store.Find(ctx, store.Filter{}, skip, limit, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
