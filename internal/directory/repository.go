package directory

import (
	"context"
	"errors"

	"github.com/business-nexus/nexus/internal/store"
)

const usersKey = "directory:users"

// ErrNotFound indicates no user matched the lookup.
var ErrNotFound = errors.New("user not found")

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	ListByRole(ctx context.Context, role string) ([]User, error)
}

// StoreRepository keeps the user list in a store collection, the same
// read-modify-write shape as the rest of the platform's state.
type StoreRepository struct {
	store store.Store
}

// NewStoreRepository builds a store-backed user repository.
func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{store: st}
}

// Create appends a new user. Emails are unique.
func (r *StoreRepository) Create(ctx context.Context, user User) error {
	users, err := r.readUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == user.Email {
			return errors.New("user exists")
		}
	}
	users = append(users, user)
	return r.store.Write(ctx, usersKey, users)
}

// FindByID fetches a user by identifier.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (User, error) {
	users, err := r.readUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// FindByEmail fetches a user by email.
func (r *StoreRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	users, err := r.readUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// ListByRole returns every user carrying the role.
func (r *StoreRepository) ListByRole(ctx context.Context, role string) ([]User, error) {
	users, err := r.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := users[:0:0]
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *StoreRepository) readUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.store.Read(ctx, usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}
