package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/alfanumrik/ent"
	"github.com/abhisek/alfanumrik/ent/user"
)

// User is a stored account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Grade        string
	AvatarURL    string
	CreatedAt    time.Time
}

// NewUser holds the fields required to create an account.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	Grade        string
	AvatarURL    string
}

// UserRepo manages accounts. Email lookups are case-insensitive because
// emails are normalised before they are written.
type UserRepo interface {
	// CreateUser stores a new account. Returns ErrDuplicate when the email
	// is already registered.
	CreateUser(ctx context.Context, u NewUser) (*User, error)

	// UserByEmail returns the account or ErrNotFound.
	UserByEmail(ctx context.Context, email string) (*User, error)

	// UserByID returns the account or ErrNotFound.
	UserByID(ctx context.Context, id int64) (*User, error)
}

// userRepo implements UserRepo using the ent client.
type userRepo struct {
	client *ent.Client
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepo) CreateUser(ctx context.Context, u NewUser) (*User, error) {
	row, err := r.client.User.Create().
		SetName(strings.TrimSpace(u.Name)).
		SetEmail(NormalizeEmail(u.Email)).
		SetPasswordHash(u.PasswordHash).
		SetGrade(u.Grade).
		SetAvatarURL(u.AvatarURL).
		Save(ctx)
	if err != nil {
		if ent.IsConstraintError(err) {
			return nil, fmt.Errorf("create user: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return toUser(row), nil
}

func (r *userRepo) UserByEmail(ctx context.Context, email string) (*User, error) {
	row, err := r.client.User.Query().
		Where(user.Email(NormalizeEmail(email))).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return toUser(row), nil
}

func (r *userRepo) UserByID(ctx context.Context, id int64) (*User, error) {
	row, err := r.client.User.Get(ctx, int(id))
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return toUser(row), nil
}

func toUser(row *ent.User) *User {
	return &User{
		ID:           int64(row.ID),
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Grade:        row.Grade,
		AvatarURL:    row.AvatarURL,
		CreatedAt:    row.CreatedAt,
	}
}
