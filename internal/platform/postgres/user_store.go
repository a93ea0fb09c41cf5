package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// Unique constraint names from the users table DDL, used to tell a username
// collision from an email collision.
const (
	usersUsernameConstraint = "users_username_key"
	usersEmailConstraint    = "users_email_key"
)

const userColumns = `id, username, email, password, name, role, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUser implements store.UserStore.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.Pool.QueryRow(ctx, q, id))
}

// GetUserByUsername implements store.UserStore.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(s.db.Pool.QueryRow(ctx, q, username))
}

// GetUserByEmail implements store.UserStore.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.db.Pool.QueryRow(ctx, q, email))
}

// CreateUser implements store.UserStore. Uniqueness is enforced by the
// database constraints, not a pre-check, so concurrent duplicate requests
// cannot race past each other.
func (s *Store) CreateUser(ctx context.Context, in *domain.InsertUser) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	const q = `
INSERT INTO users (username, email, password, name, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	u := domain.User{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Role:     in.RoleOrDefault(),
	}
	err := s.db.Pool.QueryRow(ctx, q, u.Username, u.Email, u.Password, u.Name, u.Role).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, usersUsernameConstraint):
			return nil, store.ErrUsernameExists
		case isUniqueViolation(err, usersEmailConstraint):
			return nil, store.ErrEmailExists
		case isUniqueViolation(err, ""):
			return nil, store.ErrDuplicate
		}
		s.logger.Error("failed to create user", slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("user created",
		slog.Int64("user_id", u.ID),
		slog.String("role", u.Role))
	return &u, nil
}
