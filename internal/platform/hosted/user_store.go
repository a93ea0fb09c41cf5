package hosted

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// getUser is the shared hosted lookup for the three user getters.
func (s *Store) getUser(ctx context.Context, filter string, v any) (*domain.User, error) {
	var row userRow
	if err := s.client.GetOne(ctx, "users", eq(filter, v), &row); err != nil {
		if IsNotFound(err) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// GetUser implements store.UserStore.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return withFallback(ctx, s.logger, "GetUser",
		func(ctx context.Context) (*domain.User, error) { return s.getUser(ctx, "id", id) },
		func(ctx context.Context) (*domain.User, error) { return s.relational.GetUser(ctx, id) })
}

// GetUserByUsername implements store.UserStore.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return withFallback(ctx, s.logger, "GetUserByUsername",
		func(ctx context.Context) (*domain.User, error) { return s.getUser(ctx, "username", username) },
		func(ctx context.Context) (*domain.User, error) {
			return s.relational.GetUserByUsername(ctx, username)
		})
}

// GetUserByEmail implements store.UserStore.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return withFallback(ctx, s.logger, "GetUserByEmail",
		func(ctx context.Context) (*domain.User, error) { return s.getUser(ctx, "email", email) },
		func(ctx context.Context) (*domain.User, error) {
			return s.relational.GetUserByEmail(ctx, email)
		})
}

// CreateUser implements store.UserStore.
func (s *Store) CreateUser(ctx context.Context, in *domain.InsertUser) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	return withFallback(ctx, s.logger, "CreateUser",
		func(ctx context.Context) (*domain.User, error) { return s.createUserHosted(ctx, in) },
		func(ctx context.Context) (*domain.User, error) { return s.createUserRelational(ctx, in) })
}

func (s *Store) createUserHosted(ctx context.Context, in *domain.InsertUser) (*domain.User, error) {
	payload := map[string]any{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
		"name":     in.Name,
		"role":     in.RoleOrDefault(),
	}
	var row userRow
	if err := s.client.Post(ctx, "users", payload, &row); err != nil {
		switch {
		case isConflict(err, "users_username_key"):
			return nil, store.ErrUsernameExists
		case isConflict(err, "users_email_key"):
			return nil, store.ErrEmailExists
		case isConflict(err, ""):
			return nil, store.ErrDuplicate
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// createUserRelational bypasses the sequence and picks max(id)+1 explicitly.
// The hosted service assigns ids from its own counter, so the local sequence
// can lag behind rows written through the service; a sequence-assigned id
// could then collide with a hosted-assigned one.
func (s *Store) createUserRelational(ctx context.Context, in *domain.InsertUser) (*domain.User, error) {
	const q = `
INSERT INTO users (id, username, email, password, name, role)
SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5 FROM users
RETURNING id, created_at`

	u := domain.User{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Role:     in.RoleOrDefault(),
	}
	err := s.relational.DB().Pool.QueryRow(ctx, q, u.Username, u.Email, u.Password, u.Name, u.Role).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return nil, store.ErrUsernameExists
			case "users_email_key":
				return nil, store.ErrEmailExists
			}
			return nil, store.ErrDuplicate
		}
		return nil, err
	}
	return &u, nil
}
