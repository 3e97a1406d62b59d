package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"exerciseTracker/internal/db"
	"exerciseTracker/models"
)

type UserRepository struct {
	db *db.Store
}

func NewUserRepository(d *db.Store) *UserRepository {
	return &UserRepository{db: d}
}

// Create inserts a new user with the given username and returns it with its generated ID.
// A username that already exists yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`INSERT INTO users (username) VALUES (?) RETURNING id`), username).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create user %q: %w", username, ErrDuplicate)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &models.User{ID: id, Username: username}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT id, username FROM users WHERE id = ?`), id).Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT id, username FROM users WHERE username = ?`), username).Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &u, nil
}

// List returns every user in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, username FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
