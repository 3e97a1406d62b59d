package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exerciseTracker/internal/db"
	"exerciseTracker/models"
)

// ExerciseRepository stores logged exercises.
type ExerciseRepository struct {
	db *db.Store
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(d *db.Store) *ExerciseRepository {
	return &ExerciseRepository{db: d}
}

// Create inserts e and returns a copy carrying the generated ID.
// The caller is expected to have checked that e.UserID exists.
func (r *ExerciseRepository) Create(ctx context.Context, e *models.Exercise) (*models.Exercise, error) {
	if e == nil {
		return nil, errors.New("exercise is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out := *e
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`INSERT INTO exercises (user_id, description, duration, date) VALUES (?,?,?,?) RETURNING id`),
		e.UserID, e.Description, e.Duration, e.Date).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return &out, nil
}
