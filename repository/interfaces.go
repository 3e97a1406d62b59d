package repository

import (
	"context"

	"exerciseTracker/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// ExerciseRepositoryI defines operations on Exercise entities.
type ExerciseRepositoryI interface {
	Create(ctx context.Context, e *models.Exercise) (*models.Exercise, error)
	CountLog(ctx context.Context, f LogFilter) (int64, error)
	ListLog(ctx context.Context, f LogFilter) ([]models.Exercise, error)
}
