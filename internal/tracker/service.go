// Package tracker implements the user and exercise-log operations on top of
// the repositories: input validation, existence checks and response shaping.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"exerciseTracker/internal/validate"
	"exerciseTracker/models"
	"exerciseTracker/repository"
)

const (
	msgUsernameTaken = "Username already exists"
	msgNoUsers       = "No users found"
	msgUserNotFound  = "User not found"
	msgInvalidFrom   = "Invalid from date. Please enter YYYY-MM-DD date format."
	msgInvalidTo     = "Invalid to date. Please enter YYYY-MM-DD date format."
	msgDatabase      = "Database error"
	msgCreateUser    = "Error creating user"
	msgAddExercise   = "Error adding exercise. Please try again!"
)

// Service bundles the repositories behind the four API operations.
type Service struct {
	users     repository.UserRepositoryI
	exercises repository.ExerciseRepositoryI
	now       func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the clock used for the default exercise date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service.
func New(users repository.UserRepositoryI, exercises repository.ExerciseRepositoryI, opts ...Option) *Service {
	s := &Service{users: users, exercises: exercises, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExerciseInput is the raw, not yet validated body of an add-exercise request.
// Description and Duration keep their decoded JSON type so non-strings and
// numeric strings can be told apart.
type ExerciseInput struct {
	Description any
	Duration    any
	Date        string
}

// LogQuery holds the raw query-string bounds of a log request. Empty means absent.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// CreateUser stores the trimmed username and echoes the username exactly as given.
func (s *Service) CreateUser(ctx context.Context, username string) (*models.User, error) {
	trimmed, err := validate.Username(username)
	if err != nil {
		return nil, invalidInput(err.Error(), err)
	}

	existing, err := s.users.GetByUsername(ctx, trimmed)
	if err != nil {
		log.Error().Err(err).Str("username", trimmed).Msg("Failed to look up username")
		return nil, storage(msgDatabase, err)
	}
	if existing != nil {
		return nil, conflict(msgUsernameTaken, nil)
	}

	u, err := s.users.Create(ctx, trimmed)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict(msgUsernameTaken, err)
		}
		log.Error().Err(err).Str("username", trimmed).Msg("Failed to create user")
		return nil, storage(msgCreateUser, err)
	}
	log.Debug().Int64("user_id", u.ID).Str("username", trimmed).Msg("User created")
	return &models.User{ID: u.ID, Username: username}, nil
}

// ListUsers returns every user in insertion order. An empty store is NotFound.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	list, err := s.users.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return nil, storage(msgDatabase, err)
	}
	if len(list) == 0 {
		return nil, notFound(msgNoUsers)
	}
	return list, nil
}

// AddExercise validates the input, defaults the date to today (UTC) and stores
// the exercise for an existing user.
func (s *Service) AddExercise(ctx context.Context, userID int64, in ExerciseInput) (*models.Exercise, error) {
	description, err := validate.Description(in.Description)
	if err != nil {
		return nil, invalidInput(err.Error(), err)
	}
	duration, err := validate.Duration(in.Duration)
	if err != nil {
		return nil, invalidInput(err.Error(), err)
	}
	date := in.Date
	if date == "" {
		date = validate.Today(s.now())
	}
	if err := validate.Date(date); err != nil {
		return nil, invalidInput(err.Error(), err)
	}

	u, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	e, err := s.exercises.Create(ctx, &models.Exercise{
		UserID:      u.ID,
		Description: description,
		Duration:    duration,
		Date:        date,
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", u.ID).Msg("Failed to add exercise")
		return nil, storage(msgAddExercise, err)
	}
	return e, nil
}

// GetLog returns the user's exercises between the optional inclusive bounds,
// oldest first, capped by the optional limit. Count ignores the limit.
func (s *Service) GetLog(ctx context.Context, userID int64, q LogQuery) (*models.Log, error) {
	u, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := repository.LogFilter{UserID: u.ID}
	if q.From != "" {
		if err := validate.Date(q.From); err != nil {
			return nil, invalidInput(msgInvalidFrom, err)
		}
		from := q.From
		f.From = &from
	}
	if q.To != "" {
		if err := validate.Date(q.To); err != nil {
			return nil, invalidInput(msgInvalidTo, err)
		}
		to := q.To
		f.To = &to
	}
	limit, err := validate.Limit(q.Limit)
	if err != nil {
		return nil, invalidInput(err.Error(), err)
	}
	f.Limit = limit

	count, err := s.exercises.CountLog(ctx, f)
	if err != nil {
		log.Error().Err(err).Int64("user_id", u.ID).Msg("Failed to count exercises")
		return nil, storage(msgDatabase, err)
	}
	list, err := s.exercises.ListLog(ctx, f)
	if err != nil {
		log.Error().Err(err).Int64("user_id", u.ID).Msg("Failed to list exercises")
		return nil, storage(msgDatabase, err)
	}

	entries := make([]models.LogEntry, 0, len(list))
	for _, e := range list {
		entries = append(entries, e.Entry())
	}
	return &models.Log{ID: u.ID, Username: u.Username, Count: count, Entries: entries}, nil
}

func (s *Service) lookupUser(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to look up user")
		return nil, storage(msgDatabase, err)
	}
	if u == nil {
		return nil, notFound(msgUserNotFound)
	}
	return u, nil
}
