package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"exerciseTracker/internal/config"
	"exerciseTracker/internal/tracker"
	"exerciseTracker/models"
)

// Tracker is the set of operations the API exposes.
type Tracker interface {
	CreateUser(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	AddExercise(ctx context.Context, userID int64, in tracker.ExerciseInput) (*models.Exercise, error)
	GetLog(ctx context.Context, userID int64, q tracker.LogQuery) (*models.Log, error)
}

// NewRouter builds the REST API. Unknown routes and methods answer 404 with a JSON body.
func NewRouter(svc Tracker) http.Handler {
	h := &Handlers{svc: svc}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(Recoverer)
	r.Use(Logger)
	r.Use(CORS())
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Post("/{id}/exercises", h.AddExercise)
		r.Get("/{id}/logs", h.GetLog)
	})
	return r
}

// Start listens on cfg.HTTP.Address and serves the API in the background.
// It returns the bound address and a shutdown function.
func Start(cfg *config.Config, svc Tracker) (string, func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	lis, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		return "", nil, err
	}

	srv := &http.Server{
		Handler:           NewRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	return lis.Addr().String(), srv.Shutdown, nil
}
