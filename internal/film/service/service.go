// Package service implements the film registry: validation, id assignment,
// like management and the popularity ranking.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"filmorate/internal/film/models"
	"filmorate/internal/platform/metrics"
	"filmorate/pkg/domain"
	dErrors "filmorate/pkg/domain-errors"
	"filmorate/pkg/platform/sentinel"
)

// Store is the persistence contract the service needs. Satisfied by
// store.InMemoryFilmStore.
type Store interface {
	List(ctx context.Context) []*models.Film
	Create(ctx context.Context, f *models.Film) *models.Film
	Get(ctx context.Context, id domain.FilmID) (*models.Film, error)
	Update(ctx context.Context, f *models.Film) (*models.Film, error)
	AddLike(ctx context.Context, filmID domain.FilmID, userID domain.UserID) error
	RemoveLike(ctx context.Context, filmID domain.FilmID, userID domain.UserID) error
	Popular(ctx context.Context, count int) []*models.Film
}

// UserChecker verifies that a liking user actually exists. Satisfied by the
// user service.
type UserChecker interface {
	Exists(ctx context.Context, id domain.UserID) bool
}

// Service orchestrates film operations.
type Service struct {
	store   Store
	users   UserChecker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the film service.
func New(store Store, users UserChecker, opts ...Option) *Service {
	s := &Service{
		store:  store,
		users:  users,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all films.
func (s *Service) List(ctx context.Context) []*models.Film {
	return s.store.List(ctx)
}

// Create validates the request and stores the film with a fresh id and an
// empty like set.
func (s *Service) Create(ctx context.Context, req *models.CreateFilmRequest) (*models.Film, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created := s.store.Create(ctx, req.ToFilm())

	s.logger.InfoContext(ctx, "created film", "film_id", created.ID, "name", created.Name)
	if s.metrics != nil {
		s.metrics.FilmsCreated.Inc()
	}
	return created, nil
}

// Update merges the patch into the stored film. A blank name keeps the
// stored one; nil release date and description do likewise.
func (s *Service) Update(ctx context.Context, req *models.UpdateFilmRequest) (*models.Film, error) {
	if req.ID == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "film id must be provided")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.store.Get(ctx, *req.ID)
	if err != nil {
		return nil, s.translate(err)
	}

	req.Apply(stored)
	updated, err := s.store.Update(ctx, stored)
	if err != nil {
		return nil, s.translate(err)
	}

	s.logger.InfoContext(ctx, "updated film", "film_id", updated.ID, "name", updated.Name)
	return updated, nil
}

// AddLike records a like after verifying both the film and the user exist.
// A duplicate like is rejected, not silently ignored.
func (s *Service) AddLike(ctx context.Context, filmID domain.FilmID, userID domain.UserID) error {
	if !s.users.Exists(ctx, userID) {
		return dErrors.Newf(dErrors.CodeNotFound, "user %d does not exist", userID)
	}

	if err := s.store.AddLike(ctx, filmID, userID); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Newf(dErrors.CodeValidation, "user %d already liked film %d", userID, filmID)
		}
		return s.translate(err)
	}

	s.logger.InfoContext(ctx, "liked film", "film_id", filmID, "user_id", userID)
	if s.metrics != nil {
		s.metrics.LikesAdded.Inc()
	}
	return nil
}

// RemoveLike withdraws a like; withdrawing one that was never placed is a
// validation failure.
func (s *Service) RemoveLike(ctx context.Context, filmID domain.FilmID, userID domain.UserID) error {
	if !s.users.Exists(ctx, userID) {
		return dErrors.Newf(dErrors.CodeNotFound, "user %d does not exist", userID)
	}

	if err := s.store.RemoveLike(ctx, filmID, userID); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return dErrors.Newf(dErrors.CodeValidation, "user %d has not liked film %d", userID, filmID)
		}
		return s.translate(err)
	}

	s.logger.InfoContext(ctx, "unliked film", "film_id", filmID, "user_id", userID)
	return nil
}

// Popular returns at most count films by descending like count; ties break
// deterministically toward the lower id.
func (s *Service) Popular(ctx context.Context, count int) ([]*models.Film, error) {
	if count <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "count must be greater than zero")
	}
	return s.store.Popular(ctx, count), nil
}

func (s *Service) translate(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "film does not exist")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "film store failure")
}
