// Package service implements the user registry: validation, id assignment,
// update merging and friendship management on top of the in-memory store.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"filmorate/internal/platform/metrics"
	"filmorate/internal/user/models"
	"filmorate/pkg/domain"
	dErrors "filmorate/pkg/domain-errors"
	"filmorate/pkg/platform/sentinel"
	"filmorate/pkg/requestcontext"
)

// Store is the persistence contract the service needs. Satisfied by
// store.InMemoryUserStore.
type Store interface {
	List(ctx context.Context) []*models.User
	Create(ctx context.Context, u *models.User) *models.User
	Get(ctx context.Context, id domain.UserID) (*models.User, error)
	Update(ctx context.Context, u *models.User) (*models.User, error)
	AddFriend(ctx context.Context, userID, friendID domain.UserID) error
	RemoveFriend(ctx context.Context, userID, friendID domain.UserID) error
	Friends(ctx context.Context, userID domain.UserID) ([]*models.User, error)
}

// Service orchestrates user operations.
type Service struct {
	store   Store
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

// New constructs the user service.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all users.
func (s *Service) List(ctx context.Context) []*models.User {
	return s.store.List(ctx)
}

// Create validates the request, applies the default-name rule and stores the
// user with a freshly assigned id.
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := req.Validate(requestcontext.Now(ctx)); err != nil {
		return nil, err
	}

	created := s.store.Create(ctx, req.ToUser())

	s.logger.InfoContext(ctx, "created user", "user_id", created.ID, "name", created.Name)
	if s.metrics != nil {
		s.metrics.UsersCreated.Inc()
	}
	return created, nil
}

// Update merges the patch into the stored user. Fields the patch leaves
// unset keep their stored values; an unknown or missing id is a not-found.
func (s *Service) Update(ctx context.Context, req *models.UpdateUserRequest) (*models.User, error) {
	if req.ID == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "user id must be provided")
	}
	if err := req.Validate(requestcontext.Now(ctx)); err != nil {
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

	s.logger.InfoContext(ctx, "updated user", "user_id", updated.ID, "name", updated.Name)
	return updated, nil
}

// AddFriend creates the symmetric friendship edge.
func (s *Service) AddFriend(ctx context.Context, userID, friendID domain.UserID) error {
	if err := s.store.AddFriend(ctx, userID, friendID); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Newf(dErrors.CodeValidation, "users %d and %d are already friends", userID, friendID)
		}
		return s.translate(err)
	}

	s.logger.InfoContext(ctx, "added friend", "user_id", userID, "friend_id", friendID)
	if s.metrics != nil {
		s.metrics.FriendshipsForged.Inc()
	}
	return nil
}

// RemoveFriend removes the edge from both sides. Removing an edge that never
// existed is deliberately a no-op.
func (s *Service) RemoveFriend(ctx context.Context, userID, friendID domain.UserID) error {
	if err := s.store.RemoveFriend(ctx, userID, friendID); err != nil {
		return s.translate(err)
	}

	s.logger.InfoContext(ctx, "removed friend", "user_id", userID, "friend_id", friendID)
	return nil
}

// Friends returns the resolved friends of a user.
func (s *Service) Friends(ctx context.Context, userID domain.UserID) ([]*models.User, error) {
	friends, err := s.store.Friends(ctx, userID)
	if err != nil {
		return nil, s.translate(err)
	}
	return friends, nil
}

// MutualFriends intersects the friend sets of two users. Unlike Friends it
// tolerates missing users and reports an empty result instead of failing.
func (s *Service) MutualFriends(ctx context.Context, userID, otherID domain.UserID) ([]*models.User, error) {
	own, err := s.store.Friends(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return []*models.User{}, nil
		}
		return nil, s.translate(err)
	}
	others, err := s.store.Friends(ctx, otherID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return []*models.User{}, nil
		}
		return nil, s.translate(err)
	}

	otherIDs := domain.UserIDSet{}
	for _, friend := range others {
		otherIDs.Add(friend.ID)
	}

	mutual := make([]*models.User, 0)
	for _, friend := range own {
		if otherIDs.Has(friend.ID) {
			mutual = append(mutual, friend)
		}
	}
	return mutual, nil
}

// Exists reports whether the user id is registered. The film service uses it
// to verify likers.
func (s *Service) Exists(ctx context.Context, id domain.UserID) bool {
	_, err := s.store.Get(ctx, id)
	return err == nil
}

func (s *Service) translate(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "user does not exist")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "user store failure")
}
