// Package store owns the in-memory film collection and its like sets.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"filmorate/internal/film/models"
	"filmorate/pkg/domain"
	"filmorate/pkg/identity"
	"filmorate/pkg/platform/sentinel"
)

// InMemoryFilmStore maps film ids to films. Like-set updates and the derived
// like count change together under one lock, so readers never see them
// disagree. All returned values are clones.
type InMemoryFilmStore struct {
	mu    sync.RWMutex
	films map[domain.FilmID]*models.Film
	ids   identity.Allocator
}

// NewInMemoryFilmStore returns an empty store.
func NewInMemoryFilmStore() *InMemoryFilmStore {
	return &InMemoryFilmStore{films: make(map[domain.FilmID]*models.Film)}
}

// List returns a snapshot of all films in ascending id order.
func (s *InMemoryFilmStore) List(_ context.Context) []*models.Film {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Create assigns the next id and stores the film with an empty like set.
func (s *InMemoryFilmStore) Create(_ context.Context, f *models.Film) *models.Film {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := f.Clone()
	stored.ID = domain.FilmID(s.ids.NextID())
	if stored.LikedBy == nil {
		stored.LikedBy = domain.UserIDSet{}
	}
	stored.Likes = len(stored.LikedBy)
	s.films[stored.ID] = stored
	return stored.Clone()
}

// Get returns the film with the given id, or sentinel.ErrNotFound.
func (s *InMemoryFilmStore) Get(_ context.Context, id domain.FilmID) (*models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.films[id]
	if !ok {
		return nil, fmt.Errorf("film %d: %w", id, sentinel.ErrNotFound)
	}
	return f.Clone(), nil
}

// Update replaces the descriptive fields of an existing film. The like set
// and its count are owned by the store and survive the update untouched.
func (s *InMemoryFilmStore) Update(_ context.Context, f *models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.films[f.ID]
	if !ok {
		return nil, fmt.Errorf("film %d: %w", f.ID, sentinel.ErrNotFound)
	}

	upd := f.Clone()
	upd.LikedBy = stored.LikedBy
	upd.Likes = stored.Likes
	s.films[upd.ID] = upd
	return upd.Clone(), nil
}

// AddLike records that userID liked the film. A second like from the same
// user fails with sentinel.ErrConflict and changes nothing.
func (s *InMemoryFilmStore) AddLike(_ context.Context, filmID domain.FilmID, userID domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	film, ok := s.films[filmID]
	if !ok {
		return fmt.Errorf("film %d: %w", filmID, sentinel.ErrNotFound)
	}
	if !film.LikedBy.Add(userID) {
		return fmt.Errorf("user %d already liked film %d: %w", userID, filmID, sentinel.ErrConflict)
	}
	film.Likes++
	return nil
}

// RemoveLike withdraws a like. Removing a like that was never placed fails
// with sentinel.ErrInvalidState.
func (s *InMemoryFilmStore) RemoveLike(_ context.Context, filmID domain.FilmID, userID domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	film, ok := s.films[filmID]
	if !ok {
		return fmt.Errorf("film %d: %w", filmID, sentinel.ErrNotFound)
	}
	if !film.LikedBy.Remove(userID) {
		return fmt.Errorf("user %d has no like on film %d: %w", userID, filmID, sentinel.ErrInvalidState)
	}
	film.Likes--
	return nil
}

// Popular returns at most count films ordered by descending like count.
// The sort is stable over the ascending-id snapshot, so ties always break
// toward the lower id.
func (s *InMemoryFilmStore) Popular(_ context.Context, count int) []*models.Film {
	s.mu.RLock()
	films := s.snapshot()
	s.mu.RUnlock()

	sort.SliceStable(films, func(i, j int) bool { return films[i].Likes > films[j].Likes })
	if count < len(films) {
		films = films[:count]
	}
	return films
}

// snapshot clones all films in ascending id order; callers hold the lock.
func (s *InMemoryFilmStore) snapshot() []*models.Film {
	out := make([]*models.Film, 0, len(s.films))
	for _, f := range s.films {
		out = append(out, f.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
