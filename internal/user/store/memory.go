// Package store owns the in-memory user collection. It is the single writer
// for users and their friend edges; every compound update happens under one
// lock so readers never observe a half-applied friendship.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"filmorate/internal/user/models"
	"filmorate/pkg/domain"
	"filmorate/pkg/identity"
	"filmorate/pkg/platform/sentinel"
)

// InMemoryUserStore maps user ids to users. All returned values are clones;
// callers cannot mutate stored state.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[domain.UserID]*models.User
	ids   identity.Allocator
}

// NewInMemoryUserStore returns an empty store.
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[domain.UserID]*models.User)}
}

// List returns a snapshot of all users in ascending id order.
func (s *InMemoryUserStore) List(_ context.Context) []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create assigns the next id and stores the user. Ids are never reused.
func (s *InMemoryUserStore) Create(_ context.Context, u *models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := u.Clone()
	stored.ID = domain.UserID(s.ids.NextID())
	if stored.Friends == nil {
		stored.Friends = domain.UserIDSet{}
	}
	s.users[stored.ID] = stored
	return stored.Clone()
}

// Get returns the user with the given id, or sentinel.ErrNotFound.
func (s *InMemoryUserStore) Get(_ context.Context, id domain.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, sentinel.ErrNotFound)
	}
	return u.Clone(), nil
}

// Update replaces the profile fields of an existing user. Friend edges are
// owned by the store and survive the update untouched.
func (s *InMemoryUserStore) Update(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[u.ID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", u.ID, sentinel.ErrNotFound)
	}

	upd := u.Clone()
	upd.Friends = stored.Friends
	s.users[upd.ID] = upd
	return upd.Clone(), nil
}

// AddFriend inserts the friendship edge symmetrically. It fails with
// sentinel.ErrNotFound if either user is missing and sentinel.ErrConflict if
// the edge already exists; nothing is written on failure.
func (s *InMemoryUserStore) AddFriend(_ context.Context, userID, friendID domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, friend, err := s.pair(userID, friendID)
	if err != nil {
		return err
	}
	if user.Friends.Has(friendID) {
		return fmt.Errorf("users %d and %d are already friends: %w", userID, friendID, sentinel.ErrConflict)
	}

	user.Friends.Add(friendID)
	friend.Friends.Add(userID)
	return nil
}

// RemoveFriend removes the edge from both sides. Removing an edge that does
// not exist is a no-op; both users must still exist.
func (s *InMemoryUserStore) RemoveFriend(_ context.Context, userID, friendID domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, friend, err := s.pair(userID, friendID)
	if err != nil {
		return err
	}

	user.Friends.Remove(friendID)
	friend.Friends.Remove(userID)
	return nil
}

// Friends resolves the friend set of a user into user snapshots, in ascending
// id order. Ids that no longer resolve are dropped silently.
func (s *InMemoryUserStore) Friends(_ context.Context, userID domain.UserID) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, sentinel.ErrNotFound)
	}

	out := make([]*models.User, 0, len(user.Friends))
	for _, id := range user.Friends.Sorted() {
		if friend, ok := s.users[id]; ok {
			out = append(out, friend.Clone())
		}
	}
	return out, nil
}

// pair looks up both ends of an edge; callers hold the write lock.
func (s *InMemoryUserStore) pair(userID, friendID domain.UserID) (*models.User, *models.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, nil, fmt.Errorf("user %d: %w", userID, sentinel.ErrNotFound)
	}
	friend, ok := s.users[friendID]
	if !ok {
		return nil, nil, fmt.Errorf("user %d: %w", friendID, sentinel.ErrNotFound)
	}
	return user, friend, nil
}
