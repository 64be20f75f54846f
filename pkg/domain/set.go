package domain

import (
	"encoding/json"
	"sort"
)

// UserIDSet is a set of user ids used for friend edges and film likes.
// It marshals as a sorted JSON array so responses are deterministic.
type UserIDSet map[UserID]struct{}

// NewUserIDSet builds a set from the given ids.
func NewUserIDSet(ids ...UserID) UserIDSet {
	s := make(UserIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s UserIDSet) Has(id UserID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether it was absent before.
func (s UserIDSet) Add(id UserID) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove deletes id and reports whether it was present.
func (s UserIDSet) Remove(id UserID) bool {
	if !s.Has(id) {
		return false
	}
	delete(s, id)
	return true
}

// Clone returns an independent copy. A nil receiver yields an empty set so
// cloned entities can be mutated safely.
func (s UserIDSet) Clone() UserIDSet {
	out := make(UserIDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the members in ascending order.
func (s UserIDSet) Sorted() []UserID {
	ids := make([]UserID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MarshalJSON implements json.Marshaler.
func (s UserIDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *UserIDSet) UnmarshalJSON(data []byte) error {
	var ids []UserID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewUserIDSet(ids...)
	return nil
}
