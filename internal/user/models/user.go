package models

import (
	"filmorate/pkg/domain"
)

// User is a registered account. Friends holds the ids of befriended users;
// the relation is symmetric and maintained exclusively by the user store.
type User struct {
	ID       domain.UserID    `json:"id"`
	Email    string           `json:"email"`
	Login    string           `json:"login"`
	Name     string           `json:"name"`
	Birthday *domain.Date     `json:"birthday,omitempty"`
	Friends  domain.UserIDSet `json:"friends"`
}

// Clone returns an independent copy, including the friend set, so store
// snapshots can be handed out without exposing internal state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Birthday != nil {
		b := *u.Birthday
		c.Birthday = &b
	}
	c.Friends = u.Friends.Clone()
	return &c
}
