package models

import (
	"strings"
	"time"

	"filmorate/pkg/domain"
	dErrors "filmorate/pkg/domain-errors"
)

// CreateUserRequest carries the fields of a new user. Pointer fields
// distinguish "absent" from "set to empty", which matters for the
// name-defaults-to-login rule.
type CreateUserRequest struct {
	Email    *string      `json:"email"`
	Login    *string      `json:"login"`
	Name     *string      `json:"name"`
	Birthday *domain.Date `json:"birthday"`
}

// Validate runs all checks eagerly; an invalid request must leave the
// registry untouched, so nothing is mutated here.
func (r *CreateUserRequest) Validate(now time.Time) error {
	if err := validateEmail(deref(r.Email)); err != nil {
		return err
	}
	if err := validateLogin(deref(r.Login)); err != nil {
		return err
	}
	return validateBirthday(r.Birthday, now)
}

// ToUser builds the User to store, applying the default-name rule. The id is
// assigned by the store.
func (r *CreateUserRequest) ToUser() *User {
	login := deref(r.Login)
	return &User{
		Email:    deref(r.Email),
		Login:    login,
		Name:     resolveName(deref(r.Name), login),
		Birthday: r.Birthday,
		Friends:  domain.UserIDSet{},
	}
}

// UpdateUserRequest is a patch: nil fields keep the stored value. A blank
// name also keeps the stored value, matching the create-side rule that a
// blank name is "no name given".
type UpdateUserRequest struct {
	ID       *domain.UserID `json:"id"`
	Email    *string        `json:"email"`
	Login    *string        `json:"login"`
	Name     *string        `json:"name"`
	Birthday *domain.Date   `json:"birthday"`
}

// Validate checks only the fields the patch actually sets.
func (r *UpdateUserRequest) Validate(now time.Time) error {
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.Login != nil {
		if err := validateLogin(*r.Login); err != nil {
			return err
		}
	}
	return validateBirthday(r.Birthday, now)
}

// Apply merges the set fields of the patch into u.
func (r *UpdateUserRequest) Apply(u *User) {
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Login != nil {
		u.Login = *r.Login
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) != "" {
		u.Name = *r.Name
	}
	if r.Birthday != nil {
		b := *r.Birthday
		u.Birthday = &b
	}
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return dErrors.New(dErrors.CodeValidation, `email must be non-blank and contain "@"`)
	}
	return nil
}

func validateLogin(login string) error {
	if strings.TrimSpace(login) == "" || strings.Contains(login, " ") {
		return dErrors.New(dErrors.CodeValidation, "login must be non-blank and contain no spaces")
	}
	return nil
}

func validateBirthday(birthday *domain.Date, now time.Time) error {
	if birthday != nil && birthday.After(domain.DateOf(now)) {
		return dErrors.New(dErrors.CodeValidation, "birthday cannot be in the future")
	}
	return nil
}

// resolveName implements the default-name rule: a blank or absent display
// name falls back to the login.
func resolveName(name, login string) string {
	if strings.TrimSpace(name) == "" {
		return login
	}
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
