package domain

import (
	"strconv"

	dErrors "filmorate/pkg/domain-errors"
)

// Typed identifiers keep user and film ids from being swapped at call sites.
// Both are int64 so one width applies across the whole system.
type (
	UserID int64
	FilmID int64
)

// ParseUserID parses a path or query segment into a UserID.
// Ids are assigned starting at 1, so zero and negative values are rejected
// alongside non-numeric input.
func ParseUserID(s string) (UserID, error) {
	n, err := parseID(s, "user")
	return UserID(n), err
}

// ParseFilmID parses a path or query segment into a FilmID.
func ParseFilmID(s string) (FilmID, error) {
	n, err := parseID(s, "film")
	return FilmID(n), err
}

func parseID(s, kind string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeValidation, "invalid %s id %q", kind, s)
	}
	if n <= 0 {
		return 0, dErrors.Newf(dErrors.CodeValidation, "invalid %s id %d: must be positive", kind, n)
	}
	return n, nil
}

func (id UserID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id FilmID) String() string { return strconv.FormatInt(int64(id), 10) }
