package models

import (
	"strings"

	"filmorate/pkg/domain"
	dErrors "filmorate/pkg/domain-errors"
)

// CreateFilmRequest carries the fields of a new film.
type CreateFilmRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	ReleaseDate *domain.Date `json:"releaseDate"`
	Duration    *int         `json:"duration"`
}

// Validate runs every check before any state is touched.
func (r *CreateFilmRequest) Validate() error {
	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "film name must be non-blank")
	}
	if r.ReleaseDate == nil {
		return dErrors.New(dErrors.CodeValidation, "release date must be provided")
	}
	if err := validateReleaseDate(*r.ReleaseDate); err != nil {
		return err
	}
	if err := validateDuration(derefInt(r.Duration)); err != nil {
		return err
	}
	return validateDescription(derefString(r.Description))
}

// ToFilm builds the Film to store; the id is assigned by the store.
func (r *CreateFilmRequest) ToFilm() *Film {
	return &Film{
		Name:        *r.Name,
		Description: derefString(r.Description),
		ReleaseDate: *r.ReleaseDate,
		Duration:    derefInt(r.Duration),
		LikedBy:     domain.UserIDSet{},
	}
}

// UpdateFilmRequest is a patch. Name is a plain string because a blank name
// means "keep the stored name" (the create-side non-blank rule intentionally
// does not apply on update). Duration is always written through; nil release
// date and description keep the stored values.
type UpdateFilmRequest struct {
	ID          *domain.FilmID `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	ReleaseDate *domain.Date   `json:"releaseDate"`
	Duration    int            `json:"duration"`
}

// Validate checks the fields the patch sets.
func (r *UpdateFilmRequest) Validate() error {
	if r.ReleaseDate != nil {
		if err := validateReleaseDate(*r.ReleaseDate); err != nil {
			return err
		}
	}
	if err := validateDuration(r.Duration); err != nil {
		return err
	}
	if r.Description != nil {
		return validateDescription(*r.Description)
	}
	return nil
}

// Apply merges the set fields of the patch into f.
func (r *UpdateFilmRequest) Apply(f *Film) {
	if strings.TrimSpace(r.Name) != "" {
		f.Name = r.Name
	}
	if r.ReleaseDate != nil {
		f.ReleaseDate = *r.ReleaseDate
	}
	if r.Description != nil {
		f.Description = *r.Description
	}
	f.Duration = r.Duration
}

func validateReleaseDate(d domain.Date) error {
	if d.Before(EarliestReleaseDate) {
		return dErrors.Newf(dErrors.CodeValidation, "release date cannot be before %s", EarliestReleaseDate)
	}
	return nil
}

func validateDuration(duration int) error {
	if duration < 0 {
		return dErrors.New(dErrors.CodeValidation, "duration cannot be negative")
	}
	return nil
}

func validateDescription(description string) error {
	if len([]rune(description)) > MaxDescriptionLength {
		return dErrors.Newf(dErrors.CodeValidation, "description cannot exceed %d characters", MaxDescriptionLength)
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
