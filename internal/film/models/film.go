package models

import (
	"time"

	"filmorate/pkg/domain"
)

// MaxDescriptionLength bounds the film description.
const MaxDescriptionLength = 200

// EarliestReleaseDate is the date of the first public film screening; no film
// can predate it.
var EarliestReleaseDate = domain.NewDate(1895, time.December, 28)

// Film is a catalogued film. LikedBy holds the ids of users who liked it;
// Likes always equals the size of that set and is maintained by the store.
type Film struct {
	ID          domain.FilmID    `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ReleaseDate domain.Date      `json:"releaseDate"`
	Duration    int              `json:"duration"`
	LikedBy     domain.UserIDSet `json:"likedBy"`
	Likes       int              `json:"likeCount"`
}

// Clone returns an independent copy, including the like set.
func (f *Film) Clone() *Film {
	if f == nil {
		return nil
	}
	c := *f
	c.LikedBy = f.LikedBy.Clone()
	return &c
}
