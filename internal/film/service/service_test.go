package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	filmmodels "filmorate/internal/film/models"
	filmstore "filmorate/internal/film/store"
	usermodels "filmorate/internal/user/models"
	userservice "filmorate/internal/user/service"
	userstore "filmorate/internal/user/store"
	"filmorate/pkg/domain"
	dErrors "filmorate/pkg/domain-errors"
)

type FilmServiceSuite struct {
	suite.Suite
	service *Service
	users   *userservice.Service
	ctx     context.Context
}

func TestFilmServiceSuite(t *testing.T) {
	suite.Run(t, new(FilmServiceSuite))
}

func (s *FilmServiceSuite) SetupTest() {
	s.users = userservice.New(userstore.NewInMemoryUserStore())
	s.service = New(filmstore.NewInMemoryFilmStore(), s.users)
	s.ctx = context.Background()
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func datePtr(d domain.Date) *domain.Date { return &d }

func (s *FilmServiceSuite) validCreate(name string) *filmmodels.CreateFilmRequest {
	return &filmmodels.CreateFilmRequest{
		Name:        strPtr(name),
		Description: strPtr("descr"),
		ReleaseDate: datePtr(domain.NewDate(2009, time.May, 29)),
		Duration:    intPtr(96),
	}
}

func (s *FilmServiceSuite) createUser(login string) domain.UserID {
	created, err := s.users.Create(s.ctx, &usermodels.CreateUserRequest{
		Email: strPtr(login + "@x.com"),
		Login: strPtr(login),
	})
	s.Require().NoError(err)
	return created.ID
}

func (s *FilmServiceSuite) TestCreate() {
	s.Run("assigns a fresh id and zero likes", func() {
		created, err := s.service.Create(s.ctx, s.validCreate("Up"))
		s.Require().NoError(err)
		s.Equal(domain.FilmID(1), created.ID)
		s.Zero(created.Likes)
		s.Empty(created.LikedBy)
	})

	s.Run("ids never repeat", func() {
		second, err := s.service.Create(s.ctx, s.validCreate("Brazil"))
		s.Require().NoError(err)
		s.Equal(domain.FilmID(2), second.ID)
	})
}

func (s *FilmServiceSuite) TestCreateValidation() {
	cases := []struct {
		name   string
		mutate func(req *filmmodels.CreateFilmRequest)
	}{
		{"blank name", func(req *filmmodels.CreateFilmRequest) { req.Name = strPtr("") }},
		{"missing name", func(req *filmmodels.CreateFilmRequest) { req.Name = nil }},
		{"missing release date", func(req *filmmodels.CreateFilmRequest) { req.ReleaseDate = nil }},
		{"release date before first screening", func(req *filmmodels.CreateFilmRequest) {
			req.ReleaseDate = datePtr(domain.NewDate(1800, time.October, 10))
		}},
		{"negative duration", func(req *filmmodels.CreateFilmRequest) { req.Duration = intPtr(-2000) }},
		{"description over 200 characters", func(req *filmmodels.CreateFilmRequest) {
			req.Description = strPtr(strings.Repeat("a", 201))
		}},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := s.validCreate("name")
			tc.mutate(req)

			_, err := s.service.Create(s.ctx, req)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
			s.Empty(s.service.List(s.ctx), "failed create must not mutate the registry")
		})
	}
}

func (s *FilmServiceSuite) TestCreateBoundaries() {
	s.Run("release on the first screening date is allowed", func() {
		req := s.validCreate("Workers Leaving the Factory")
		req.ReleaseDate = datePtr(domain.NewDate(1895, time.December, 28))

		_, err := s.service.Create(s.ctx, req)
		s.Require().NoError(err)
	})

	s.Run("description of exactly 200 characters is allowed", func() {
		req := s.validCreate("Verbose")
		req.Description = strPtr(strings.Repeat("a", 200))

		_, err := s.service.Create(s.ctx, req)
		s.Require().NoError(err)
	})

	s.Run("zero duration is allowed", func() {
		req := s.validCreate("Still")
		req.Duration = intPtr(0)

		_, err := s.service.Create(s.ctx, req)
		s.Require().NoError(err)
	})
}

func (s *FilmServiceSuite) TestUpdate() {
	s.Run("blank name keeps the stored one", func() {
		created, err := s.service.Create(s.ctx, s.validCreate("Up"))
		s.Require().NoError(err)

		updated, err := s.service.Update(s.ctx, &filmmodels.UpdateFilmRequest{
			ID:       &created.ID,
			Name:     "",
			Duration: 100,
		})
		s.Require().NoError(err)
		s.Equal("Up", updated.Name)
		s.Equal(100, updated.Duration)
		s.Equal("descr", updated.Description, "unset description keeps the stored one")
		s.True(updated.ReleaseDate.Equal(created.ReleaseDate))
	})

	s.Run("set fields overwrite", func() {
		created, err := s.service.Create(s.ctx, s.validCreate("Brazil"))
		s.Require().NoError(err)

		updated, err := s.service.Update(s.ctx, &filmmodels.UpdateFilmRequest{
			ID:          &created.ID,
			Name:        "Brazil (1985)",
			Description: strPtr("dystopia"),
			ReleaseDate: datePtr(domain.NewDate(1985, time.February, 22)),
			Duration:    132,
		})
		s.Require().NoError(err)
		s.Equal("Brazil (1985)", updated.Name)
		s.Equal("dystopia", updated.Description)
		s.Equal(132, updated.Duration)
	})

	s.Run("missing id is not found", func() {
		_, err := s.service.Update(s.ctx, &filmmodels.UpdateFilmRequest{Name: "x"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown id is not found", func() {
		id := domain.FilmID(404)
		_, err := s.service.Update(s.ctx, &filmmodels.UpdateFilmRequest{ID: &id, Name: "x"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("set fields are still validated", func() {
		created, err := s.service.Create(s.ctx, s.validCreate("Heat"))
		s.Require().NoError(err)

		_, err = s.service.Update(s.ctx, &filmmodels.UpdateFilmRequest{
			ID:          &created.ID,
			Description: strPtr(strings.Repeat("a", 201)),
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *FilmServiceSuite) TestLikes() {
	s.Run("like then duplicate then unlike then absent unlike", func() {
		film, err := s.service.Create(s.ctx, s.validCreate("Up"))
		s.Require().NoError(err)
		userID := s.createUser("joe")

		s.Require().NoError(s.service.AddLike(s.ctx, film.ID, userID))
		got, err := s.service.Popular(s.ctx, 1)
		s.Require().NoError(err)
		s.Equal(1, got[0].Likes)

		err = s.service.AddLike(s.ctx, film.ID, userID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		s.Require().NoError(s.service.RemoveLike(s.ctx, film.ID, userID))

		err = s.service.RemoveLike(s.ctx, film.ID, userID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown film is not found", func() {
		userID := s.createUser("amy")

		err := s.service.AddLike(s.ctx, 999, userID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown user is not found", func() {
		film, err := s.service.Create(s.ctx, s.validCreate("Brazil"))
		s.Require().NoError(err)

		err = s.service.AddLike(s.ctx, film.ID, 999)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *FilmServiceSuite) TestPopular() {
	s.Run("rejects non-positive counts", func() {
		for _, count := range []int{0, -1} {
			_, err := s.service.Popular(s.ctx, count)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		}
	})

	s.Run("ranks by like count and truncates", func() {
		a, err := s.service.Create(s.ctx, s.validCreate("a"))
		s.Require().NoError(err)
		b, err := s.service.Create(s.ctx, s.validCreate("b"))
		s.Require().NoError(err)
		_, err = s.service.Create(s.ctx, s.validCreate("c"))
		s.Require().NoError(err)

		u1 := s.createUser("u1")
		u2 := s.createUser("u2")
		s.Require().NoError(s.service.AddLike(s.ctx, b.ID, u1))
		s.Require().NoError(s.service.AddLike(s.ctx, b.ID, u2))
		s.Require().NoError(s.service.AddLike(s.ctx, a.ID, u1))

		got, err := s.service.Popular(s.ctx, 2)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(b.ID, got[0].ID)
		s.Equal(a.ID, got[1].ID)
	})

	s.Run("returns all films when count exceeds the registry size", func() {
		_, err := s.service.Create(s.ctx, s.validCreate("d"))
		s.Require().NoError(err)

		got, err := s.service.Popular(s.ctx, 10)
		s.Require().NoError(err)
		s.Len(got, 4)
	})
}
