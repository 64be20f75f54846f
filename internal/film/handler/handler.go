// Package handler wires film routes onto the chi router.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"filmorate/internal/film/models"
	"filmorate/pkg/domain"
	dErrors "filmorate/pkg/domain-errors"
	"filmorate/pkg/platform/httputil"
	"filmorate/pkg/requestcontext"
)

// Service defines the film operations the HTTP layer depends on.
type Service interface {
	List(ctx context.Context) []*models.Film
	Create(ctx context.Context, req *models.CreateFilmRequest) (*models.Film, error)
	Update(ctx context.Context, req *models.UpdateFilmRequest) (*models.Film, error)
	AddLike(ctx context.Context, filmID domain.FilmID, userID domain.UserID) error
	RemoveLike(ctx context.Context, filmID domain.FilmID, userID domain.UserID) error
	Popular(ctx context.Context, count int) ([]*models.Film, error)
}

// Handler handles /films endpoints.
type Handler struct {
	films          Service
	logger         *slog.Logger
	popularDefault int
}

// New creates a film Handler. popularDefault is the count used by /popular
// when the query parameter is absent.
func New(films Service, logger *slog.Logger, popularDefault int) *Handler {
	return &Handler{films: films, logger: logger, popularDefault: popularDefault}
}

// Register mounts the film routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/films", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Put("/", h.handleUpdate)
		r.Get("/popular", h.handlePopular)
		r.Route("/{filmID}", func(r chi.Router) {
			r.Put("/like/{userID}", h.handleAddLike)
			r.Delete("/like/{userID}", h.handleRemoveLike)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.films.List(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid create film body", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	created, err := h.films.Create(ctx, &req)
	if err != nil {
		h.warn(ctx, "create film rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpdateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid update film body", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	updated, err := h.films.Update(ctx, &req)
	if err != nil {
		h.warn(ctx, "update film rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleAddLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, err := likePair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.films.AddLike(r.Context(), filmID, userID); err != nil {
		h.warn(r.Context(), "add like rejected", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, err := likePair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.films.RemoveLike(r.Context(), filmID, userID); err != nil {
		h.warn(r.Context(), "remove like rejected", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePopular(w http.ResponseWriter, r *http.Request) {
	count := h.popularDefault
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.Newf(dErrors.CodeValidation, "invalid count %q", raw))
			return
		}
		count = parsed
	}

	films, err := h.films.Popular(r.Context(), count)
	if err != nil {
		h.warn(r.Context(), "popular films rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, films)
}

func likePair(r *http.Request) (domain.FilmID, domain.UserID, error) {
	filmID, err := domain.ParseFilmID(chi.URLParam(r, "filmID"))
	if err != nil {
		return 0, 0, err
	}
	userID, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		return 0, 0, err
	}
	return filmID, userID, nil
}

func (h *Handler) warn(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
