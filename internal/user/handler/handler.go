// Package handler wires user routes onto the chi router.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"filmorate/internal/user/models"
	"filmorate/pkg/domain"
	dErrors "filmorate/pkg/domain-errors"
	"filmorate/pkg/platform/httputil"
	"filmorate/pkg/requestcontext"
)

// Service defines the user operations the HTTP layer depends on.
type Service interface {
	List(ctx context.Context) []*models.User
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, req *models.UpdateUserRequest) (*models.User, error)
	AddFriend(ctx context.Context, userID, friendID domain.UserID) error
	RemoveFriend(ctx context.Context, userID, friendID domain.UserID) error
	Friends(ctx context.Context, userID domain.UserID) ([]*models.User, error)
	MutualFriends(ctx context.Context, userID, otherID domain.UserID) ([]*models.User, error)
}

// Handler handles /users endpoints.
type Handler struct {
	users  Service
	logger *slog.Logger
}

// New creates a user Handler.
func New(users Service, logger *slog.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// Register mounts the user routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Put("/", h.handleUpdate)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/friends", h.handleFriends)
			r.Get("/friends/common/{otherID}", h.handleMutualFriends)
			r.Put("/friends/{friendID}", h.handleAddFriend)
			r.Delete("/friends/{friendID}", h.handleRemoveFriend)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.users.List(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid create user body", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	created, err := h.users.Create(ctx, &req)
	if err != nil {
		h.warn(ctx, "create user rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid update user body", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	updated, err := h.users.Update(ctx, &req)
	if err != nil {
		h.warn(ctx, "update user rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, err := friendPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.users.AddFriend(r.Context(), userID, friendID); err != nil {
		h.warn(r.Context(), "add friend rejected", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, err := friendPair(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.users.RemoveFriend(r.Context(), userID, friendID); err != nil {
		h.warn(r.Context(), "remove friend rejected", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	friends, err := h.users.Friends(r.Context(), userID)
	if err != nil {
		h.warn(r.Context(), "list friends rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, friends)
}

func (h *Handler) handleMutualFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	otherID, err := domain.ParseUserID(chi.URLParam(r, "otherID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	mutual, err := h.users.MutualFriends(r.Context(), userID, otherID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mutual)
}

func friendPair(r *http.Request) (domain.UserID, domain.UserID, error) {
	userID, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		return 0, 0, err
	}
	friendID, err := domain.ParseUserID(chi.URLParam(r, "friendID"))
	if err != nil {
		return 0, 0, err
	}
	return userID, friendID, nil
}

func (h *Handler) warn(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
