package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/internal/service/user"
)

// userService defines the minimal interface needed by AuthHandler.
type userService interface {
	Login(ctx context.Context, input user.LoginInput) (*user.LoginResult, error)
	Me(ctx context.Context) (*domain.User, error)
	UpdateDefaults(ctx context.Context, input user.UpdateDefaultsInput) (*domain.User, error)
}

// AuthHandler serves login and current-user endpoints.
type AuthHandler struct {
	svc userService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc userService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), user.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		User:        toUserResponse(result.User),
	})
}

// Me handles GET /me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

type updateDefaultsRequest struct {
	ProjectID *string `json:"project_id"`
	TaskID    *string `json:"task_id"`
}

// UpdateDefaults handles PUT /me/defaults. Absent fields clear the
// respective default tracking target.
func (h *AuthHandler) UpdateDefaults(w http.ResponseWriter, r *http.Request) {
	var req updateDefaultsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := user.UpdateDefaultsInput{}
	var ok bool
	if input.ProjectID, ok = optionalUUID(w, req.ProjectID, "project_id"); !ok {
		return
	}
	if input.TaskID, ok = optionalUUID(w, req.TaskID, "task_id"); !ok {
		return
	}

	u, err := h.svc.UpdateDefaults(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}
