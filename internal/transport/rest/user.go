package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/internal/service/user"
)

// userAdminService defines the minimal interface needed by UserHandler.
type userAdminService interface {
	CreateUser(ctx context.Context, input user.CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	SetUserStatus(ctx context.Context, input user.SetStatusInput) (*domain.User, error)
}

// UserHandler serves admin account management endpoints.
type UserHandler struct {
	svc userAdminService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userAdminService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Create handles POST /users. Admin-only.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleEmployee
	}

	u, err := h.svc.CreateUser(r.Context(), user.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     role,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

// List handles GET /users. Admin-only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

type setUserStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles PUT /users/{id}/status. Admin-only.
func (h *UserHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req setUserStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.svc.SetUserStatus(r.Context(), user.SetStatusInput{
		UserID: userID,
		Status: domain.UserStatus(req.Status),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}
