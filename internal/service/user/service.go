// Package user implements authentication and account management.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateDefaults(ctx context.Context, id uuid.UUID, projectID, taskID *uuid.UUID) (*domain.User, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error)
}

type projectRepo interface {
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

type taskRepo interface {
	ExistsActiveInProject(ctx context.Context, id, projectID uuid.UUID) (bool, error)
}

// tokenIssuer mints access tokens after a successful login.
type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, role domain.Role) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the user business logic.
type Service struct {
	users    userRepo
	projects projectRepo
	tasks    taskRepo
	tokens   tokenIssuer
	log      *slog.Logger
}

// NewService creates a new User service.
func NewService(log *slog.Logger, users userRepo, projects projectRepo, tasks taskRepo, tokens tokenIssuer) *Service {
	return &Service{
		users:    users,
		projects: projects,
		tasks:    tasks,
		tokens:   tokens,
		log:      log.With("service", "user"),
	}
}
