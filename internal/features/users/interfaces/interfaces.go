package users_interfaces

import (
	"context"

	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID)
}

// RefreshTokenStore persists at most one refresh token per user.
// GetByUserID returns nil without error when the user has none.
type RefreshTokenStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*users_models.RefreshToken, error)
	Create(ctx context.Context, token *users_models.RefreshToken) error
	Update(ctx context.Context, token *users_models.RefreshToken) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoleNamesLookup returns the account wide role names used as token claims.
type RoleNamesLookup interface {
	GetRoleNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type SecretKeyProvider interface {
	GetSecretKey() (string, error)
}
