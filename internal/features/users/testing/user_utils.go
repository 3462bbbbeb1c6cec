package users_testing

import (
	"fmt"
	"time"

	users_enums "taskboard/internal/features/users/enums"
	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

// NewTestUser builds an active user that is not persisted.
func NewTestUser(roles ...users_enums.UserRole) *users_models.User {
	userID := uuid.New()
	hashedPassword := "$2a$10$test"

	if len(roles) == 0 {
		roles = []users_enums.UserRole{users_enums.UserRoleUser}
	}

	return &users_models.User{
		ID:                   userID,
		Username:             fmt.Sprintf("user-%s", userID.String()[:8]),
		Email:                fmt.Sprintf("user-%s@test.com", userID.String()[:8]),
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
		Roles:                roles,
	}
}
