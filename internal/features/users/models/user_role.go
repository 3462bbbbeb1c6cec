package users_models

import (
	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

type UserRoleAssignment struct {
	UserID   uuid.UUID            `gorm:"column:user_id;primaryKey"`
	RoleName users_enums.UserRole `gorm:"column:role_name;primaryKey"`
}

func (UserRoleAssignment) TableName() string {
	return "user_roles"
}
