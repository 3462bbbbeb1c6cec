package users_models

import (
	"slices"
	"time"

	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID              `json:"id"`
	Username             string                 `json:"username"`
	Email                string                 `json:"email"`
	FirstName            string                 `json:"firstName"`
	LastName             string                 `json:"lastName"`
	HashedPassword       *string                `json:"-"         gorm:"column:hashed_password"`
	PasswordCreationTime time.Time              `json:"-"         gorm:"column:password_creation_time"`
	Status               users_enums.UserStatus `json:"status"`
	CreatedAt            time.Time              `json:"createdAt"`

	// Loaded separately from user_roles
	Roles []users_enums.UserRole `json:"roles" gorm:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasRole(role users_enums.UserRole) bool {
	return slices.Contains(u.Roles, role)
}

func (u *User) CanManageUsers() bool {
	return u.HasRole(users_enums.UserRoleAdministrator)
}

func (u *User) IsActiveUser() bool {
	return u.Status.CanSignIn()
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
