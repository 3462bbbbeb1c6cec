package users_dto

import (
	"time"

	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Username  string `json:"username"  binding:"required,min=3,max=64"`
	Email     string `json:"email"     binding:"required,email"`
	Password  string `json:"password"  binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName"  binding:"max=100"`
}

type SignInRequestDTO struct {
	// Username or email
	Login    string `json:"login"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID                uuid.UUID `json:"userId"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	Token                 string    `json:"token"`
	TokenExpiresAt        time.Time `json:"tokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresOn time.Time `json:"refreshTokenExpiresOn"`
}

type RefreshTokenRequestDTO struct {
	// Access token, may be expired
	Token        string `json:"token"        binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type RefreshTokenResponseDTO struct {
	Token                 string    `json:"token"`
	TokenExpiresAt        time.Time `json:"tokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresOn time.Time `json:"refreshTokenExpiresOn"`
}

type SetAdminPasswordRequestDTO struct {
	Password string `json:"password" binding:"required,min=8"`
}

type IsAdminHasPasswordResponseDTO struct {
	HasPassword bool `json:"hasPassword"`
}

type ChangePasswordRequestDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required,min=8"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID              `json:"id"`
	Username  string                 `json:"username"`
	Email     string                 `json:"email"`
	FirstName string                 `json:"firstName"`
	LastName  string                 `json:"lastName"`
	Roles     []users_enums.UserRole `json:"roles"`
	IsActive  bool                   `json:"isActive"`
	CreatedAt time.Time              `json:"createdAt"`
}

type ListUsersResponseDTO struct {
	Users   []UserProfileResponseDTO `json:"users"`
	Total   int64                    `json:"total"`
	HasMore bool                     `json:"hasMore"`
}

type ChangeUserRoleRequestDTO struct {
	Role      users_enums.UserRole `json:"role"      binding:"required"`
	IsGranted bool                 `json:"isGranted"`
}

type ListUsersRequestDTO struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}

// Normalize clamps paging to 1..100 users per page, 20 by default.
func (r *ListUsersRequestDTO) Normalize() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 20
	}
	r.Offset = max(r.Offset, 0)
}
