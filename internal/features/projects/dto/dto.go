package projects_dto

import (
	"time"

	"taskboard/internal/features/rules"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=4000"`
}

type UpdateProjectRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=4000"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`

	// Caller's role in this project
	UserRole rules.Role `json:"userRole" gorm:"column:user_role"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

// Membership DTOs
type AddMemberRequestDTO struct {
	Email string     `json:"email" binding:"required,email"`
	Role  rules.Role `json:"role"  binding:"required"`
}

type ChangeMemberRoleRequestDTO struct {
	Role rules.Role `json:"role" binding:"required"`
}

type ProjectMemberResponseDTO struct {
	ID        uuid.UUID  `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID  `json:"userId"    gorm:"column:user_id"`
	Username  string     `json:"username"  gorm:"column:username"`
	Email     string     `json:"email"     gorm:"column:email"`
	Role      rules.Role `json:"role"      gorm:"column:role"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberResponseDTO `json:"members"`
}
