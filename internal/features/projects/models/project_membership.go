package projects_models

import (
	"time"

	"taskboard/internal/features/rules"

	"github.com/google/uuid"
)

type ProjectMembership struct {
	ID        uuid.UUID  `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID  `json:"userId"    gorm:"column:user_id"`
	ProjectID uuid.UUID  `json:"projectId" gorm:"column:project_id"`
	Role      rules.Role `json:"role"      gorm:"column:role"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}
