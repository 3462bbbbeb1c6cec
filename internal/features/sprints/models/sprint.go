package sprints_models

import (
	"time"

	"github.com/google/uuid"
)

type Sprint struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	ProjectID   uuid.UUID `json:"projectId"   gorm:"column:project_id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	StartDate   time.Time `json:"startDate"   gorm:"column:start_date"`
	EndDate     time.Time `json:"endDate"     gorm:"column:end_date"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Sprint) TableName() string {
	return "sprints"
}

