package sprints_dto

import (
	"time"

	sprints_models "taskboard/internal/features/sprints/models"
)

type SprintRequestDTO struct {
	Name        string    `json:"name"        binding:"required,min=1,max=255"`
	Description string    `json:"description" binding:"max=4000"`
	StartDate   time.Time `json:"startDate"   binding:"required"`
	EndDate     time.Time `json:"endDate"     binding:"required"`
}

type ListSprintsResponseDTO struct {
	Sprints []*sprints_models.Sprint `json:"sprints"`
}
