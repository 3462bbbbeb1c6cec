package sprints_repositories

import (
	"errors"
	"time"

	sprints_models "taskboard/internal/features/sprints/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SprintRepository struct{}

func (r *SprintRepository) CreateSprint(sprint *sprints_models.Sprint) error {
	if sprint.ID == uuid.Nil {
		sprint.ID = uuid.New()
	}
	if sprint.CreatedAt.IsZero() {
		sprint.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(sprint).Error
}

// GetSprintByID returns nil, nil when the sprint does not exist.
func (r *SprintRepository) GetSprintByID(sprintID uuid.UUID) (*sprints_models.Sprint, error) {
	var sprint sprints_models.Sprint

	err := storage.GetDb().Where("id = ?", sprintID).First(&sprint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &sprint, nil
}

func (r *SprintRepository) GetSprintsByProject(projectID uuid.UUID) ([]*sprints_models.Sprint, error) {
	sprints := make([]*sprints_models.Sprint, 0)

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("start_date ASC").
		Find(&sprints).Error

	return sprints, err
}

func (r *SprintRepository) UpdateSprint(sprint *sprints_models.Sprint) error {
	return storage.GetDb().
		Model(&sprints_models.Sprint{}).
		Where("id = ?", sprint.ID).
		Updates(map[string]any{
			"name":        sprint.Name,
			"description": sprint.Description,
			"start_date":  sprint.StartDate,
			"end_date":    sprint.EndDate,
		}).Error
}

// DeleteSprint moves the sprint's items back to the backlog and removes the
// sprint in one transaction.
func (r *SprintRepository) DeleteSprint(sprintID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE items SET sprint_id = NULL WHERE sprint_id = ?", sprintID).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", sprintID).Delete(&sprints_models.Sprint{}).Error
	})
}

func (r *SprintRepository) DeleteSprintsByProject(projectID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			"UPDATE items SET sprint_id = NULL WHERE sprint_id IN (SELECT id FROM sprints WHERE project_id = ?)",
			projectID,
		).Error
		if err != nil {
			return err
		}

		return tx.Where("project_id = ?", projectID).Delete(&sprints_models.Sprint{}).Error
	})
}
