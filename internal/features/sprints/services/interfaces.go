package sprints_services

import (
	"taskboard/internal/features/rules"
	sprints_models "taskboard/internal/features/sprints/models"
	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

// SprintStore returns nil, nil from GetSprintByID when the sprint is missing.
type SprintStore interface {
	CreateSprint(sprint *sprints_models.Sprint) error
	GetSprintByID(sprintID uuid.UUID) (*sprints_models.Sprint, error)
	GetSprintsByProject(projectID uuid.UUID) ([]*sprints_models.Sprint, error)
	UpdateSprint(sprint *sprints_models.Sprint) error
	DeleteSprint(sprintID uuid.UUID) error
	DeleteSprintsByProject(projectID uuid.UUID) error
}

type ProjectRoleResolver interface {
	GetMemberRole(projectID, userID uuid.UUID) (rules.Role, error)
	GetViewerRole(projectID uuid.UUID, user *users_models.User) (rules.Role, error)
}
