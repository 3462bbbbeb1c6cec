package projects_interfaces

import (
	"taskboard/internal/features/audit_logs"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_models "taskboard/internal/features/projects/models"
	"taskboard/internal/features/rules"
	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

type ProjectDeletionListener interface {
	OnBeforeProjectDeletion(projectID uuid.UUID) error
}

type ProjectStore interface {
	CreateProjectWithOwner(project *projects_models.Project, owner *projects_models.ProjectMembership) error
	GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error)
	UpdateProject(project *projects_models.Project) error
	DeleteProject(projectID uuid.UUID) error
}

// MembershipStore returns nil, nil from GetMembership when the user is not a
// member of the project.
type MembershipStore interface {
	rules.MemberRoleLookup

	CreateMembership(membership *projects_models.ProjectMembership) error
	GetMembership(projectID, userID uuid.UUID) (*projects_models.ProjectMembership, error)
	GetProjectMembers(projectID uuid.UUID) ([]*projects_dto.ProjectMemberResponseDTO, error)
	GetProjectsByUserID(userID uuid.UUID) ([]projects_dto.ProjectResponseDTO, error)
	UpdateMemberRole(projectID, userID uuid.UUID, role rules.Role) error
	RemoveMember(projectID, userID uuid.UUID) error
}

// UserLookup returns nil, nil when the user does not exist.
type UserLookup interface {
	GetUserByEmail(email string) (*users_models.User, error)
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
}

type ProjectAuditLogReader interface {
	GetProjectAuditLogs(
		projectID uuid.UUID,
		request *audit_logs.GetAuditLogsRequest,
	) (*audit_logs.GetAuditLogsResponse, error)
}
