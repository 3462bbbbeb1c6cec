package projects_services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	audit_logs "taskboard/internal/features/audit_logs"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_interfaces "taskboard/internal/features/projects/interfaces"
	projects_models "taskboard/internal/features/projects/models"
	"taskboard/internal/features/rules"
	users_models "taskboard/internal/features/users/models"
	cache_utils "taskboard/internal/util/cache"
	errors_utils "taskboard/internal/util/errors"
	"taskboard/internal/util/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	msgCannotViewProject   = "You are not a member of this project"
	msgCannotEditProject   = "Only the owner or the scrum master can edit the project"
	msgCannotDeleteProject = "Only the project owner can delete the project"
)

type ProjectService struct {
	projectRepository        projects_interfaces.ProjectStore
	membershipRepository     projects_interfaces.MembershipStore
	auditLogService          audit_logs.AuditLogWriter
	auditLogReader           projects_interfaces.ProjectAuditLogReader
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener
	logger                   *slog.Logger

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func NewProjectService(
	projectRepository projects_interfaces.ProjectStore,
	membershipRepository projects_interfaces.MembershipStore,
	auditLogService audit_logs.AuditLogWriter,
	auditLogReader projects_interfaces.ProjectAuditLogReader,
	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project],
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepository:    projectRepository,
		membershipRepository: membershipRepository,
		auditLogService:      auditLogService,
		auditLogReader:       auditLogReader,
		projectCacheUtil:     projectCacheUtil,
		logger:               logger,
	}
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, errors.New("project name is required")
	}

	now := time.Now().UTC()
	project := &projects_models.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(request.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	owner := &projects_models.ProjectMembership{
		ID:        uuid.New(),
		UserID:    creator.ID,
		ProjectID: project.ID,
		Role:      rules.RoleOwner,
		CreatedAt: now,
	}

	if err := s.projectRepository.CreateProjectWithOwner(project, owner); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&creator.ID,
		&project.ID,
	)

	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UserRole:    rules.RoleOwner,
	}, nil
}

func (s *ProjectService) GetProject(projectID uuid.UUID, user *users_models.User) (*projects_dto.ProjectResponseDTO, error) {
	role, err := s.GetViewerRole(projectID, user)
	if err != nil {
		return nil, err
	}

	if !rules.CanViewProject(role) {
		return nil, forbidden("project", msgCannotViewProject)
	}

	project, err := s.GetProjectWithCache(projectID)
	if err != nil {
		return nil, err
	}

	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UserRole:    role,
	}, nil
}

func (s *ProjectService) GetUserProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, err := s.membershipRepository.GetProjectsByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: projects,
	}, nil
}

func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	role, err := s.GetMemberRole(projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if !rules.CanEditProject(role) {
		return nil, forbidden("project", msgCannotEditProject)
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, errors.New("project name is required")
	}

	project, err := s.getExistingProject(projectID)
	if err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = strings.TrimSpace(request.Description)
	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", project.Name),
		&user.ID,
		&projectID,
	)

	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UserRole:    role,
	}, nil
}

// DeleteProject removes the project after every registered listener has
// cleaned up its rows. Administrators may delete any project.
func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	if !user.CanManageUsers() {
		role, err := s.GetMemberRole(projectID, user.ID)
		if err != nil {
			return fmt.Errorf("failed to get user role: %w", err)
		}

		if !rules.CanDeleteProject(role) {
			return forbidden("project", msgCannotDeleteProject)
		}
	}

	project, err := s.getExistingProject(projectID)
	if err != nil {
		return err
	}

	for _, listener := range s.projectDeletionListeners {
		if err := listener.OnBeforeProjectDeletion(projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
	}

	if err := s.projectRepository.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())
	s.logger.Info("project deleted", "projectId", projectID, "userId", user.ID)

	// the project row is gone, so the entry keeps only the name
	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		nil,
	)

	return nil
}

// GetMemberRole returns the membership role of the user, RoleNone for
// outsiders.
func (s *ProjectService) GetMemberRole(projectID, userID uuid.UUID) (rules.Role, error) {
	role, err := s.membershipRepository.GetMemberRole(projectID, userID)
	if err != nil {
		return rules.RoleNone, fmt.Errorf("failed to get member role: %w", err)
	}

	return role, nil
}

// GetViewerRole is the role used for read access. Administrators who are
// not members read projects as observers.
func (s *ProjectService) GetViewerRole(projectID uuid.UUID, user *users_models.User) (rules.Role, error) {
	role, err := s.GetMemberRole(projectID, user.ID)
	if err != nil {
		return rules.RoleNone, err
	}

	if role == rules.RoleNone && user.CanManageUsers() {
		return rules.RoleObserver, nil
	}

	return role, nil
}

func (s *ProjectService) GetProjectAuditLogs(
	projectID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	role, err := s.GetViewerRole(projectID, user)
	if err != nil {
		return nil, err
	}

	if !rules.CanViewProject(role) {
		return nil, forbidden("project", msgCannotViewProject)
	}

	return s.auditLogReader.GetProjectAuditLogs(projectID, request)
}

func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, errors_utils.NewNotFound("project not found")
		}

		return cachedProject, nil
	}

	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		return s.projectRepository.GetProjectByID(projectID)
	})

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get project: %w", err)
		}

		// Cache the missing project to prevent future DB hits
		invalidCachedProject := &projects_models.Project{
			ID:          projectID,
			IsNotExists: true,
		}
		s.projectCacheUtil.Set(projectIDStr, invalidCachedProject)

		return nil, errors_utils.NewNotFound("project not found")
	}

	project, ok := result.(*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Project")
	}

	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}

func (s *ProjectService) getExistingProject(projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors_utils.NewNotFound("project not found")
		}

		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

func forbidden(resource string, message string) error {
	metrics.ForbiddenOperations.WithLabelValues(resource).Inc()
	return errors_utils.NewForbiddenOperation(message)
}
