package sprints_services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/features/audit_logs"
	"taskboard/internal/features/rules"
	sprints_dto "taskboard/internal/features/sprints/dto"
	sprints_models "taskboard/internal/features/sprints/models"
	users_models "taskboard/internal/features/users/models"
	errors_utils "taskboard/internal/util/errors"
	"taskboard/internal/util/metrics"

	"github.com/google/uuid"
)

const (
	msgCannotManageSprints = "Only the owner or the scrum master can manage sprints"
	msgCannotViewSprints   = "You are not a member of this project"
)

type SprintService struct {
	sprintRepository SprintStore
	roleResolver     ProjectRoleResolver
	auditLogService  audit_logs.AuditLogWriter
}

func NewSprintService(
	sprintRepository SprintStore,
	roleResolver ProjectRoleResolver,
	auditLogService audit_logs.AuditLogWriter,
) *SprintService {
	return &SprintService{
		sprintRepository: sprintRepository,
		roleResolver:     roleResolver,
		auditLogService:  auditLogService,
	}
}

func (s *SprintService) GetSprints(
	projectID uuid.UUID,
	user *users_models.User,
) (*sprints_dto.ListSprintsResponseDTO, error) {
	if err := s.validateCanView(projectID, user); err != nil {
		return nil, err
	}

	sprints, err := s.sprintRepository.GetSprintsByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sprints: %w", err)
	}

	return &sprints_dto.ListSprintsResponseDTO{Sprints: sprints}, nil
}

func (s *SprintService) GetSprint(
	projectID, sprintID uuid.UUID,
	user *users_models.User,
) (*sprints_models.Sprint, error) {
	if err := s.validateCanView(projectID, user); err != nil {
		return nil, err
	}

	return s.GetProjectSprint(projectID, sprintID)
}

// GetProjectSprint loads a sprint and checks that it belongs to projectID.
func (s *SprintService) GetProjectSprint(projectID, sprintID uuid.UUID) (*sprints_models.Sprint, error) {
	sprint, err := s.sprintRepository.GetSprintByID(sprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sprint: %w", err)
	}

	if sprint == nil || sprint.ProjectID != projectID {
		return nil, errors_utils.NewNotFound("sprint not found")
	}

	return sprint, nil
}

func (s *SprintService) CreateSprint(
	projectID uuid.UUID,
	request *sprints_dto.SprintRequestDTO,
	user *users_models.User,
) (*sprints_models.Sprint, error) {
	if err := s.validateCanManage(projectID, user); err != nil {
		return nil, err
	}

	if err := validateSprintRequest(request); err != nil {
		return nil, err
	}

	sprint := &sprints_models.Sprint{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Name:        strings.TrimSpace(request.Name),
		Description: strings.TrimSpace(request.Description),
		StartDate:   request.StartDate.UTC(),
		EndDate:     request.EndDate.UTC(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.sprintRepository.CreateSprint(sprint); err != nil {
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Sprint created: %s", sprint.Name),
		&user.ID,
		&projectID,
	)

	return sprint, nil
}

func (s *SprintService) UpdateSprint(
	projectID, sprintID uuid.UUID,
	request *sprints_dto.SprintRequestDTO,
	user *users_models.User,
) (*sprints_models.Sprint, error) {
	if err := s.validateCanManage(projectID, user); err != nil {
		return nil, err
	}

	if err := validateSprintRequest(request); err != nil {
		return nil, err
	}

	sprint, err := s.GetProjectSprint(projectID, sprintID)
	if err != nil {
		return nil, err
	}

	sprint.Name = strings.TrimSpace(request.Name)
	sprint.Description = strings.TrimSpace(request.Description)
	sprint.StartDate = request.StartDate.UTC()
	sprint.EndDate = request.EndDate.UTC()

	if err := s.sprintRepository.UpdateSprint(sprint); err != nil {
		return nil, fmt.Errorf("failed to update sprint: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Sprint updated: %s", sprint.Name),
		&user.ID,
		&projectID,
	)

	return sprint, nil
}

// DeleteSprint removes the sprint. Its items stay in the project backlog.
func (s *SprintService) DeleteSprint(projectID, sprintID uuid.UUID, user *users_models.User) error {
	if err := s.validateCanManage(projectID, user); err != nil {
		return err
	}

	sprint, err := s.GetProjectSprint(projectID, sprintID)
	if err != nil {
		return err
	}

	if err := s.sprintRepository.DeleteSprint(sprint.ID); err != nil {
		return fmt.Errorf("failed to delete sprint: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Sprint deleted: %s", sprint.Name),
		&user.ID,
		&projectID,
	)

	return nil
}

func (s *SprintService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	return s.sprintRepository.DeleteSprintsByProject(projectID)
}

func (s *SprintService) validateCanView(projectID uuid.UUID, user *users_models.User) error {
	role, err := s.roleResolver.GetViewerRole(projectID, user)
	if err != nil {
		return err
	}

	if !rules.CanViewProject(role) {
		metrics.ForbiddenOperations.WithLabelValues("sprint").Inc()
		return errors_utils.NewForbiddenOperation(msgCannotViewSprints)
	}

	return nil
}

func (s *SprintService) validateCanManage(projectID uuid.UUID, user *users_models.User) error {
	role, err := s.roleResolver.GetMemberRole(projectID, user.ID)
	if err != nil {
		return err
	}

	if !rules.CanManageSprints(role) {
		metrics.ForbiddenOperations.WithLabelValues("sprint").Inc()
		return errors_utils.NewForbiddenOperation(msgCannotManageSprints)
	}

	return nil
}

func validateSprintRequest(request *sprints_dto.SprintRequestDTO) error {
	if strings.TrimSpace(request.Name) == "" {
		return errors.New("sprint name is required")
	}

	if request.StartDate.IsZero() || request.EndDate.IsZero() {
		return errors.New("sprint start and end dates are required")
	}

	if request.EndDate.Before(request.StartDate) {
		return errors.New("sprint end date must not precede its start date")
	}

	return nil
}
