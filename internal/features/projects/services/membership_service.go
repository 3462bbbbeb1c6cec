package projects_services

import (
	"errors"
	"fmt"
	"strings"

	audit_logs "taskboard/internal/features/audit_logs"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_interfaces "taskboard/internal/features/projects/interfaces"
	projects_models "taskboard/internal/features/projects/models"
	"taskboard/internal/features/rules"
	users_models "taskboard/internal/features/users/models"
	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
)

const (
	msgCannotAddMember          = "Only the project owner can add members"
	msgCannotAssignRoleOnAdd    = "Members can only be added as Scrum Master, Developer or Observer"
	msgCannotChangeMemberRole   = "You are not allowed to change the role of this member"
	msgCannotRemoveMember       = "Only the project owner can remove members"
	msgCannotRemoveOwner        = "The project owner cannot be removed"
	msgCannotLeaveProject       = "The project owner cannot leave the project"
	msgCannotViewProjectMembers = "You are not a member of this project"
)

type MembershipService struct {
	membershipRepository projects_interfaces.MembershipStore
	userService          projects_interfaces.UserLookup
	auditLogService      audit_logs.AuditLogWriter
	projectService       *ProjectService
}

func NewMembershipService(
	membershipRepository projects_interfaces.MembershipStore,
	userService projects_interfaces.UserLookup,
	auditLogService audit_logs.AuditLogWriter,
	projectService *ProjectService,
) *MembershipService {
	return &MembershipService{
		membershipRepository: membershipRepository,
		userService:          userService,
		auditLogService:      auditLogService,
		projectService:       projectService,
	}
}

func (s *MembershipService) GetMembers(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	role, err := s.projectService.GetViewerRole(projectID, user)
	if err != nil {
		return nil, err
	}

	if !rules.CanViewProject(role) {
		return nil, forbidden("membership", msgCannotViewProjectMembers)
	}

	members, err := s.membershipRepository.GetProjectMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	membersList := make([]projects_dto.ProjectMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	return &projects_dto.GetMembersResponseDTO{
		Members: membersList,
	}, nil
}

func (s *MembershipService) AddMember(
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*projects_dto.ProjectMemberResponseDTO, error) {
	callerRole, err := s.projectService.GetMemberRole(projectID, addedBy.ID)
	if err != nil {
		return nil, err
	}

	if !rules.CanAddMember(callerRole) {
		return nil, forbidden("membership", msgCannotAddMember)
	}

	if !rules.CanAssignRoleOnAdd(request.Role) {
		return nil, forbidden("membership", msgCannotAssignRoleOnAdd)
	}

	targetUser, err := s.userService.GetUserByEmail(strings.ToLower(strings.TrimSpace(request.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if targetUser == nil {
		return nil, errors_utils.NewNotFound("user not found")
	}

	if !targetUser.IsActiveUser() {
		return nil, errors.New("user is not active")
	}

	existingMembership, err := s.membershipRepository.GetMembership(projectID, targetUser.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	if existingMembership != nil {
		return nil, errors.New("user is already a member of this project")
	}

	membership := &projects_models.ProjectMembership{
		UserID:    targetUser.ID,
		ProjectID: projectID,
		Role:      request.Role,
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User added to project: %s as %s", targetUser.Username, request.Role),
		&addedBy.ID,
		&projectID,
	)

	return &projects_dto.ProjectMemberResponseDTO{
		ID:        membership.ID,
		UserID:    targetUser.ID,
		Username:  targetUser.Username,
		Email:     targetUser.Email,
		Role:      membership.Role,
		CreatedAt: membership.CreatedAt,
	}, nil
}

func (s *MembershipService) ChangeMemberRole(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	request *projects_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) error {
	callerRole, err := s.projectService.GetMemberRole(projectID, changedBy.ID)
	if err != nil {
		return err
	}

	existingMembership, err := s.getExistingMembership(projectID, memberUserID)
	if err != nil {
		return err
	}

	if !rules.CanChangeMemberRole(callerRole, existingMembership.Role, request.Role) {
		return forbidden("membership", msgCannotChangeMemberRole)
	}

	if err := s.membershipRepository.UpdateMemberRole(projectID, memberUserID, request.Role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf(
			"Member role changed: %s from %s to %s",
			s.describeUser(memberUserID),
			existingMembership.Role,
			request.Role,
		),
		&changedBy.ID,
		&projectID,
	)

	return nil
}

// RemoveMember removes another member. Removing yourself is leaving the
// project and follows LeaveProject.
func (s *MembershipService) RemoveMember(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	if memberUserID == removedBy.ID {
		return s.LeaveProject(projectID, removedBy)
	}

	callerRole, err := s.projectService.GetMemberRole(projectID, removedBy.ID)
	if err != nil {
		return err
	}

	if !rules.CanRemoveOtherMember(callerRole) {
		return forbidden("membership", msgCannotRemoveMember)
	}

	existingMembership, err := s.getExistingMembership(projectID, memberUserID)
	if err != nil {
		return err
	}

	if existingMembership.Role == rules.RoleOwner {
		return forbidden("membership", msgCannotRemoveOwner)
	}

	if err := s.membershipRepository.RemoveMember(projectID, memberUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member removed from project: %s", s.describeUser(memberUserID)),
		&removedBy.ID,
		&projectID,
	)

	return nil
}

func (s *MembershipService) LeaveProject(projectID uuid.UUID, user *users_models.User) error {
	role, err := s.projectService.GetMemberRole(projectID, user.ID)
	if err != nil {
		return err
	}

	if role == rules.RoleNone {
		return errors_utils.NewNotFound("user is not a member of this project")
	}

	if !rules.CanRemoveSelf(role) {
		return forbidden("membership", msgCannotLeaveProject)
	}

	if err := s.membershipRepository.RemoveMember(projectID, user.ID); err != nil {
		return fmt.Errorf("failed to leave project: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member left project: %s", user.Username),
		&user.ID,
		&projectID,
	)

	return nil
}

func (s *MembershipService) getExistingMembership(
	projectID, userID uuid.UUID,
) (*projects_models.ProjectMembership, error) {
	membership, err := s.membershipRepository.GetMembership(projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	if membership == nil {
		return nil, errors_utils.NewNotFound("user is not a member of this project")
	}

	return membership, nil
}

func (s *MembershipService) describeUser(userID uuid.UUID) string {
	user, err := s.userService.GetUserByID(userID)
	if err != nil || user == nil {
		return userID.String()
	}

	return user.Username
}
