package users_services

import (
	"context"
	"errors"
	"fmt"
	"time"

	users_enums "taskboard/internal/features/users/enums"
	users_interfaces "taskboard/internal/features/users/interfaces"
	users_models "taskboard/internal/features/users/models"
	users_repositories "taskboard/internal/features/users/repositories"
	errors_utils "taskboard/internal/util/errors"
	"taskboard/internal/util/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	msgListUsersNotAllowed       = "insufficient permissions to list users"
	msgViewProfileNotAllowed     = "insufficient permissions to view user profile"
	msgDeactivateNotAllowed      = "insufficient permissions to deactivate users"
	msgDeactivateAdminNotAllowed = "only the root admin user can deactivate admin accounts"
	msgActivateNotAllowed        = "insufficient permissions to activate users"
	msgActivateAdminNotAllowed   = "only the root admin user can activate admin accounts"
	msgChangeRoleNotAllowed      = "insufficient permissions to change user roles"
	msgChangeAdminRoleNotAllowed = "only the root admin user can promote users to admin or demote admin users"
)

type UserManagementService struct {
	userRepository     *users_repositories.UserRepository
	userRoleRepository *users_repositories.UserRoleRepository
	tokenService       *TokenService
	auditLogWriter     users_interfaces.AuditLogWriter
}

func (s *UserManagementService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserManagementService) GetUsers(
	currentUser *users_models.User,
	limit, offset int,
	beforeCreatedAt *time.Time,
) ([]*users_models.User, int64, error) {
	if !currentUser.CanManageUsers() {
		return nil, 0, forbiddenUserOperation(msgListUsersNotAllowed)
	}

	users, total, err := s.userRepository.GetUsers(limit, offset, beforeCreatedAt)
	if err != nil {
		return nil, 0, err
	}

	for _, user := range users {
		roles, err := s.userRoleRepository.GetRoles(user.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get user roles: %w", err)
		}
		user.Roles = roles
	}

	return users, total, nil
}

func (s *UserManagementService) GetUserProfile(
	userID uuid.UUID,
	requestedBy *users_models.User,
) (*users_models.User, error) {
	if userID != requestedBy.ID && !requestedBy.CanManageUsers() {
		return nil, forbiddenUserOperation(msgViewProfileNotAllowed)
	}

	return s.getUserWithRoles(userID)
}

// DeactivateUser also revokes the refresh token of the user.
func (s *UserManagementService) DeactivateUser(
	ctx context.Context,
	userID uuid.UUID,
	deactivatedBy *users_models.User,
) error {
	if !deactivatedBy.CanManageUsers() {
		return forbiddenUserOperation(msgDeactivateNotAllowed)
	}

	if userID == deactivatedBy.ID {
		return errors.New("cannot deactivate your own account")
	}

	user, err := s.getUserWithRoles(userID)
	if err != nil {
		return err
	}

	if user.CanManageUsers() && deactivatedBy.Username != RootAdminUsername {
		return forbiddenUserOperation(msgDeactivateAdminNotAllowed)
	}

	if err := s.userRepository.UpdateUserStatus(userID, users_enums.UserStatusInactive); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	if err := s.tokenService.DeleteRefreshTokenForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User deactivated: %s", user.Username),
		&deactivatedBy.ID,
		nil,
	)

	return nil
}

func (s *UserManagementService) ActivateUser(userID uuid.UUID, activatedBy *users_models.User) error {
	if !activatedBy.CanManageUsers() {
		return forbiddenUserOperation(msgActivateNotAllowed)
	}

	user, err := s.getUserWithRoles(userID)
	if err != nil {
		return err
	}

	if user.CanManageUsers() && activatedBy.Username != RootAdminUsername {
		return forbiddenUserOperation(msgActivateAdminNotAllowed)
	}

	if err := s.userRepository.UpdateUserStatus(userID, users_enums.UserStatusActive); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User activated: %s", user.Username),
		&activatedBy.ID,
		nil,
	)

	return nil
}

// ChangeUserRole grants or revokes an account wide role. Only the root admin
// may grant or revoke Administrator.
func (s *UserManagementService) ChangeUserRole(
	userID uuid.UUID,
	role users_enums.UserRole,
	isGranted bool,
	changedBy *users_models.User,
) error {
	if !changedBy.CanManageUsers() {
		return forbiddenUserOperation(msgChangeRoleNotAllowed)
	}

	if !role.IsValid() {
		return errors.New("invalid user role")
	}

	if userID == changedBy.ID {
		return errors.New("cannot change your own role")
	}

	user, err := s.getUserWithRoles(userID)
	if err != nil {
		return err
	}

	if role == users_enums.UserRoleAdministrator && changedBy.Username != RootAdminUsername {
		return forbiddenUserOperation(msgChangeAdminRoleNotAllowed)
	}

	if isGranted {
		err = s.userRoleRepository.AddRole(userID, role)
	} else {
		err = s.userRoleRepository.RemoveRole(userID, role)
	}
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	action := "revoked from"
	if isGranted {
		action = "granted to"
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Role %s %s %s", role, action, user.Username),
		&changedBy.ID,
		nil,
	)

	return nil
}

func (s *UserManagementService) getUserWithRoles(userID uuid.UUID) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors_utils.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	roles, err := s.userRoleRepository.GetRoles(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	user.Roles = roles

	return user, nil
}

func forbiddenUserOperation(message string) error {
	metrics.ForbiddenOperations.WithLabelValues("user").Inc()
	return errors_utils.NewForbiddenOperation(message)
}
