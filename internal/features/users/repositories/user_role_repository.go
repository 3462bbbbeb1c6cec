package users_repositories

import (
	"context"

	users_enums "taskboard/internal/features/users/enums"
	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type UserRoleRepository struct{}

func (r *UserRoleRepository) GetRoles(userID uuid.UUID) ([]users_enums.UserRole, error) {
	var assignments []users_models.UserRoleAssignment

	if err := storage.GetDb().
		Where("user_id = ?", userID).
		Order("role_name ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	roles := make([]users_enums.UserRole, 0, len(assignments))
	for _, assignment := range assignments {
		roles = append(roles, assignment.RoleName)
	}

	return roles, nil
}

func (r *UserRoleRepository) GetRoleNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string

	err := storage.GetDb().WithContext(ctx).
		Model(&users_models.UserRoleAssignment{}).
		Where("user_id = ?", userID).
		Order("role_name ASC").
		Pluck("role_name", &names).Error
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *UserRoleRepository) AddRole(userID uuid.UUID, role users_enums.UserRole) error {
	return storage.GetDb().
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&users_models.UserRoleAssignment{UserID: userID, RoleName: role}).Error
}

func (r *UserRoleRepository) RemoveRole(userID uuid.UUID, role users_enums.UserRole) error {
	return storage.GetDb().
		Where("user_id = ? AND role_name = ?", userID, role).
		Delete(&users_models.UserRoleAssignment{}).Error
}

func (r *UserRoleRepository) CountUsersWithRole(role users_enums.UserRole) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&users_models.UserRoleAssignment{}).
		Where("role_name = ?", role).
		Count(&count).Error

	return count, err
}
