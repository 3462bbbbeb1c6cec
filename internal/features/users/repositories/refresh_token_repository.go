package users_repositories

import (
	"context"
	"errors"
	"time"

	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefreshTokenRepository struct{}

func (r *RefreshTokenRepository) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*users_models.RefreshToken, error) {
	var token users_models.RefreshToken

	err := storage.GetDb().WithContext(ctx).
		Where("user_id = ?", userID).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &token, nil
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *users_models.RefreshToken) error {
	return storage.GetDb().WithContext(ctx).Create(token).Error
}

func (r *RefreshTokenRepository) Update(ctx context.Context, token *users_models.RefreshToken) error {
	return storage.GetDb().WithContext(ctx).
		Model(&users_models.RefreshToken{}).
		Where("id = ?", token.ID).
		Updates(map[string]any{
			"token_hash": token.TokenHash,
			"expire_on":  token.ExpireOn,
		}).Error
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return storage.GetDb().WithContext(ctx).
		Where("id = ?", id).
		Delete(&users_models.RefreshToken{}).Error
}

// DeleteExpired removes every token whose expiry is not after now.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := storage.GetDb().WithContext(ctx).
		Where("expire_on <= ?", now).
		Delete(&users_models.RefreshToken{})

	return result.RowsAffected, result.Error
}
