package users_models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the single live refresh token of a user. user_id is unique,
// issuing a new token updates the row in place.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id"`
	TokenHash string    `gorm:"column:token_hash"`
	ExpireOn  time.Time `gorm:"column:expire_on"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpireOn)
}
