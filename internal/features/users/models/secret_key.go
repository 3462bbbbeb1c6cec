package users_models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const secretKeyBytes = 32

// SecretKey signs every access token. One row exists per installation.
type SecretKey struct {
	Secret    string    `gorm:"column:secret"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SecretKey) TableName() string {
	return "secret_keys"
}

func NewSecretKey() (*SecretKey, error) {
	raw := make([]byte, secretKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	return &SecretKey{
		Secret:    hex.EncodeToString(raw),
		CreatedAt: time.Now().UTC(),
	}, nil
}
