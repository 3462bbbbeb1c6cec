package users_repositories

import (
	"errors"
	"sync"

	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/storage"

	"gorm.io/gorm"
)

type SecretKeyRepository struct {
	mu     sync.RWMutex
	cached string
}

// GetSecretKey returns the JWT signing secret, generating and storing one on
// first use.
func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	r.mu.RLock()
	if r.cached != "" {
		defer r.mu.RUnlock()
		return r.cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	secretKey := &users_models.SecretKey{}
	err := storage.GetDb().Order("created_at ASC").Take(secretKey).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		secretKey, err = users_models.NewSecretKey()
		if err != nil {
			return "", err
		}

		if err := storage.GetDb().Create(secretKey).Error; err != nil {
			return "", err
		}
	}

	r.cached = secretKey.Secret

	return r.cached, nil
}
