package users_cleanup

import (
	"time"

	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/util/logger"
)

var refreshTokenCleanupBackgroundService = &RefreshTokenCleanupBackgroundService{
	remover:  users_services.GetRefreshTokenRepository(),
	interval: expiredTokensCleanupInterval,
	now:      func() time.Time { return time.Now().UTC() },
	logger:   logger.GetLogger(),
}

func GetRefreshTokenCleanupBackgroundService() *RefreshTokenCleanupBackgroundService {
	return refreshTokenCleanupBackgroundService
}
