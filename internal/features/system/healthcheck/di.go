package system_healthcheck

import (
	"taskboard/internal/cache"
	"taskboard/internal/storage"
	"taskboard/internal/util/logger"
)

var healthcheckService = NewHealthcheckService(
	storage.GetDb,
	cache.GetCache,
	"/",
	logger.GetLogger(),
)
var healthcheckController = NewHealthcheckController(healthcheckService)

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
