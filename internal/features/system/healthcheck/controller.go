package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func NewHealthcheckController(healthcheckService *HealthcheckService) *HealthcheckController {
	return &HealthcheckController{healthcheckService: healthcheckService}
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	systemRoutes := router.Group("/system")

	systemRoutes.GET("/health", c.CheckHealth)
	systemRoutes.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// CheckHealth
// @Summary Check system health
// @Description Ping the database and the cache and report host disk and memory usage
// @Tags system
// @Produce json
// @Success 200 {object} HealthcheckResponseDTO
// @Failure 503 {object} HealthcheckResponseDTO
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	response, err := c.healthcheckService.Check(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, response)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
