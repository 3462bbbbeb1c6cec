package audit_logs

import (
	"net/http"

	users_middleware "taskboard/internal/features/users/middleware"
	errors_utils "taskboard/internal/util/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditLogController struct {
	auditLogService *AuditLogService
}

func (c *AuditLogController) RegisterRoutes(router *gin.RouterGroup) {
	auditRoutes := router.Group("/audit-logs")

	auditRoutes.GET("/global", c.GetGlobalAuditLogs)
	auditRoutes.GET("/me", c.GetMyAuditLogs)
	auditRoutes.GET("/users/:userId", c.GetUserAuditLogs)
}

// GetGlobalAuditLogs
// @Summary Get global audit logs
// @Description Board events across every project. Administrators only.
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Param beforeDate query string false "Only events before this time (RFC3339)" format(date-time)
// @Param afterDate query string false "Only events after this time (RFC3339)" format(date-time)
// @Param search query string false "Case-insensitive message filter"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /audit-logs/global [get]
func (c *AuditLogController) GetGlobalAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request, ok := BindAuditLogsRequest(ctx)
	if !ok {
		return
	}

	response, err := c.auditLogService.GetGlobalAuditLogs(user, request)
	if err != nil {
		c.respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetMyAuditLogs
// @Summary Get own audit logs
// @Description Events performed by the signed-in user
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Param beforeDate query string false "Only events before this time (RFC3339)" format(date-time)
// @Param afterDate query string false "Only events after this time (RFC3339)" format(date-time)
// @Param search query string false "Case-insensitive message filter"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /audit-logs/me [get]
func (c *AuditLogController) GetMyAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request, ok := BindAuditLogsRequest(ctx)
	if !ok {
		return
	}

	response, err := c.auditLogService.GetUserAuditLogs(user.ID, user, request)
	if err != nil {
		c.respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetUserAuditLogs
// @Summary Get user audit logs
// @Description Events performed by a user. Non-administrators may only read their own.
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Param beforeDate query string false "Only events before this time (RFC3339)" format(date-time)
// @Param afterDate query string false "Only events after this time (RFC3339)" format(date-time)
// @Param search query string false "Case-insensitive message filter"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /audit-logs/users/{userId} [get]
func (c *AuditLogController) GetUserAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	request, ok := BindAuditLogsRequest(ctx)
	if !ok {
		return
	}

	response, err := c.auditLogService.GetUserAuditLogs(targetUserID, user, request)
	if err != nil {
		c.respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// BindAuditLogsRequest parses paging and filter parameters and answers 400
// when they are invalid.
func BindAuditLogsRequest(ctx *gin.Context) (*GetAuditLogsRequest, bool) {
	request := &GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return nil, false
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	return request, true
}

func (c *AuditLogController) respondWithError(ctx *gin.Context, err error) {
	if errors_utils.IsForbiddenOperation(err) {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	c.auditLogService.logger.Error("failed to read audit logs", "error", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit logs"})
}
