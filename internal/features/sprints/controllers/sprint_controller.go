package sprints_controllers

import (
	"net/http"

	sprints_dto "taskboard/internal/features/sprints/dto"
	sprints_services "taskboard/internal/features/sprints/services"
	users_middleware "taskboard/internal/features/users/middleware"
	errors_utils "taskboard/internal/util/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SprintController struct {
	sprintService *sprints_services.SprintService
}

func NewSprintController(sprintService *sprints_services.SprintService) *SprintController {
	return &SprintController{sprintService: sprintService}
}

func (c *SprintController) RegisterRoutes(router *gin.RouterGroup) {
	sprintRoutes := router.Group("/projects/:projectId/sprints")

	sprintRoutes.GET("", c.GetSprints)
	sprintRoutes.POST("", c.CreateSprint)
	sprintRoutes.GET("/:sprintId", c.GetSprint)
	sprintRoutes.PUT("/:sprintId", c.UpdateSprint)
	sprintRoutes.DELETE("/:sprintId", c.DeleteSprint)
}

// GetSprints
// @Summary List project sprints
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} sprints_dto.ListSprintsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/{projectId}/sprints [get]
func (c *SprintController) GetSprints(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.sprintService.GetSprints(projectID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetSprint
// @Summary Get sprint
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Success 200 {object} sprints_models.Sprint
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/sprints/{sprintId} [get]
func (c *SprintController) GetSprint(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, sprintID, ok := parseSprintPath(ctx)
	if !ok {
		return
	}

	sprint, err := c.sprintService.GetSprint(projectID, sprintID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// CreateSprint
// @Summary Create sprint
// @Description Create a sprint (owner or scrum master)
// @Tags sprints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body sprints_dto.SprintRequestDTO true "Sprint data"
// @Success 200 {object} sprints_models.Sprint
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/{projectId}/sprints [post]
func (c *SprintController) CreateSprint(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request sprints_dto.SprintRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sprint, err := c.sprintService.CreateSprint(projectID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// UpdateSprint
// @Summary Update sprint
// @Tags sprints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Param request body sprints_dto.SprintRequestDTO true "Sprint data"
// @Success 200 {object} sprints_models.Sprint
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/sprints/{sprintId} [put]
func (c *SprintController) UpdateSprint(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, sprintID, ok := parseSprintPath(ctx)
	if !ok {
		return
	}

	var request sprints_dto.SprintRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sprint, err := c.sprintService.UpdateSprint(projectID, sprintID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// DeleteSprint
// @Summary Delete sprint
// @Description Delete a sprint, its items move back to the backlog
// @Tags sprints
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/sprints/{sprintId} [delete]
func (c *SprintController) DeleteSprint(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, sprintID, ok := parseSprintPath(ctx)
	if !ok {
		return
	}

	if err := c.sprintService.DeleteSprint(projectID, sprintID, user); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sprint deleted successfully"})
}

func parseSprintPath(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return uuid.Nil, uuid.Nil, false
	}

	sprintID, err := uuid.Parse(ctx.Param("sprintId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint ID"})
		return uuid.Nil, uuid.Nil, false
	}

	return projectID, sprintID, true
}
