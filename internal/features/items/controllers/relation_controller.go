package items_controllers

import (
	"net/http"

	items_dto "taskboard/internal/features/items/dto"
	items_services "taskboard/internal/features/items/services"
	users_middleware "taskboard/internal/features/users/middleware"
	errors_utils "taskboard/internal/util/errors"

	"github.com/gin-gonic/gin"
)

type RelationController struct {
	relationService *items_services.RelationService
}

func NewRelationController(relationService *items_services.RelationService) *RelationController {
	return &RelationController{relationService: relationService}
}

func (c *RelationController) RegisterRoutes(router *gin.RouterGroup) {
	relationRoutes := router.Group("/projects/:projectId/items/:itemId/relations")

	relationRoutes.GET("", c.GetRelations)
	relationRoutes.POST("", c.CreateRelation)
	relationRoutes.DELETE("/:relationId", c.DeleteRelation)
}

// GetRelations
// @Summary List item relations
// @Description List the parent, the children and the related items of an item
// @Tags relations
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} items_dto.ListRelationsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId}/relations [get]
func (c *RelationController) GetRelations(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	response, err := c.relationService.GetRelations(projectID, itemID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateRelation
// @Summary Relate two items
// @Tags relations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Param request body items_dto.CreateRelationRequestDTO true "Related item"
// @Success 200 {object} items_models.ItemRelation
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId}/relations [post]
func (c *RelationController) CreateRelation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	var request items_dto.CreateRelationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	relation, err := c.relationService.CreateRelation(projectID, itemID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, relation)
}

// DeleteRelation
// @Summary Remove item relation
// @Tags relations
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Param relationId path string true "Relation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId}/relations/{relationId} [delete]
func (c *RelationController) DeleteRelation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	relationID, ok := parseChildID(ctx, "relationId", "relation")
	if !ok {
		return
	}

	if err := c.relationService.DeleteRelation(projectID, itemID, relationID, user); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Relation deleted successfully"})
}
