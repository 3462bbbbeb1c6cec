package items_controllers

import (
	"net/http"

	items_dto "taskboard/internal/features/items/dto"
	items_services "taskboard/internal/features/items/services"
	users_middleware "taskboard/internal/features/users/middleware"
	errors_utils "taskboard/internal/util/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemController struct {
	itemService *items_services.ItemService
}

func NewItemController(itemService *items_services.ItemService) *ItemController {
	return &ItemController{itemService: itemService}
}

func (c *ItemController) RegisterRoutes(router *gin.RouterGroup) {
	itemRoutes := router.Group("/projects/:projectId/items")

	itemRoutes.GET("", c.GetItems)
	itemRoutes.POST("", c.CreateItem)
	itemRoutes.GET("/:itemId", c.GetItem)
	itemRoutes.PUT("/:itemId", c.UpdateItem)
	itemRoutes.DELETE("/:itemId", c.DeleteItem)
}

// GetItems
// @Summary List project items
// @Description List the items of a project, optionally filtered by sprint or limited to the backlog
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param sprintId query string false "Sprint ID"
// @Param backlog query bool false "Only items without a sprint"
// @Success 200 {object} items_dto.ListItemsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/{projectId}/items [get]
func (c *ItemController) GetItems(ctx *gin.Context) {
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

	var request items_dto.ListItemsRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.itemService.GetItems(projectID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetItem
// @Summary Get item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} items_models.WorkItem
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId} [get]
func (c *ItemController) GetItem(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	item, err := c.itemService.GetItem(projectID, itemID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// CreateItem
// @Summary Create item
// @Description Create a user story, task, bug or test. Developers may only create new unassigned items or items assigned to themselves
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body items_dto.ItemRequestDTO true "Item data"
// @Success 200 {object} items_models.WorkItem
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items [post]
func (c *ItemController) CreateItem(ctx *gin.Context) {
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

	var request items_dto.ItemRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := c.itemService.CreateItem(projectID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// UpdateItem
// @Summary Update item
// @Description Replace the editable state of an item. Assignment and status changes are checked against the caller's role
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Param request body items_dto.ItemRequestDTO true "Item data"
// @Success 200 {object} items_models.WorkItem
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId} [put]
func (c *ItemController) UpdateItem(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	var request items_dto.ItemRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := c.itemService.UpdateItem(projectID, itemID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// DeleteItem
// @Summary Delete item
// @Tags items
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId} [delete]
func (c *ItemController) DeleteItem(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	if err := c.itemService.DeleteItem(projectID, itemID, user); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func parseItemPath(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return uuid.Nil, uuid.Nil, false
	}

	itemID, err := uuid.Parse(ctx.Param("itemId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return uuid.Nil, uuid.Nil, false
	}

	return projectID, itemID, true
}

func parseChildID(ctx *gin.Context, param string, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return uuid.Nil, false
	}

	return id, true
}
