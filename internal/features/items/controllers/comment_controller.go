package items_controllers

import (
	"net/http"

	items_dto "taskboard/internal/features/items/dto"
	items_services "taskboard/internal/features/items/services"
	users_middleware "taskboard/internal/features/users/middleware"
	errors_utils "taskboard/internal/util/errors"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	commentService *items_services.CommentService
}

func NewCommentController(commentService *items_services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

func (c *CommentController) RegisterRoutes(router *gin.RouterGroup) {
	commentRoutes := router.Group("/projects/:projectId/items/:itemId/comments")

	commentRoutes.GET("", c.GetComments)
	commentRoutes.POST("", c.CreateComment)
	commentRoutes.PUT("/:commentId", c.UpdateComment)
	commentRoutes.DELETE("/:commentId", c.DeleteComment)
}

// GetComments
// @Summary List item comments
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} items_dto.ListCommentsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId}/comments [get]
func (c *CommentController) GetComments(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	response, err := c.commentService.GetComments(projectID, itemID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateComment
// @Summary Comment on item
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Param request body items_dto.CommentRequestDTO true "Comment"
// @Success 200 {object} items_models.Comment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId}/comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	var request items_dto.CommentRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	comment, err := c.commentService.CreateComment(projectID, itemID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

// UpdateComment
// @Summary Edit comment
// @Description Only the author can edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Param commentId path string true "Comment ID"
// @Param request body items_dto.CommentRequestDTO true "Comment"
// @Success 200 {object} items_models.Comment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId}/comments/{commentId} [put]
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	commentID, ok := parseChildID(ctx, "commentId", "comment")
	if !ok {
		return
	}

	var request items_dto.CommentRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	comment, err := c.commentService.UpdateComment(projectID, itemID, commentID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

// DeleteComment
// @Summary Delete comment
// @Tags comments
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param itemId path string true "Item ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/items/{itemId}/comments/{commentId} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, itemID, ok := parseItemPath(ctx)
	if !ok {
		return
	}

	commentID, ok := parseChildID(ctx, "commentId", "comment")
	if !ok {
		return
	}

	if err := c.commentService.DeleteComment(projectID, itemID, commentID, user); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
