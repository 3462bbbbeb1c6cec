package users_controllers

import (
	"net/http"

	user_dto "taskboard/internal/features/users/dto"
	user_enums "taskboard/internal/features/users/enums"
	user_middleware "taskboard/internal/features/users/middleware"
	users_services "taskboard/internal/features/users/services"
	errors_utils "taskboard/internal/util/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementController struct {
	managementService *users_services.UserManagementService
}

// RegisterRoutes mounts account administration. Profiles stay readable by
// their owner; everything else needs the Administrator account role.
func (c *ManagementController) RegisterRoutes(router *gin.RouterGroup) {
	userRoutes := router.Group("/users")
	userRoutes.GET("/:id", c.GetUserProfile)

	adminRoutes := userRoutes.Group("", user_middleware.RequireRole(user_enums.UserRoleAdministrator))
	adminRoutes.GET("", c.GetUsers)
	adminRoutes.POST("/:id/deactivate", c.DeactivateUser)
	adminRoutes.POST("/:id/activate", c.ActivateUser)
	adminRoutes.PUT("/:id/role", c.ChangeUserRole)
}

// ListUsers
// @Summary List users
// @Description Registered accounts, newest first. Administrators only.
// @Tags user-management
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of items per page" default(20)
// @Param offset query int false "Page offset" default(0)
// @Param beforeDate query string false "Only users registered before this time (RFC3339)" format(date-time)
// @Success 200 {object} users_dto.ListUsersResponseDTO
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /users [get]
func (c *ManagementController) GetUsers(ctx *gin.Context) {
	user, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request := &user_dto.ListUsersRequestDTO{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	request.Normalize()

	users, total, err := c.managementService.GetUsers(user, request.Limit, request.Offset, request.BeforeDate)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	profiles := make([]user_dto.UserProfileResponseDTO, 0, len(users))
	for _, listed := range users {
		profiles = append(profiles, *users_services.ToUserProfileDTO(listed))
	}

	ctx.JSON(http.StatusOK, user_dto.ListUsersResponseDTO{
		Users:   profiles,
		Total:   total,
		HasMore: int64(request.Offset+len(profiles)) < total,
	})
}

// GetUserProfile
// @Summary Get user profile
// @Description Profile of a user. Users read their own, administrators read any.
// @Tags user-management
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Router /users/{id} [get]
func (c *ManagementController) GetUserProfile(ctx *gin.Context) {
	currentUser, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	user, err := c.managementService.GetUserProfile(userID, currentUser)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users_services.ToUserProfileDTO(user))
}

// DeactivateUser
// @Summary Deactivate user
// @Description Blocks sign in and revokes the refresh token of the account
// @Tags user-management
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /users/{id}/deactivate [post]
func (c *ManagementController) DeactivateUser(ctx *gin.Context) {
	currentUser, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	if err := c.managementService.DeactivateUser(ctx.Request.Context(), userID, currentUser); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}

// ActivateUser
// @Summary Activate user
// @Description Lets a deactivated account sign in again
// @Tags user-management
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /users/{id}/activate [post]
func (c *ManagementController) ActivateUser(ctx *gin.Context) {
	currentUser, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	if err := c.managementService.ActivateUser(userID, currentUser); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User activated"})
}

// ChangeUserRole
// @Summary Grant or revoke a user role
// @Description Grant or revoke an account wide role (admin only)
// @Tags user-management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body users_dto.ChangeUserRoleRequestDTO true "Role change data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /users/{id}/role [put]
func (c *ManagementController) ChangeUserRole(ctx *gin.Context) {
	currentUser, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	var request user_dto.ChangeUserRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role change request"})
		return
	}

	if err := c.managementService.ChangeUserRole(userID, request.Role, request.IsGranted, currentUser); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User role updated"})
}

func parseUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return uuid.Nil, false
	}

	return userID, true
}
