package users_middleware

import (
	"net/http"
	"strings"

	users_enums "taskboard/internal/features/users/enums"
	users_models "taskboard/internal/features/users/models"
	errors_utils "taskboard/internal/util/errors"

	"github.com/gin-gonic/gin"
)

// UserFromTokenResolver resolves the caller of an access token.
type UserFromTokenResolver interface {
	GetUserFromToken(token string) (*users_models.User, error)
}

// AuthMiddleware validates the access token and adds the user to context
func AuthMiddleware(resolver UserFromTokenResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ExtractBearerToken(ctx)
		if token == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			ctx.Abort()
			return
		}

		user, err := resolver.GetUserFromToken(token)
		if err != nil {
			if errors_utils.IsInvalidToken(err) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			} else {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			ctx.Abort()
			return
		}

		ctx.Set("user", user)
		ctx.Next()
	}
}

func RequireRole(requiredRole users_enums.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := GetUserFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			ctx.Abort()
			return
		}

		if !user.HasRole(requiredRole) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// ExtractBearerToken returns the Authorization header without the "Bearer " prefix.
func ExtractBearerToken(ctx *gin.Context) string {
	token := strings.TrimSpace(ctx.GetHeader("Authorization"))
	if len(token) > 7 && strings.EqualFold(token[:7], "Bearer ") {
		token = strings.TrimSpace(token[7:])
	}

	return token
}

// GetUserFromContext helper function to extract user from gin context
func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	userInterface, exists := ctx.Get("user")
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(*users_models.User)

	return user, ok
}
