package users_controllers

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	users_dto "taskboard/internal/features/users/dto"
	users_enums "taskboard/internal/features/users/enums"
	users_services "taskboard/internal/features/users/services"
	users_testing "taskboard/internal/features/users/testing"
	test_utils "taskboard/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenRoutesEnv struct {
	router   *gin.Engine
	tokens   *users_services.TokenService
	store    *users_testing.InMemoryRefreshTokenStore
	audit    *users_testing.AuditLogRecorder
	signedIn *users_services.IssuedTokens
}

func createTokenRoutesForTest(t *testing.T) *tokenRoutesEnv {
	user := users_testing.NewTestUser()
	store := users_testing.NewInMemoryRefreshTokenStore()
	audit := &users_testing.AuditLogRecorder{}

	tokens := users_services.NewTokenService(
		store,
		users_testing.StaticRoleNames{user.ID: {string(users_enums.UserRoleUser)}},
		users_testing.StaticSecretKey("controller-test-secret"),
		func() users_services.TokenSettings {
			return users_services.TokenSettings{
				Issuer:               "taskboard-test",
				AccessTokenLifetime:  time.Minute,
				RefreshTokenLifetime: time.Hour,
			}
		},
		slog.Default(),
	)

	service := users_services.NewUserService(nil, nil, tokens, slog.Default())
	service.SetAuditLogWriter(audit)

	signedIn, err := tokens.IssueTokens(context.Background(), user)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewUserController(service, nil).RegisterRoutes(router.Group("/api/v1"))

	return &tokenRoutesEnv{
		router:   router,
		tokens:   tokens,
		store:    store,
		audit:    audit,
		signedIn: signedIn,
	}
}

func Test_RefreshToken_ViaAPI_ReturnsNewTokenForSameUser(t *testing.T) {
	env := createTokenRoutesForTest(t)

	var response users_dto.RefreshTokenResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		env.router,
		"/api/v1/users/refresh-token",
		"",
		users_dto.RefreshTokenRequestDTO{
			Token:        env.signedIn.AccessToken,
			RefreshToken: env.signedIn.RefreshToken,
		},
		http.StatusOK,
		&response,
	)

	before, err := env.tokens.GetPrincipalFromToken(env.signedIn.AccessToken, true)
	require.NoError(t, err)
	after, err := env.tokens.GetPrincipalFromToken(response.Token, true)
	require.NoError(t, err)

	assert.NotEqual(t, before.TokenID, after.TokenID)
	assert.Equal(t, before.UserID, after.UserID)
	assert.Equal(t, before.Subject, after.Subject)
	assert.NotEqual(t, env.signedIn.RefreshToken, response.RefreshToken)
}

func Test_RefreshToken_ViaAPI_ReusingOldRefreshToken_Returns401(t *testing.T) {
	env := createTokenRoutesForTest(t)
	request := users_dto.RefreshTokenRequestDTO{
		Token:        env.signedIn.AccessToken,
		RefreshToken: env.signedIn.RefreshToken,
	}

	test_utils.MakePostRequest(t, env.router, "/api/v1/users/refresh-token", "", request, http.StatusOK)
	test_utils.MakePostRequest(t, env.router, "/api/v1/users/refresh-token", "", request, http.StatusUnauthorized)
}

func Test_RefreshToken_ViaAPI_WithoutRefreshToken_Returns400(t *testing.T) {
	env := createTokenRoutesForTest(t)

	test_utils.MakePostRequest(
		t,
		env.router,
		"/api/v1/users/refresh-token",
		"",
		map[string]string{"token": env.signedIn.AccessToken},
		http.StatusBadRequest,
	)
}

func Test_SignOut_ViaAPI_RevokesRefreshToken(t *testing.T) {
	env := createTokenRoutesForTest(t)

	test_utils.MakePostRequest(
		t,
		env.router,
		"/api/v1/users/signout",
		"Bearer "+env.signedIn.AccessToken,
		nil,
		http.StatusOK,
	)
	assert.Len(t, env.audit.Messages, 1)

	test_utils.MakePostRequest(
		t,
		env.router,
		"/api/v1/users/refresh-token",
		"",
		users_dto.RefreshTokenRequestDTO{
			Token:        env.signedIn.AccessToken,
			RefreshToken: env.signedIn.RefreshToken,
		},
		http.StatusUnauthorized,
	)
}

func Test_SignOut_ViaAPI_WithoutBearerToken_Returns401(t *testing.T) {
	env := createTokenRoutesForTest(t)

	test_utils.MakePostRequest(t, env.router, "/api/v1/users/signout", "", nil, http.StatusUnauthorized)
	assert.Equal(t, 1, env.store.Creates)
}
