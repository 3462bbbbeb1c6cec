package users_services

import (
	"taskboard/internal/config"
	users_repositories "taskboard/internal/features/users/repositories"
	"taskboard/internal/util/logger"
)

var secretKeyRepository = &users_repositories.SecretKeyRepository{}
var userRepository = &users_repositories.UserRepository{}
var userRoleRepository = &users_repositories.UserRoleRepository{}
var refreshTokenRepository = &users_repositories.RefreshTokenRepository{}

var tokenService = NewTokenService(
	refreshTokenRepository,
	userRoleRepository,
	secretKeyRepository,
	getTokenSettings,
	logger.GetLogger(),
)

var userService = NewUserService(
	userRepository,
	userRoleRepository,
	tokenService,
	logger.GetLogger(),
)

var managementService = &UserManagementService{
	userRepository:     userRepository,
	userRoleRepository: userRoleRepository,
	tokenService:       tokenService,
}

func GetUserService() *UserService {
	return userService
}

func GetManagementService() *UserManagementService {
	return managementService
}

func GetTokenService() *TokenService {
	return tokenService
}

func GetRefreshTokenRepository() *users_repositories.RefreshTokenRepository {
	return refreshTokenRepository
}

func getTokenSettings() TokenSettings {
	env := config.GetEnv()

	return TokenSettings{
		Issuer:               env.JwtIssuer,
		AccessTokenLifetime:  env.AccessTokenLifetime,
		RefreshTokenLifetime: env.RefreshTokenLifetime,
	}
}
