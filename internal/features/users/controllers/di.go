package users_controllers

import (
	users_services "taskboard/internal/features/users/services"

	"golang.org/x/time/rate"
)

// process wide ceiling on credential endpoints, on top of the per client
// Valkey buckets
const (
	credentialRps   = 3
	credentialBurst = 3
)

var userController = NewUserController(
	users_services.GetUserService(),
	rate.NewLimiter(rate.Limit(credentialRps), credentialBurst),
)

var managementController = &ManagementController{
	managementService: users_services.GetManagementService(),
}

func GetUserController() *UserController {
	return userController
}

func GetManagementController() *ManagementController {
	return managementController
}
