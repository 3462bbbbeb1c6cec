package projects_services

import (
	"taskboard/internal/cache"
	"taskboard/internal/features/audit_logs"
	projects_models "taskboard/internal/features/projects/models"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_services "taskboard/internal/features/users/services"
	cache_utils "taskboard/internal/util/cache"
	"taskboard/internal/util/logger"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}

var projectService = NewProjectService(
	projectRepository,
	membershipRepository,
	audit_logs.GetAuditLogService(),
	audit_logs.GetAuditLogService(),
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache, "tb_project:"),
	logger.GetLogger(),
)

var membershipService = NewMembershipService(
	membershipRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	projectService,
)

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}

func GetMembershipRepository() *projects_repositories.MembershipRepository {
	return membershipRepository
}
