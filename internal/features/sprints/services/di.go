package sprints_services

import (
	"taskboard/internal/features/audit_logs"
	projects_services "taskboard/internal/features/projects/services"
	sprints_repositories "taskboard/internal/features/sprints/repositories"
)

var sprintRepository = &sprints_repositories.SprintRepository{}

var sprintService = NewSprintService(
	sprintRepository,
	projects_services.GetProjectService(),
	audit_logs.GetAuditLogService(),
)

func GetSprintService() *SprintService {
	return sprintService
}
