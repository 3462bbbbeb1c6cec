package sprints_controllers

import (
	sprints_services "taskboard/internal/features/sprints/services"
)

var sprintController = NewSprintController(sprints_services.GetSprintService())

func GetSprintController() *SprintController {
	return sprintController
}
