package projects_controllers

import (
	projects_services "taskboard/internal/features/projects/services"
)

var projectController = NewProjectController(projects_services.GetProjectService())

var membershipController = NewMembershipController(projects_services.GetMembershipService())

func GetProjectController() *ProjectController {
	return projectController
}

func GetMembershipController() *MembershipController {
	return membershipController
}
