package items_services

import (
	"taskboard/internal/features/audit_logs"
	items_repositories "taskboard/internal/features/items/repositories"
	projects_services "taskboard/internal/features/projects/services"
	sprints_services "taskboard/internal/features/sprints/services"
)

var itemRepository = &items_repositories.ItemRepository{}
var relationRepository = &items_repositories.RelationRepository{}
var commentRepository = &items_repositories.CommentRepository{}

var itemService = NewItemService(
	itemRepository,
	sprints_services.GetSprintService(),
	projects_services.GetProjectService(),
	audit_logs.GetAuditLogService(),
)

var relationService = NewRelationService(
	relationRepository,
	itemRepository,
	itemService,
	projects_services.GetProjectService(),
	audit_logs.GetAuditLogService(),
)

var commentService = NewCommentService(
	commentRepository,
	itemService,
	projects_services.GetProjectService(),
	audit_logs.GetAuditLogService(),
)

func GetItemService() *ItemService {
	return itemService
}

func GetRelationService() *RelationService {
	return relationService
}

func GetCommentService() *CommentService {
	return commentService
}
