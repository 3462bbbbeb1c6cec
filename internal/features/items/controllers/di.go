package items_controllers

import (
	items_services "taskboard/internal/features/items/services"
)

var itemController = NewItemController(items_services.GetItemService())
var relationController = NewRelationController(items_services.GetRelationService())
var commentController = NewCommentController(items_services.GetCommentService())

func GetItemController() *ItemController {
	return itemController
}

func GetRelationController() *RelationController {
	return relationController
}

func GetCommentController() *CommentController {
	return commentController
}
