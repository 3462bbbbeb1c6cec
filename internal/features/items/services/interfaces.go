package items_services

import (
	items_dto "taskboard/internal/features/items/dto"
	items_models "taskboard/internal/features/items/models"
	"taskboard/internal/features/rules"
	sprints_models "taskboard/internal/features/sprints/models"
	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

// Single-row getters of the stores return nil, nil when the row is missing.

type ItemStore interface {
	CreateItem(item *items_models.WorkItem) error
	GetItemByID(itemID uuid.UUID) (*items_models.WorkItem, error)
	GetItemsByIDs(itemIDs []uuid.UUID) ([]*items_models.WorkItem, error)
	GetItemsByProject(projectID uuid.UUID, sprintID *uuid.UUID, backlogOnly bool) ([]*items_models.WorkItem, error)
	GetChildren(parentID uuid.UUID) ([]*items_models.WorkItem, error)
	UpdateItem(item *items_models.WorkItem) error
	DeleteItem(itemID uuid.UUID) error
	DeleteItemsByProject(projectID uuid.UUID) error
}

type RelationStore interface {
	CreateRelation(relation *items_models.ItemRelation) error
	GetRelationByID(relationID uuid.UUID) (*items_models.ItemRelation, error)
	GetRelationBetween(firstItemID, secondItemID uuid.UUID) (*items_models.ItemRelation, error)
	GetRelationsForItem(itemID uuid.UUID) ([]*items_models.ItemRelation, error)
	DeleteRelation(relationID uuid.UUID) error
}

type CommentStore interface {
	CreateComment(comment *items_models.Comment) error
	GetCommentByID(commentID uuid.UUID) (*items_models.Comment, error)
	GetCommentsByItem(itemID uuid.UUID) ([]*items_dto.CommentResponseDTO, error)
	UpdateComment(comment *items_models.Comment) error
	DeleteComment(commentID uuid.UUID) error
}

// SprintLookup fails with a not found error when the sprint is not part of
// the project.
type SprintLookup interface {
	GetProjectSprint(projectID, sprintID uuid.UUID) (*sprints_models.Sprint, error)
}

type ProjectRoleResolver interface {
	GetMemberRole(projectID, userID uuid.UUID) (rules.Role, error)
	GetViewerRole(projectID uuid.UUID, user *users_models.User) (rules.Role, error)
}
