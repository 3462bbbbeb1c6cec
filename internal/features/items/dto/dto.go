package items_dto

import (
	"time"

	items_models "taskboard/internal/features/items/models"
	"taskboard/internal/features/rules"

	"github.com/google/uuid"
)

// ItemRequestDTO carries the full editable state of an item. A zero status
// means New on creation.
type ItemRequestDTO struct {
	TypeID         items_models.ItemType `json:"typeId"         binding:"required"`
	Name           string                `json:"name"           binding:"required,min=1,max=255"`
	Description    string                `json:"description"    binding:"max=10000"`
	StatusID       rules.ItemStatus      `json:"statusId"`
	AssignedUserID *uuid.UUID            `json:"assignedUserId"`
	SprintID       *uuid.UUID            `json:"sprintId"`
	ParentID       *uuid.UUID            `json:"parentId"`
	Priority       int                   `json:"priority"       binding:"min=0,max=1000"`
	StoryPoints    *int                  `json:"storyPoints"    binding:"omitempty,min=0,max=1000"`
}

type ListItemsRequestDTO struct {
	SprintID string `form:"sprintId"`
	Backlog  bool   `form:"backlog"`
}

type ListItemsResponseDTO struct {
	Items []*items_models.WorkItem `json:"items"`
}

type CreateRelationRequestDTO struct {
	RelatedItemID uuid.UUID `json:"relatedItemId" binding:"required"`
}

// ItemRelationDTO describes a link seen from one item. Parent and child links
// come from the hierarchy and have no relation ID.
type ItemRelationDTO struct {
	ID              *uuid.UUID                `json:"id,omitempty"`
	RelatedItemID   uuid.UUID                 `json:"relatedItemId"`
	RelatedItemName string                    `json:"relatedItemName"`
	RelatedItemType items_models.ItemType     `json:"relatedItemType"`
	RelationType    items_models.RelationType `json:"relationType"`
}

type ListRelationsResponseDTO struct {
	Relations []ItemRelationDTO `json:"relations"`
}

type CommentRequestDTO struct {
	Text string `json:"text" binding:"required,min=1,max=10000"`
}

type CommentResponseDTO struct {
	ID             uuid.UUID `json:"id"             gorm:"column:id"`
	ItemID         uuid.UUID `json:"itemId"         gorm:"column:item_id"`
	AuthorUserID   uuid.UUID `json:"authorUserId"   gorm:"column:author_user_id"`
	AuthorUsername string    `json:"authorUsername" gorm:"column:author_username"`
	Text           string    `json:"text"           gorm:"column:text"`
	CreatedAt      time.Time `json:"createdAt"      gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updatedAt"      gorm:"column:updated_at"`
}

type ListCommentsResponseDTO struct {
	Comments []*CommentResponseDTO `json:"comments"`
}
