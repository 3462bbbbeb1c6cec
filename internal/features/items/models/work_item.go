package items_models

import (
	"time"

	"taskboard/internal/features/rules"

	"github.com/google/uuid"
)

type WorkItem struct {
	ID             uuid.UUID        `json:"id"             gorm:"column:id"`
	ProjectID      uuid.UUID        `json:"projectId"      gorm:"column:project_id"`
	SprintID       *uuid.UUID       `json:"sprintId"       gorm:"column:sprint_id"`
	ParentID       *uuid.UUID       `json:"parentId"       gorm:"column:parent_id"`
	TypeID         ItemType         `json:"typeId"         gorm:"column:type_id"`
	Name           string           `json:"name"           gorm:"column:name"`
	Description    string           `json:"description"    gorm:"column:description"`
	StatusID       rules.ItemStatus `json:"statusId"       gorm:"column:status_id"`
	AssignedUserID *uuid.UUID       `json:"assignedUserId" gorm:"column:assigned_user_id"`
	Priority       int              `json:"priority"       gorm:"column:priority"`
	StoryPoints    *int             `json:"storyPoints"    gorm:"column:story_points"`
	CreatedByID    uuid.UUID        `json:"createdById"    gorm:"column:created_by_id"`
	CreatedAt      time.Time        `json:"createdAt"      gorm:"column:created_at"`
	UpdatedAt      time.Time        `json:"updatedAt"      gorm:"column:updated_at"`
}

func (WorkItem) TableName() string {
	return "items"
}

func (i *WorkItem) State() rules.ItemState {
	return rules.ItemState{
		StatusID:       i.StatusID,
		AssignedUserID: i.AssignedUserID,
	}
}

type ItemRelation struct {
	ID           uuid.UUID    `json:"id"           gorm:"column:id"`
	FirstItemID  uuid.UUID    `json:"firstItemId"  gorm:"column:first_item_id"`
	SecondItemID uuid.UUID    `json:"secondItemId" gorm:"column:second_item_id"`
	RelationType RelationType `json:"relationType" gorm:"column:relation_type"`
	CreatedAt    time.Time    `json:"createdAt"    gorm:"column:created_at"`
}

func (ItemRelation) TableName() string {
	return "item_relations"
}

// Other returns the item on the opposite end of the relation.
func (r *ItemRelation) Other(itemID uuid.UUID) uuid.UUID {
	if r.FirstItemID == itemID {
		return r.SecondItemID
	}

	return r.FirstItemID
}

type Comment struct {
	ID           uuid.UUID `json:"id"           gorm:"column:id"`
	ItemID       uuid.UUID `json:"itemId"       gorm:"column:item_id"`
	AuthorUserID uuid.UUID `json:"authorUserId" gorm:"column:author_user_id"`
	Text         string    `json:"text"         gorm:"column:text"`
	CreatedAt    time.Time `json:"createdAt"    gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    gorm:"column:updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) State() rules.CommentState {
	return rules.CommentState{AuthorUserID: c.AuthorUserID}
}
