package items_repositories

import (
	"errors"
	"time"

	items_models "taskboard/internal/features/items/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository struct{}

func (r *ItemRepository) CreateItem(item *items_models.WorkItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}

	return storage.GetDb().Create(item).Error
}

// GetItemByID returns nil, nil when the item does not exist.
func (r *ItemRepository) GetItemByID(itemID uuid.UUID) (*items_models.WorkItem, error) {
	var item items_models.WorkItem

	err := storage.GetDb().Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &item, nil
}

func (r *ItemRepository) GetItemsByIDs(itemIDs []uuid.UUID) ([]*items_models.WorkItem, error) {
	items := make([]*items_models.WorkItem, 0, len(itemIDs))
	if len(itemIDs) == 0 {
		return items, nil
	}

	err := storage.GetDb().Where("id IN ?", itemIDs).Find(&items).Error

	return items, err
}

// GetItemsByProject lists project items. With sprintID only that sprint's
// items are returned, with backlogOnly only items outside any sprint.
func (r *ItemRepository) GetItemsByProject(
	projectID uuid.UUID,
	sprintID *uuid.UUID,
	backlogOnly bool,
) ([]*items_models.WorkItem, error) {
	items := make([]*items_models.WorkItem, 0)

	query := storage.GetDb().Where("project_id = ?", projectID)

	if sprintID != nil {
		query = query.Where("sprint_id = ?", *sprintID)
	} else if backlogOnly {
		query = query.Where("sprint_id IS NULL")
	}

	err := query.Order("priority DESC, created_at ASC").Find(&items).Error

	return items, err
}

func (r *ItemRepository) GetChildren(parentID uuid.UUID) ([]*items_models.WorkItem, error) {
	children := make([]*items_models.WorkItem, 0)

	err := storage.GetDb().
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&children).Error

	return children, err
}

func (r *ItemRepository) UpdateItem(item *items_models.WorkItem) error {
	return storage.GetDb().
		Model(&items_models.WorkItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"sprint_id":        item.SprintID,
			"parent_id":        item.ParentID,
			"type_id":          int(item.TypeID),
			"name":             item.Name,
			"description":      item.Description,
			"status_id":        int(item.StatusID),
			"assigned_user_id": item.AssignedUserID,
			"priority":         item.Priority,
			"story_points":     item.StoryPoints,
			"updated_at":       item.UpdatedAt,
		}).Error
}

// DeleteItem detaches the item's children and removes its relations and
// comments together with the item.
func (r *ItemRepository) DeleteItem(itemID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE items SET parent_id = NULL WHERE parent_id = ?", itemID).Error; err != nil {
			return err
		}

		err := tx.Where("first_item_id = ? OR second_item_id = ?", itemID, itemID).
			Delete(&items_models.ItemRelation{}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("item_id = ?", itemID).Delete(&items_models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", itemID).Delete(&items_models.WorkItem{}).Error
	})
}

func (r *ItemRepository) DeleteItemsByProject(projectID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		projectItems := tx.Model(&items_models.WorkItem{}).Select("id").Where("project_id = ?", projectID)

		err := tx.Where("first_item_id IN (?) OR second_item_id IN (?)", projectItems, projectItems).
			Delete(&items_models.ItemRelation{}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("item_id IN (?)", projectItems).Delete(&items_models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("UPDATE items SET parent_id = NULL WHERE project_id = ?", projectID).Error; err != nil {
			return err
		}

		return tx.Where("project_id = ?", projectID).Delete(&items_models.WorkItem{}).Error
	})
}
