package items_repositories

import (
	"errors"
	"time"

	items_models "taskboard/internal/features/items/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RelationRepository struct{}

func (r *RelationRepository) CreateRelation(relation *items_models.ItemRelation) error {
	if relation.ID == uuid.Nil {
		relation.ID = uuid.New()
	}
	if relation.CreatedAt.IsZero() {
		relation.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(relation).Error
}

// GetRelationByID returns nil, nil when the relation does not exist.
func (r *RelationRepository) GetRelationByID(relationID uuid.UUID) (*items_models.ItemRelation, error) {
	var relation items_models.ItemRelation

	err := storage.GetDb().Where("id = ?", relationID).First(&relation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &relation, nil
}

// GetRelationBetween finds the relation of an unordered item pair.
func (r *RelationRepository) GetRelationBetween(firstItemID, secondItemID uuid.UUID) (*items_models.ItemRelation, error) {
	var relation items_models.ItemRelation

	err := storage.GetDb().
		Where(
			"(first_item_id = ? AND second_item_id = ?) OR (first_item_id = ? AND second_item_id = ?)",
			firstItemID, secondItemID, secondItemID, firstItemID,
		).
		First(&relation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &relation, nil
}

func (r *RelationRepository) GetRelationsForItem(itemID uuid.UUID) ([]*items_models.ItemRelation, error) {
	relations := make([]*items_models.ItemRelation, 0)

	err := storage.GetDb().
		Where("first_item_id = ? OR second_item_id = ?", itemID, itemID).
		Order("created_at ASC").
		Find(&relations).Error

	return relations, err
}

func (r *RelationRepository) DeleteRelation(relationID uuid.UUID) error {
	return storage.GetDb().Where("id = ?", relationID).Delete(&items_models.ItemRelation{}).Error
}
