package items_repositories

import (
	"errors"
	"time"

	items_dto "taskboard/internal/features/items/dto"
	items_models "taskboard/internal/features/items/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository struct{}

func (r *CommentRepository) CreateComment(comment *items_models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	if comment.UpdatedAt.IsZero() {
		comment.UpdatedAt = comment.CreatedAt
	}

	return storage.GetDb().Create(comment).Error
}

// GetCommentByID returns nil, nil when the comment does not exist.
func (r *CommentRepository) GetCommentByID(commentID uuid.UUID) (*items_models.Comment, error) {
	var comment items_models.Comment

	err := storage.GetDb().Where("id = ?", commentID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &comment, nil
}

func (r *CommentRepository) GetCommentsByItem(itemID uuid.UUID) ([]*items_dto.CommentResponseDTO, error) {
	comments := make([]*items_dto.CommentResponseDTO, 0)

	err := storage.GetDb().
		Table("comments c").
		Select("c.id, c.item_id, c.author_user_id, u.username as author_username, c.text, c.created_at, c.updated_at").
		Joins("LEFT JOIN users u ON c.author_user_id = u.id").
		Where("c.item_id = ?", itemID).
		Order("c.created_at ASC").
		Scan(&comments).Error

	return comments, err
}

func (r *CommentRepository) UpdateComment(comment *items_models.Comment) error {
	return storage.GetDb().
		Model(&items_models.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]any{
			"text":       comment.Text,
			"updated_at": comment.UpdatedAt,
		}).Error
}

func (r *CommentRepository) DeleteComment(commentID uuid.UUID) error {
	return storage.GetDb().Where("id = ?", commentID).Delete(&items_models.Comment{}).Error
}
