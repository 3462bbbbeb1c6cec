package items_services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/features/audit_logs"
	items_dto "taskboard/internal/features/items/dto"
	items_models "taskboard/internal/features/items/models"
	"taskboard/internal/features/rules"
	users_models "taskboard/internal/features/users/models"
	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
)

type CommentService struct {
	commentRepository CommentStore
	itemService       *ItemService
	roleResolver      ProjectRoleResolver
	auditLogService   audit_logs.AuditLogWriter
}

func NewCommentService(
	commentRepository CommentStore,
	itemService *ItemService,
	roleResolver ProjectRoleResolver,
	auditLogService audit_logs.AuditLogWriter,
) *CommentService {
	return &CommentService{
		commentRepository: commentRepository,
		itemService:       itemService,
		roleResolver:      roleResolver,
		auditLogService:   auditLogService,
	}
}

func (s *CommentService) GetComments(
	projectID, itemID uuid.UUID,
	user *users_models.User,
) (*items_dto.ListCommentsResponseDTO, error) {
	if _, err := s.itemService.GetItem(projectID, itemID, user); err != nil {
		return nil, err
	}

	comments, err := s.commentRepository.GetCommentsByItem(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return &items_dto.ListCommentsResponseDTO{Comments: comments}, nil
}

func (s *CommentService) CreateComment(
	projectID, itemID uuid.UUID,
	request *items_dto.CommentRequestDTO,
	user *users_models.User,
) (*items_models.Comment, error) {
	role, err := s.roleResolver.GetMemberRole(projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := countForbidden("comment", rules.RequireTeamMember(role)); err != nil {
		return nil, err
	}

	item, err := s.itemService.GetProjectItem(projectID, itemID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, errors.New("comment text is required")
	}

	now := time.Now().UTC()
	comment := &items_models.Comment{
		ID:           uuid.New(),
		ItemID:       item.ID,
		AuthorUserID: user.ID,
		Text:         text,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.commentRepository.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Comment added to %s", item.Name),
		&user.ID,
		&projectID,
	)

	return comment, nil
}

func (s *CommentService) UpdateComment(
	projectID, itemID, commentID uuid.UUID,
	request *items_dto.CommentRequestDTO,
	user *users_models.User,
) (*items_models.Comment, error) {
	role, err := s.roleResolver.GetMemberRole(projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if !rules.CanViewProject(role) {
		return nil, countForbidden("comment", errors_utils.NewForbiddenOperation(msgCannotViewItems))
	}

	comment, err := s.getItemComment(projectID, itemID, commentID)
	if err != nil {
		return nil, err
	}

	if err := countForbidden("comment", rules.CanEditComment(comment.State(), user.ID)); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, errors.New("comment text is required")
	}

	comment.Text = text
	comment.UpdatedAt = time.Now().UTC()

	if err := s.commentRepository.UpdateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

func (s *CommentService) DeleteComment(
	projectID, itemID, commentID uuid.UUID,
	user *users_models.User,
) error {
	role, err := s.roleResolver.GetMemberRole(projectID, user.ID)
	if err != nil {
		return err
	}

	comment, err := s.getItemComment(projectID, itemID, commentID)
	if err != nil {
		return err
	}

	if err := countForbidden("comment", rules.CanDeleteComment(comment.State(), user.ID, role)); err != nil {
		return err
	}

	if err := s.commentRepository.DeleteComment(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.auditLogService.WriteAuditLog("Comment deleted", &user.ID, &projectID)

	return nil
}

func (s *CommentService) getItemComment(projectID, itemID, commentID uuid.UUID) (*items_models.Comment, error) {
	item, err := s.itemService.GetProjectItem(projectID, itemID)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepository.GetCommentByID(commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if comment == nil || comment.ItemID != item.ID {
		return nil, errors_utils.NewNotFound("comment not found")
	}

	return comment, nil
}
