package items_services

import (
	"errors"
	"fmt"
	"time"

	"taskboard/internal/features/audit_logs"
	items_dto "taskboard/internal/features/items/dto"
	items_models "taskboard/internal/features/items/models"
	"taskboard/internal/features/rules"
	users_models "taskboard/internal/features/users/models"
	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
)

type RelationService struct {
	relationRepository RelationStore
	itemRepository     ItemStore
	itemService        *ItemService
	roleResolver       ProjectRoleResolver
	auditLogService    audit_logs.AuditLogWriter
}

func NewRelationService(
	relationRepository RelationStore,
	itemRepository ItemStore,
	itemService *ItemService,
	roleResolver ProjectRoleResolver,
	auditLogService audit_logs.AuditLogWriter,
) *RelationService {
	return &RelationService{
		relationRepository: relationRepository,
		itemRepository:     itemRepository,
		itemService:        itemService,
		roleResolver:       roleResolver,
		auditLogService:    auditLogService,
	}
}

// GetRelations lists the related items of an item together with its parent
// and children.
func (s *RelationService) GetRelations(
	projectID, itemID uuid.UUID,
	user *users_models.User,
) (*items_dto.ListRelationsResponseDTO, error) {
	item, err := s.itemService.GetItem(projectID, itemID, user)
	if err != nil {
		return nil, err
	}

	relations, err := s.relationRepository.GetRelationsForItem(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get relations: %w", err)
	}

	relatedIDs := make([]uuid.UUID, 0, len(relations)+1)
	for _, relation := range relations {
		relatedIDs = append(relatedIDs, relation.Other(itemID))
	}
	if item.ParentID != nil {
		relatedIDs = append(relatedIDs, *item.ParentID)
	}

	relatedItems, err := s.itemRepository.GetItemsByIDs(relatedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get related items: %w", err)
	}

	itemsByID := make(map[uuid.UUID]*items_models.WorkItem, len(relatedItems))
	for _, relatedItem := range relatedItems {
		itemsByID[relatedItem.ID] = relatedItem
	}

	result := make([]items_dto.ItemRelationDTO, 0, len(relatedIDs))

	if item.ParentID != nil {
		if parent, ok := itemsByID[*item.ParentID]; ok {
			result = append(result, toRelationDTO(nil, parent, items_models.RelationTypeParent))
		}
	}

	children, err := s.itemRepository.GetChildren(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child items: %w", err)
	}

	for _, child := range children {
		result = append(result, toRelationDTO(nil, child, items_models.RelationTypeChild))
	}

	for _, relation := range relations {
		relatedItem, ok := itemsByID[relation.Other(itemID)]
		if !ok {
			continue
		}

		relationID := relation.ID
		result = append(result, toRelationDTO(&relationID, relatedItem, items_models.RelationTypeRelated))
	}

	return &items_dto.ListRelationsResponseDTO{Relations: result}, nil
}

func (s *RelationService) CreateRelation(
	projectID, itemID uuid.UUID,
	request *items_dto.CreateRelationRequestDTO,
	user *users_models.User,
) (*items_models.ItemRelation, error) {
	if err := s.validateTeamMember(projectID, user); err != nil {
		return nil, err
	}

	if request.RelatedItemID == itemID {
		return nil, errors.New("an item cannot be related to itself")
	}

	item, err := s.itemService.GetProjectItem(projectID, itemID)
	if err != nil {
		return nil, err
	}

	relatedItem, err := s.itemService.GetProjectItem(projectID, request.RelatedItemID)
	if err != nil {
		return nil, err
	}

	existing, err := s.relationRepository.GetRelationBetween(item.ID, relatedItem.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get relation: %w", err)
	}

	if existing != nil {
		return nil, errors.New("items are already related")
	}

	relation := &items_models.ItemRelation{
		ID:           uuid.New(),
		FirstItemID:  item.ID,
		SecondItemID: relatedItem.ID,
		RelationType: items_models.RelationTypeRelated,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.relationRepository.CreateRelation(relation); err != nil {
		return nil, fmt.Errorf("failed to create relation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Items related: %s and %s", item.Name, relatedItem.Name),
		&user.ID,
		&projectID,
	)

	return relation, nil
}

func (s *RelationService) DeleteRelation(
	projectID, itemID, relationID uuid.UUID,
	user *users_models.User,
) error {
	if err := s.validateTeamMember(projectID, user); err != nil {
		return err
	}

	item, err := s.itemService.GetProjectItem(projectID, itemID)
	if err != nil {
		return err
	}

	relation, err := s.relationRepository.GetRelationByID(relationID)
	if err != nil {
		return fmt.Errorf("failed to get relation: %w", err)
	}

	if relation == nil || (relation.FirstItemID != item.ID && relation.SecondItemID != item.ID) {
		return errors_utils.NewNotFound("relation not found")
	}

	if err := s.relationRepository.DeleteRelation(relation.ID); err != nil {
		return fmt.Errorf("failed to delete relation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Item relation removed: %s", item.Name),
		&user.ID,
		&projectID,
	)

	return nil
}

func (s *RelationService) validateTeamMember(projectID uuid.UUID, user *users_models.User) error {
	role, err := s.roleResolver.GetMemberRole(projectID, user.ID)
	if err != nil {
		return err
	}

	return countForbidden("relation", rules.RequireTeamMember(role))
}

func toRelationDTO(
	relationID *uuid.UUID,
	relatedItem *items_models.WorkItem,
	relationType items_models.RelationType,
) items_dto.ItemRelationDTO {
	return items_dto.ItemRelationDTO{
		ID:              relationID,
		RelatedItemID:   relatedItem.ID,
		RelatedItemName: relatedItem.Name,
		RelatedItemType: relatedItem.TypeID,
		RelationType:    relationType,
	}
}
