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
	"taskboard/internal/util/metrics"

	"github.com/google/uuid"
)

const msgCannotViewItems = "You are not a member of this project"

// maxHierarchyDepth bounds the parent walk when looking for cycles.
const maxHierarchyDepth = 64

type ItemService struct {
	itemRepository  ItemStore
	sprintLookup    SprintLookup
	roleResolver    ProjectRoleResolver
	auditLogService audit_logs.AuditLogWriter
}

func NewItemService(
	itemRepository ItemStore,
	sprintLookup SprintLookup,
	roleResolver ProjectRoleResolver,
	auditLogService audit_logs.AuditLogWriter,
) *ItemService {
	return &ItemService{
		itemRepository:  itemRepository,
		sprintLookup:    sprintLookup,
		roleResolver:    roleResolver,
		auditLogService: auditLogService,
	}
}

func (s *ItemService) GetItems(
	projectID uuid.UUID,
	request *items_dto.ListItemsRequestDTO,
	user *users_models.User,
) (*items_dto.ListItemsResponseDTO, error) {
	if err := validateCanView(s.roleResolver, projectID, user); err != nil {
		return nil, err
	}

	var sprintID *uuid.UUID
	if request.SprintID != "" {
		parsed, err := uuid.Parse(request.SprintID)
		if err != nil {
			return nil, errors.New("invalid sprint ID")
		}
		sprintID = &parsed
	}

	items, err := s.itemRepository.GetItemsByProject(projectID, sprintID, request.Backlog)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	return &items_dto.ListItemsResponseDTO{Items: items}, nil
}

func (s *ItemService) GetItem(projectID, itemID uuid.UUID, user *users_models.User) (*items_models.WorkItem, error) {
	if err := validateCanView(s.roleResolver, projectID, user); err != nil {
		return nil, err
	}

	return s.GetProjectItem(projectID, itemID)
}

// GetProjectItem loads an item and checks that it belongs to projectID.
func (s *ItemService) GetProjectItem(projectID, itemID uuid.UUID) (*items_models.WorkItem, error) {
	item, err := s.itemRepository.GetItemByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if item == nil || item.ProjectID != projectID {
		return nil, errors_utils.NewNotFound("item not found")
	}

	return item, nil
}

func (s *ItemService) CreateItem(
	projectID uuid.UUID,
	request *items_dto.ItemRequestDTO,
	user *users_models.User,
) (*items_models.WorkItem, error) {
	role, err := s.roleResolver.GetMemberRole(projectID, user.ID)
	if err != nil {
		return nil, err
	}

	status := request.StatusID
	if status == 0 {
		status = rules.ItemStatusNew
	}

	now := time.Now().UTC()
	item := &items_models.WorkItem{
		ID:             uuid.New(),
		ProjectID:      projectID,
		SprintID:       request.SprintID,
		ParentID:       request.ParentID,
		TypeID:         request.TypeID,
		Name:           strings.TrimSpace(request.Name),
		Description:    request.Description,
		StatusID:       status,
		AssignedUserID: request.AssignedUserID,
		Priority:       request.Priority,
		StoryPoints:    request.StoryPoints,
		CreatedByID:    user.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := countForbidden("item", rules.RequireTeamMember(role)); err != nil {
		return nil, err
	}

	if err := countForbidden("item", rules.CreateItemAccessValidation(item.State(), user.ID, role)); err != nil {
		return nil, err
	}

	if err := s.validateItemFields(projectID, item); err != nil {
		return nil, err
	}

	if err := s.validateParent(projectID, item); err != nil {
		return nil, err
	}

	if err := s.itemRepository.CreateItem(item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("%s created: %s", item.TypeID, item.Name),
		&user.ID,
		&projectID,
	)

	return item, nil
}

// UpdateItem replaces the editable state of an item. The team gate and the
// coarse edit check run first, then the assignment and status transitions
// are checked against the stored state.
func (s *ItemService) UpdateItem(
	projectID, itemID uuid.UUID,
	request *items_dto.ItemRequestDTO,
	user *users_models.User,
) (*items_models.WorkItem, error) {
	role, err := s.roleResolver.GetMemberRole(projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := countForbidden("item", rules.RequireTeamMember(role)); err != nil {
		return nil, err
	}

	existing, err := s.GetProjectItem(projectID, itemID)
	if err != nil {
		return nil, err
	}

	if err := countForbidden("item", rules.CanEditItem(existing.State(), user.ID, role)); err != nil {
		return nil, err
	}

	proposed := *existing
	proposed.SprintID = request.SprintID
	proposed.ParentID = request.ParentID
	proposed.TypeID = request.TypeID
	proposed.Name = strings.TrimSpace(request.Name)
	proposed.Description = request.Description
	proposed.AssignedUserID = request.AssignedUserID
	proposed.Priority = request.Priority
	proposed.StoryPoints = request.StoryPoints
	proposed.UpdatedAt = time.Now().UTC()
	if request.StatusID != 0 {
		proposed.StatusID = request.StatusID
	}

	assigningErr := rules.CheckCorrectAssigning(role, existing.State(), proposed.State(), user.ID)
	if err := countForbidden("item", assigningErr); err != nil {
		return nil, err
	}

	statusErr := rules.CheckCorrectStatuses(role, existing.State(), proposed.State(), user.ID)
	if err := countForbidden("item", statusErr); err != nil {
		return nil, err
	}

	if err := s.validateItemFields(projectID, &proposed); err != nil {
		return nil, err
	}

	if err := s.validateParent(projectID, &proposed); err != nil {
		return nil, err
	}

	if existing.TypeID == items_models.ItemTypeUserStory && proposed.TypeID != items_models.ItemTypeUserStory {
		children, err := s.itemRepository.GetChildren(itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to get child items: %w", err)
		}

		if len(children) > 0 {
			return nil, errors.New("an item with child items must remain a user story")
		}
	}

	if err := s.itemRepository.UpdateItem(&proposed); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("%s updated: %s", proposed.TypeID, proposed.Name),
		&user.ID,
		&projectID,
	)

	return &proposed, nil
}

// DeleteItem removes the item. Its children stay in the project without a
// parent.
func (s *ItemService) DeleteItem(projectID, itemID uuid.UUID, user *users_models.User) error {
	role, err := s.roleResolver.GetMemberRole(projectID, user.ID)
	if err != nil {
		return err
	}

	if err := countForbidden("item", rules.RequireTeamMember(role)); err != nil {
		return err
	}

	item, err := s.GetProjectItem(projectID, itemID)
	if err != nil {
		return err
	}

	if err := countForbidden("item", rules.CanDeleteItem(item.State(), user.ID, role)); err != nil {
		return err
	}

	if err := s.itemRepository.DeleteItem(item.ID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("%s deleted: %s", item.TypeID, item.Name),
		&user.ID,
		&projectID,
	)

	return nil
}

func (s *ItemService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	return s.itemRepository.DeleteItemsByProject(projectID)
}

func (s *ItemService) validateItemFields(projectID uuid.UUID, item *items_models.WorkItem) error {
	if item.Name == "" {
		return errors.New("item name is required")
	}

	if !item.TypeID.IsValid() {
		return errors.New("invalid item type")
	}

	if !item.StatusID.IsValid() {
		return errors.New("invalid item status")
	}

	if item.SprintID != nil {
		if _, err := s.sprintLookup.GetProjectSprint(projectID, *item.SprintID); err != nil {
			return err
		}
	}

	if item.AssignedUserID != nil {
		assigneeRole, err := s.roleResolver.GetMemberRole(projectID, *item.AssignedUserID)
		if err != nil {
			return err
		}

		if !rules.IsPartOfTeam(assigneeRole) {
			return errors.New("assignee must be a member of the project team")
		}
	}

	return nil
}

// validateParent checks the hierarchy link: only user stories hold children,
// user stories have no parent and the link never forms a cycle.
func (s *ItemService) validateParent(projectID uuid.UUID, item *items_models.WorkItem) error {
	if item.ParentID == nil {
		return nil
	}

	if *item.ParentID == item.ID {
		return errors.New("an item cannot be its own parent")
	}

	if item.TypeID == items_models.ItemTypeUserStory {
		return errors.New("a user story cannot have a parent")
	}

	parent, err := s.itemRepository.GetItemByID(*item.ParentID)
	if err != nil {
		return fmt.Errorf("failed to get parent item: %w", err)
	}

	if parent == nil || parent.ProjectID != projectID {
		return errors_utils.NewNotFound("parent item not found")
	}

	if parent.TypeID != items_models.ItemTypeUserStory {
		return errors.New("only a user story can be a parent")
	}

	ancestor := parent
	for range maxHierarchyDepth {
		if ancestor.ParentID == nil {
			return nil
		}

		if *ancestor.ParentID == item.ID {
			return errors.New("parent link would form a cycle")
		}

		ancestor, err = s.itemRepository.GetItemByID(*ancestor.ParentID)
		if err != nil {
			return fmt.Errorf("failed to get parent item: %w", err)
		}

		if ancestor == nil {
			return nil
		}
	}

	return errors.New("item hierarchy is too deep")
}

func validateCanView(roleResolver ProjectRoleResolver, projectID uuid.UUID, user *users_models.User) error {
	role, err := roleResolver.GetViewerRole(projectID, user)
	if err != nil {
		return err
	}

	if !rules.CanViewProject(role) {
		metrics.ForbiddenOperations.WithLabelValues("item").Inc()
		return errors_utils.NewForbiddenOperation(msgCannotViewItems)
	}

	return nil
}

func countForbidden(resource string, err error) error {
	if errors_utils.IsForbiddenOperation(err) {
		metrics.ForbiddenOperations.WithLabelValues(resource).Inc()
	}

	return err
}
