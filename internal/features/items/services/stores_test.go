package items_services

import (
	"sort"
	"testing"

	items_dto "taskboard/internal/features/items/dto"
	items_models "taskboard/internal/features/items/models"
	projects_testing "taskboard/internal/features/projects/testing"
	"taskboard/internal/features/rules"
	sprints_models "taskboard/internal/features/sprints/models"
	users_models "taskboard/internal/features/users/models"
	users_testing "taskboard/internal/features/users/testing"
	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type inMemoryItemStore struct {
	items map[uuid.UUID]items_models.WorkItem
	// relations and comments are cleaned through the item store on delete
	relations *inMemoryRelationStore
	comments  *inMemoryCommentStore
}

func (s *inMemoryItemStore) CreateItem(item *items_models.WorkItem) error {
	s.items[item.ID] = *item
	return nil
}

func (s *inMemoryItemStore) GetItemByID(itemID uuid.UUID) (*items_models.WorkItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, nil
	}

	return &item, nil
}

func (s *inMemoryItemStore) GetItemsByIDs(itemIDs []uuid.UUID) ([]*items_models.WorkItem, error) {
	result := make([]*items_models.WorkItem, 0)
	for _, id := range itemIDs {
		if item, ok := s.items[id]; ok {
			result = append(result, &item)
		}
	}

	return result, nil
}

func (s *inMemoryItemStore) GetItemsByProject(
	projectID uuid.UUID,
	sprintID *uuid.UUID,
	backlogOnly bool,
) ([]*items_models.WorkItem, error) {
	result := make([]*items_models.WorkItem, 0)
	for _, item := range s.items {
		if item.ProjectID != projectID {
			continue
		}
		if sprintID != nil && (item.SprintID == nil || *item.SprintID != *sprintID) {
			continue
		}
		if sprintID == nil && backlogOnly && item.SprintID != nil {
			continue
		}
		result = append(result, &item)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

func (s *inMemoryItemStore) GetChildren(parentID uuid.UUID) ([]*items_models.WorkItem, error) {
	result := make([]*items_models.WorkItem, 0)
	for _, item := range s.items {
		if item.ParentID != nil && *item.ParentID == parentID {
			result = append(result, &item)
		}
	}

	return result, nil
}

func (s *inMemoryItemStore) UpdateItem(item *items_models.WorkItem) error {
	s.items[item.ID] = *item
	return nil
}

func (s *inMemoryItemStore) DeleteItem(itemID uuid.UUID) error {
	for id, item := range s.items {
		if item.ParentID != nil && *item.ParentID == itemID {
			item.ParentID = nil
			s.items[id] = item
		}
	}

	for id, relation := range s.relations.relations {
		if relation.FirstItemID == itemID || relation.SecondItemID == itemID {
			delete(s.relations.relations, id)
		}
	}

	for id, comment := range s.comments.comments {
		if comment.ItemID == itemID {
			delete(s.comments.comments, id)
		}
	}

	delete(s.items, itemID)
	return nil
}

func (s *inMemoryItemStore) DeleteItemsByProject(projectID uuid.UUID) error {
	for id, item := range s.items {
		if item.ProjectID == projectID {
			_ = s.DeleteItem(id)
		}
	}

	return nil
}

type inMemoryRelationStore struct {
	relations map[uuid.UUID]items_models.ItemRelation
}

func (s *inMemoryRelationStore) CreateRelation(relation *items_models.ItemRelation) error {
	s.relations[relation.ID] = *relation
	return nil
}

func (s *inMemoryRelationStore) GetRelationByID(relationID uuid.UUID) (*items_models.ItemRelation, error) {
	relation, ok := s.relations[relationID]
	if !ok {
		return nil, nil
	}

	return &relation, nil
}

func (s *inMemoryRelationStore) GetRelationBetween(
	firstItemID, secondItemID uuid.UUID,
) (*items_models.ItemRelation, error) {
	for _, relation := range s.relations {
		if (relation.FirstItemID == firstItemID && relation.SecondItemID == secondItemID) ||
			(relation.FirstItemID == secondItemID && relation.SecondItemID == firstItemID) {
			return &relation, nil
		}
	}

	return nil, nil
}

func (s *inMemoryRelationStore) GetRelationsForItem(itemID uuid.UUID) ([]*items_models.ItemRelation, error) {
	result := make([]*items_models.ItemRelation, 0)
	for _, relation := range s.relations {
		if relation.FirstItemID == itemID || relation.SecondItemID == itemID {
			result = append(result, &relation)
		}
	}

	return result, nil
}

func (s *inMemoryRelationStore) DeleteRelation(relationID uuid.UUID) error {
	delete(s.relations, relationID)
	return nil
}

type inMemoryCommentStore struct {
	comments map[uuid.UUID]items_models.Comment
}

func (s *inMemoryCommentStore) CreateComment(comment *items_models.Comment) error {
	s.comments[comment.ID] = *comment
	return nil
}

func (s *inMemoryCommentStore) GetCommentByID(commentID uuid.UUID) (*items_models.Comment, error) {
	comment, ok := s.comments[commentID]
	if !ok {
		return nil, nil
	}

	return &comment, nil
}

func (s *inMemoryCommentStore) GetCommentsByItem(itemID uuid.UUID) ([]*items_dto.CommentResponseDTO, error) {
	result := make([]*items_dto.CommentResponseDTO, 0)
	for _, comment := range s.comments {
		if comment.ItemID == itemID {
			result = append(result, &items_dto.CommentResponseDTO{
				ID:           comment.ID,
				ItemID:       comment.ItemID,
				AuthorUserID: comment.AuthorUserID,
				Text:         comment.Text,
				CreatedAt:    comment.CreatedAt,
				UpdatedAt:    comment.UpdatedAt,
			})
		}
	}

	return result, nil
}

func (s *inMemoryCommentStore) UpdateComment(comment *items_models.Comment) error {
	s.comments[comment.ID] = *comment
	return nil
}

func (s *inMemoryCommentStore) DeleteComment(commentID uuid.UUID) error {
	delete(s.comments, commentID)
	return nil
}

type staticSprintLookup map[uuid.UUID]sprints_models.Sprint

func (l staticSprintLookup) GetProjectSprint(projectID, sprintID uuid.UUID) (*sprints_models.Sprint, error) {
	sprint, ok := l[sprintID]
	if !ok || sprint.ProjectID != projectID {
		return nil, errors_utils.NewNotFound("sprint not found")
	}

	return &sprint, nil
}

type itemsFixture struct {
	env             *projects_testing.TestProjectEnv
	items           *inMemoryItemStore
	relations       *inMemoryRelationStore
	comments        *inMemoryCommentStore
	sprints         staticSprintLookup
	itemService     *ItemService
	relationService *RelationService
	commentService  *CommentService

	projectID    uuid.UUID
	otherProject uuid.UUID
	owner        *users_models.User
	scrumMaster  *users_models.User
	developer    *users_models.User
	teammate     *users_models.User
	observer     *users_models.User
}

func newItemsFixture(t *testing.T) *itemsFixture {
	env := projects_testing.NewTestProjectEnv(t)

	owner := users_testing.NewTestUser()
	projectID := env.CreateProject(t, "Board", owner)
	otherProject := env.CreateProject(t, "Other", owner)

	f := &itemsFixture{
		env:          env,
		relations:    &inMemoryRelationStore{relations: map[uuid.UUID]items_models.ItemRelation{}},
		comments:     &inMemoryCommentStore{comments: map[uuid.UUID]items_models.Comment{}},
		sprints:      staticSprintLookup{},
		projectID:    projectID,
		otherProject: otherProject,
		owner:        owner,
		scrumMaster:  users_testing.NewTestUser(),
		developer:    users_testing.NewTestUser(),
		teammate:     users_testing.NewTestUser(),
		observer:     users_testing.NewTestUser(),
	}
	f.items = &inMemoryItemStore{
		items:     map[uuid.UUID]items_models.WorkItem{},
		relations: f.relations,
		comments:  f.comments,
	}

	env.Memberships.AddMember(projectID, f.scrumMaster, rules.RoleScrumMaster)
	env.Memberships.AddMember(projectID, f.developer, rules.RoleDeveloper)
	env.Memberships.AddMember(projectID, f.teammate, rules.RoleDeveloper)
	env.Memberships.AddMember(projectID, f.observer, rules.RoleObserver)

	f.itemService = NewItemService(f.items, f.sprints, env.ProjectService, env.AuditLogs)
	f.relationService = NewRelationService(f.relations, f.items, f.itemService, env.ProjectService, env.AuditLogs)
	f.commentService = NewCommentService(f.comments, f.itemService, env.ProjectService, env.AuditLogs)

	return f
}

// seedItem stores an item directly, bypassing the rules.
func (f *itemsFixture) seedItem(
	projectID uuid.UUID,
	itemType items_models.ItemType,
	status rules.ItemStatus,
	assignee *users_models.User,
) *items_models.WorkItem {
	item := items_models.WorkItem{
		ID:          uuid.New(),
		ProjectID:   projectID,
		TypeID:      itemType,
		Name:        "item-" + uuid.NewString()[:8],
		StatusID:    status,
		CreatedByID: f.owner.ID,
	}
	if assignee != nil {
		assigneeID := assignee.ID
		item.AssignedUserID = &assigneeID
	}

	f.items.items[item.ID] = item
	return &item
}

func (f *itemsFixture) stored(t *testing.T, itemID uuid.UUID) items_models.WorkItem {
	item, ok := f.items.items[itemID]
	require.True(t, ok)
	return item
}

// requestFrom copies the editable state of an item into an update request.
func requestFrom(item *items_models.WorkItem) *items_dto.ItemRequestDTO {
	return &items_dto.ItemRequestDTO{
		TypeID:         item.TypeID,
		Name:           item.Name,
		Description:    item.Description,
		StatusID:       item.StatusID,
		AssignedUserID: item.AssignedUserID,
		SprintID:       item.SprintID,
		ParentID:       item.ParentID,
		Priority:       item.Priority,
		StoryPoints:    item.StoryPoints,
	}
}

func idOf(user *users_models.User) *uuid.UUID {
	id := user.ID
	return &id
}
