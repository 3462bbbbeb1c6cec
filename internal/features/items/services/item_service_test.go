package items_services

import (
	"testing"
	"time"

	items_dto "taskboard/internal/features/items/dto"
	items_models "taskboard/internal/features/items/models"
	"taskboard/internal/features/rules"
	sprints_models "taskboard/internal/features/sprints/models"
	users_enums "taskboard/internal/features/users/enums"
	users_testing "taskboard/internal/features/users/testing"
	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateItem_AsDeveloperUnassignedNew_Succeeds(t *testing.T) {
	f := newItemsFixture(t)

	item, err := f.itemService.CreateItem(
		f.projectID,
		&items_dto.ItemRequestDTO{TypeID: items_models.ItemTypeTask, Name: "Write tests"},
		f.developer,
	)

	require.NoError(t, err)
	assert.Equal(t, rules.ItemStatusNew, item.StatusID)
	assert.Equal(t, f.developer.ID, item.CreatedByID)
	assert.Contains(t, f.items.items, item.ID)
}

func Test_CreateItem_AsDeveloperAssignedToSelfInProgress_Succeeds(t *testing.T) {
	f := newItemsFixture(t)

	_, err := f.itemService.CreateItem(
		f.projectID,
		&items_dto.ItemRequestDTO{
			TypeID:         items_models.ItemTypeBug,
			Name:           "Crash on save",
			StatusID:       rules.ItemStatusActive,
			AssignedUserID: idOf(f.developer),
		},
		f.developer,
	)

	assert.NoError(t, err)
}

func Test_CreateItem_AsDeveloperAssignedToTeammate_ReturnsForbidden(t *testing.T) {
	f := newItemsFixture(t)

	_, err := f.itemService.CreateItem(
		f.projectID,
		&items_dto.ItemRequestDTO{
			TypeID:         items_models.ItemTypeTask,
			Name:           "Hand over",
			AssignedUserID: idOf(f.teammate),
		},
		f.developer,
	)

	require.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Equal(t, rules.MsgCreateItemNotAllowed, err.Error())
	assert.Empty(t, f.items.items)
}

func Test_CreateItem_AsObserver_ReturnsForbidden(t *testing.T) {
	f := newItemsFixture(t)

	_, err := f.itemService.CreateItem(
		f.projectID,
		&items_dto.ItemRequestDTO{TypeID: items_models.ItemTypeTask, Name: "Peek"},
		f.observer,
	)

	require.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Equal(t, rules.MsgNotPartOfTeam, err.Error())
}

func Test_CreateItem_AsScrumMasterAssignedToObserver_ReturnsError(t *testing.T) {
	f := newItemsFixture(t)

	_, err := f.itemService.CreateItem(
		f.projectID,
		&items_dto.ItemRequestDTO{
			TypeID:         items_models.ItemTypeTask,
			Name:           "Review",
			AssignedUserID: idOf(f.observer),
		},
		f.scrumMaster,
	)

	assert.EqualError(t, err, "assignee must be a member of the project team")
}

func Test_CreateItem_WithSprintOfAnotherProject_ReturnsNotFound(t *testing.T) {
	f := newItemsFixture(t)
	sprintID := uuid.New()
	f.sprints[sprintID] = sprints_models.Sprint{ID: sprintID, ProjectID: f.otherProject}

	_, err := f.itemService.CreateItem(
		f.projectID,
		&items_dto.ItemRequestDTO{TypeID: items_models.ItemTypeTask, Name: "Misplaced", SprintID: &sprintID},
		f.owner,
	)

	assert.True(t, errors_utils.IsNotFound(err))
}

func Test_CreateItem_WithInvalidType_ReturnsError(t *testing.T) {
	f := newItemsFixture(t)

	_, err := f.itemService.CreateItem(
		f.projectID,
		&items_dto.ItemRequestDTO{TypeID: 9, Name: "Unknown"},
		f.owner,
	)

	assert.EqualError(t, err, "invalid item type")
}

func Test_CreateItem_UnderUserStory_SetsParent(t *testing.T) {
	f := newItemsFixture(t)
	story := f.seedItem(f.projectID, items_models.ItemTypeUserStory, rules.ItemStatusNew, nil)

	task, err := f.itemService.CreateItem(
		f.projectID,
		&items_dto.ItemRequestDTO{TypeID: items_models.ItemTypeTask, Name: "Subtask", ParentID: &story.ID},
		f.developer,
	)

	require.NoError(t, err)
	assert.Equal(t, story.ID, *task.ParentID)
}

func Test_CreateItem_WithInvalidParent_ReturnsError(t *testing.T) {
	testCases := []struct {
		name       string
		itemType   items_models.ItemType
		parentType items_models.ItemType
		sameProj   bool
		expected   string
	}{
		{"story under story", items_models.ItemTypeUserStory, items_models.ItemTypeUserStory, true, "a user story cannot have a parent"},
		{"task under task", items_models.ItemTypeTask, items_models.ItemTypeTask, true, "only a user story can be a parent"},
		{"bug under bug", items_models.ItemTypeBug, items_models.ItemTypeBug, true, "only a user story can be a parent"},
		{"parent in other project", items_models.ItemTypeTask, items_models.ItemTypeUserStory, false, "parent item not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newItemsFixture(t)
			parentProject := f.projectID
			if !tc.sameProj {
				parentProject = f.otherProject
			}
			parent := f.seedItem(parentProject, tc.parentType, rules.ItemStatusNew, nil)

			_, err := f.itemService.CreateItem(
				f.projectID,
				&items_dto.ItemRequestDTO{TypeID: tc.itemType, Name: "Child", ParentID: &parent.ID},
				f.owner,
			)

			assert.EqualError(t, err, tc.expected)
		})
	}
}

func Test_UpdateItem_DeveloperWorkflow_FollowsRoleRules(t *testing.T) {
	f := newItemsFixture(t)
	item := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	// claim the new unassigned item
	request := requestFrom(item)
	request.AssignedUserID = idOf(f.developer)
	_, err := f.itemService.UpdateItem(f.projectID, item.ID, request, f.developer)
	require.NoError(t, err)

	// move it forward
	request.StatusID = rules.ItemStatusActive
	_, err = f.itemService.UpdateItem(f.projectID, item.ID, request, f.developer)
	require.NoError(t, err)

	// never back to New
	request.StatusID = rules.ItemStatusNew
	_, err = f.itemService.UpdateItem(f.projectID, item.ID, request, f.developer)
	require.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Equal(t, rules.MsgStatusChangeNotAllowed, err.Error())

	// no handing over to a teammate
	request.StatusID = rules.ItemStatusActive
	request.AssignedUserID = idOf(f.teammate)
	_, err = f.itemService.UpdateItem(f.projectID, item.ID, request, f.developer)
	require.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Equal(t, rules.MsgAssigningNotAllowed, err.Error())

	// the teammate cannot touch it at all
	request.AssignedUserID = idOf(f.teammate)
	_, err = f.itemService.UpdateItem(f.projectID, item.ID, request, f.teammate)
	require.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Equal(t, rules.MsgEditItemNotAllowed, err.Error())

	// the scrum master reassigns
	updated, err := f.itemService.UpdateItem(f.projectID, item.ID, request, f.scrumMaster)
	require.NoError(t, err)
	assert.Equal(t, f.teammate.ID, *updated.AssignedUserID)

	stored := f.stored(t, item.ID)
	assert.Equal(t, rules.ItemStatusActive, stored.StatusID)
	assert.Equal(t, f.teammate.ID, *stored.AssignedUserID)
}

func Test_UpdateItem_DeveloperMovingUnassignedItem_ReturnsForbidden(t *testing.T) {
	f := newItemsFixture(t)
	item := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	request := requestFrom(item)
	request.StatusID = rules.ItemStatusActive
	_, err := f.itemService.UpdateItem(f.projectID, item.ID, request, f.developer)

	require.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Equal(t, rules.ItemStatusNew, f.stored(t, item.ID).StatusID)
}

func Test_UpdateItem_DeveloperRenamingUnassignedItem_Succeeds(t *testing.T) {
	f := newItemsFixture(t)
	item := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	request := requestFrom(item)
	request.Name = "Better name"
	_, err := f.itemService.UpdateItem(f.projectID, item.ID, request, f.developer)

	require.NoError(t, err)
	assert.Equal(t, "Better name", f.stored(t, item.ID).Name)
}

func Test_UpdateItem_AsObserver_ReturnsForbidden(t *testing.T) {
	f := newItemsFixture(t)
	item := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	_, err := f.itemService.UpdateItem(f.projectID, item.ID, requestFrom(item), f.observer)

	require.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Equal(t, rules.MsgNotPartOfTeam, err.Error())
}

func Test_UpdateItem_AsAdministratorOutsider_ReturnsForbidden(t *testing.T) {
	f := newItemsFixture(t)
	item := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	admin := users_testing.NewTestUser(users_enums.UserRoleAdministrator)

	_, err := f.itemService.UpdateItem(f.projectID, item.ID, requestFrom(item), admin)

	assert.True(t, errors_utils.IsForbiddenOperation(err))
}

func Test_UpdateItem_FromAnotherProject_ReturnsNotFound(t *testing.T) {
	f := newItemsFixture(t)
	item := f.seedItem(f.otherProject, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	_, err := f.itemService.UpdateItem(f.projectID, item.ID, requestFrom(item), f.owner)

	assert.True(t, errors_utils.IsNotFound(err))
}

func Test_UpdateItem_StoryWithChildrenChangingType_ReturnsError(t *testing.T) {
	f := newItemsFixture(t)
	story := f.seedItem(f.projectID, items_models.ItemTypeUserStory, rules.ItemStatusNew, nil)
	child := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	child.ParentID = &story.ID
	f.items.items[child.ID] = *child

	request := requestFrom(story)
	request.TypeID = items_models.ItemTypeBug
	_, err := f.itemService.UpdateItem(f.projectID, story.ID, request, f.owner)

	assert.EqualError(t, err, "an item with child items must remain a user story")
}

func Test_UpdateItem_SettingItselfAsParent_ReturnsError(t *testing.T) {
	f := newItemsFixture(t)
	item := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	request := requestFrom(item)
	request.ParentID = &item.ID
	_, err := f.itemService.UpdateItem(f.projectID, item.ID, request, f.owner)

	assert.EqualError(t, err, "an item cannot be its own parent")
}

func Test_DeleteItem_FollowsRoleRules(t *testing.T) {
	f := newItemsFixture(t)

	unassigned := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	err := f.itemService.DeleteItem(f.projectID, unassigned.ID, f.developer)
	require.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Equal(t, rules.MsgDeleteItemNotAllowed, err.Error())

	teammates := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusActive, f.teammate)
	err = f.itemService.DeleteItem(f.projectID, teammates.ID, f.developer)
	assert.True(t, errors_utils.IsForbiddenOperation(err))

	own := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusActive, f.developer)
	require.NoError(t, f.itemService.DeleteItem(f.projectID, own.ID, f.developer))
	assert.NotContains(t, f.items.items, own.ID)

	require.NoError(t, f.itemService.DeleteItem(f.projectID, teammates.ID, f.scrumMaster))
	assert.NotContains(t, f.items.items, teammates.ID)
}

func Test_DeleteItem_WithChildren_DetachesChildren(t *testing.T) {
	f := newItemsFixture(t)
	story := f.seedItem(f.projectID, items_models.ItemTypeUserStory, rules.ItemStatusNew, nil)
	child := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	child.ParentID = &story.ID
	f.items.items[child.ID] = *child

	require.NoError(t, f.itemService.DeleteItem(f.projectID, story.ID, f.owner))

	assert.Nil(t, f.stored(t, child.ID).ParentID)
}

func Test_GetItems_WithSprintFilter_ReturnsSprintItems(t *testing.T) {
	f := newItemsFixture(t)
	sprintID := uuid.New()
	inSprint := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	inSprint.SprintID = &sprintID
	f.items.items[inSprint.ID] = *inSprint
	f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	sprintItems, err := f.itemService.GetItems(
		f.projectID,
		&items_dto.ListItemsRequestDTO{SprintID: sprintID.String()},
		f.observer,
	)
	require.NoError(t, err)
	require.Len(t, sprintItems.Items, 1)
	assert.Equal(t, inSprint.ID, sprintItems.Items[0].ID)

	backlog, err := f.itemService.GetItems(f.projectID, &items_dto.ListItemsRequestDTO{Backlog: true}, f.observer)
	require.NoError(t, err)
	assert.Len(t, backlog.Items, 1)
}

func Test_GetItems_AsOutsider_ReturnsForbidden(t *testing.T) {
	f := newItemsFixture(t)

	_, err := f.itemService.GetItems(f.projectID, &items_dto.ListItemsRequestDTO{}, users_testing.NewTestUser())

	assert.True(t, errors_utils.IsForbiddenOperation(err))
}

func Test_OnBeforeProjectDeletion_RemovesOnlyProjectItems(t *testing.T) {
	f := newItemsFixture(t)
	f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	foreign := f.seedItem(f.otherProject, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	require.NoError(t, f.itemService.OnBeforeProjectDeletion(f.projectID))

	assert.Len(t, f.items.items, 1)
	assert.Contains(t, f.items.items, foreign.ID)
}

func Test_CreateItem_StampsCreationTime(t *testing.T) {
	f := newItemsFixture(t)
	before := time.Now().UTC().Add(-time.Second)

	item, err := f.itemService.CreateItem(
		f.projectID,
		&items_dto.ItemRequestDTO{TypeID: items_models.ItemTypeTest, Name: "Regression"},
		f.owner,
	)

	require.NoError(t, err)
	assert.True(t, item.CreatedAt.After(before))
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
}
