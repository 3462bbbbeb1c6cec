package items_services

import (
	"testing"

	items_dto "taskboard/internal/features/items/dto"
	items_models "taskboard/internal/features/items/models"
	"taskboard/internal/features/rules"
	users_testing "taskboard/internal/features/users/testing"
	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateRelation_BetweenProjectItems_IsVisibleFromBothSides(t *testing.T) {
	f := newItemsFixture(t)
	bug := f.seedItem(f.projectID, items_models.ItemTypeBug, rules.ItemStatusNew, nil)
	test := f.seedItem(f.projectID, items_models.ItemTypeTest, rules.ItemStatusNew, nil)

	relation, err := f.relationService.CreateRelation(
		f.projectID,
		bug.ID,
		&items_dto.CreateRelationRequestDTO{RelatedItemID: test.ID},
		f.developer,
	)
	require.NoError(t, err)

	fromBug, err := f.relationService.GetRelations(f.projectID, bug.ID, f.observer)
	require.NoError(t, err)
	require.Len(t, fromBug.Relations, 1)
	assert.Equal(t, test.ID, fromBug.Relations[0].RelatedItemID)
	assert.Equal(t, relation.ID, *fromBug.Relations[0].ID)
	assert.Equal(t, items_models.RelationTypeRelated, fromBug.Relations[0].RelationType)

	fromTest, err := f.relationService.GetRelations(f.projectID, test.ID, f.observer)
	require.NoError(t, err)
	require.Len(t, fromTest.Relations, 1)
	assert.Equal(t, bug.ID, fromTest.Relations[0].RelatedItemID)
}

func Test_CreateRelation_Twice_ReturnsError(t *testing.T) {
	f := newItemsFixture(t)
	first := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	second := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	_, err := f.relationService.CreateRelation(
		f.projectID,
		first.ID,
		&items_dto.CreateRelationRequestDTO{RelatedItemID: second.ID},
		f.owner,
	)
	require.NoError(t, err)

	_, err = f.relationService.CreateRelation(
		f.projectID,
		second.ID,
		&items_dto.CreateRelationRequestDTO{RelatedItemID: first.ID},
		f.owner,
	)
	assert.EqualError(t, err, "items are already related")
	assert.Len(t, f.relations.relations, 1)
}

func Test_CreateRelation_WithInvalidTarget_ReturnsError(t *testing.T) {
	f := newItemsFixture(t)
	item := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	foreign := f.seedItem(f.otherProject, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	_, err := f.relationService.CreateRelation(
		f.projectID,
		item.ID,
		&items_dto.CreateRelationRequestDTO{RelatedItemID: item.ID},
		f.owner,
	)
	assert.EqualError(t, err, "an item cannot be related to itself")

	_, err = f.relationService.CreateRelation(
		f.projectID,
		item.ID,
		&items_dto.CreateRelationRequestDTO{RelatedItemID: foreign.ID},
		f.owner,
	)
	assert.True(t, errors_utils.IsNotFound(err))
}

func Test_CreateRelation_AsObserver_ReturnsForbidden(t *testing.T) {
	f := newItemsFixture(t)
	first := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	second := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	_, err := f.relationService.CreateRelation(
		f.projectID,
		first.ID,
		&items_dto.CreateRelationRequestDTO{RelatedItemID: second.ID},
		f.observer,
	)

	assert.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Empty(t, f.relations.relations)
}

func Test_GetRelations_ForStoryAndTask_IncludesHierarchy(t *testing.T) {
	f := newItemsFixture(t)
	story := f.seedItem(f.projectID, items_models.ItemTypeUserStory, rules.ItemStatusNew, nil)
	task := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	task.ParentID = &story.ID
	f.items.items[task.ID] = *task

	fromStory, err := f.relationService.GetRelations(f.projectID, story.ID, f.developer)
	require.NoError(t, err)
	require.Len(t, fromStory.Relations, 1)
	assert.Equal(t, items_models.RelationTypeChild, fromStory.Relations[0].RelationType)
	assert.Equal(t, task.ID, fromStory.Relations[0].RelatedItemID)
	assert.Nil(t, fromStory.Relations[0].ID)

	fromTask, err := f.relationService.GetRelations(f.projectID, task.ID, f.developer)
	require.NoError(t, err)
	require.Len(t, fromTask.Relations, 1)
	assert.Equal(t, items_models.RelationTypeParent, fromTask.Relations[0].RelationType)
	assert.Equal(t, story.ID, fromTask.Relations[0].RelatedItemID)
}

func Test_GetRelations_AsOutsider_ReturnsForbidden(t *testing.T) {
	f := newItemsFixture(t)
	item := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	_, err := f.relationService.GetRelations(f.projectID, item.ID, users_testing.NewTestUser())

	assert.True(t, errors_utils.IsForbiddenOperation(err))
}

func Test_DeleteRelation_ThroughUnrelatedItem_ReturnsNotFound(t *testing.T) {
	f := newItemsFixture(t)
	first := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	second := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	third := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	relation, err := f.relationService.CreateRelation(
		f.projectID,
		first.ID,
		&items_dto.CreateRelationRequestDTO{RelatedItemID: second.ID},
		f.owner,
	)
	require.NoError(t, err)

	err = f.relationService.DeleteRelation(f.projectID, third.ID, relation.ID, f.owner)
	assert.True(t, errors_utils.IsNotFound(err))

	err = f.relationService.DeleteRelation(f.projectID, first.ID, uuid.New(), f.owner)
	assert.True(t, errors_utils.IsNotFound(err))

	require.NoError(t, f.relationService.DeleteRelation(f.projectID, second.ID, relation.ID, f.developer))
	assert.Empty(t, f.relations.relations)
}

func Test_DeleteItem_WithRelations_RemovesRelations(t *testing.T) {
	f := newItemsFixture(t)
	first := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)
	second := f.seedItem(f.projectID, items_models.ItemTypeTask, rules.ItemStatusNew, nil)

	_, err := f.relationService.CreateRelation(
		f.projectID,
		first.ID,
		&items_dto.CreateRelationRequestDTO{RelatedItemID: second.ID},
		f.owner,
	)
	require.NoError(t, err)

	require.NoError(t, f.itemService.DeleteItem(f.projectID, first.ID, f.owner))

	relations, err := f.relationService.GetRelations(f.projectID, second.ID, f.owner)
	require.NoError(t, err)
	assert.Empty(t, relations.Relations)
}
