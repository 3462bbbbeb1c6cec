package rules

import (
	"testing"

	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []ItemStatus{
	ItemStatusNew,
	ItemStatusActive,
	ItemStatusCodeReview,
	ItemStatusResolved,
	ItemStatusClosed,
}

// assigneeOptions covers unassigned, the caller and someone else.
func assigneeOptions(callerID, otherID uuid.UUID) []*uuid.UUID {
	return []*uuid.UUID{nil, &callerID, &otherID}
}

func allItemStates(callerID, otherID uuid.UUID) []ItemState {
	var states []ItemState
	for _, status := range allStatuses {
		for _, assignee := range assigneeOptions(callerID, otherID) {
			states = append(states, ItemState{StatusID: status, AssignedUserID: assignee})
		}
	}

	return states
}

func Test_CheckCorrectAssigningAndStatuses_WhenOwnerOrScrumMaster_NeverFail(t *testing.T) {
	callerID, otherID := uuid.New(), uuid.New()
	states := allItemStates(callerID, otherID)

	for _, role := range []Role{RoleOwner, RoleScrumMaster} {
		for _, existing := range states {
			for _, proposed := range states {
				assert.NoError(t, CheckCorrectAssigning(role, existing, proposed, callerID))
				assert.NoError(t, CheckCorrectStatuses(role, existing, proposed, callerID))
			}
		}
	}
}

func Test_CheckCorrectAssigning_WhenDeveloper_AllowsOnlyNoOpOrSelfClaimOfNewItem(t *testing.T) {
	callerID, otherID := uuid.New(), uuid.New()
	states := allItemStates(callerID, otherID)

	for _, existing := range states {
		for _, proposed := range states {
			expectedAllowed := sameAssignee(existing.AssignedUserID, proposed.AssignedUserID) ||
				(existing.StatusID == ItemStatusNew &&
					existing.AssignedUserID == nil &&
					proposed.IsAssignedTo(callerID))

			err := CheckCorrectAssigning(RoleDeveloper, existing, proposed, callerID)

			if expectedAllowed {
				assert.NoError(t, err, "existing=%+v proposed=%+v", existing, proposed)
			} else {
				require.Error(t, err, "existing=%+v proposed=%+v", existing, proposed)
				assert.True(t, errors_utils.IsForbiddenOperation(err))
				assert.Equal(t, MsgAssigningNotAllowed, err.Error())
			}
		}
	}
}

func Test_CheckCorrectStatuses_WhenDeveloper_AllowsOnlyOwnItemForwardFromNew(t *testing.T) {
	callerID, otherID := uuid.New(), uuid.New()
	states := allItemStates(callerID, otherID)

	for _, existing := range states {
		for _, proposed := range states {
			expectedAllowed := existing.StatusID == proposed.StatusID ||
				(existing.StatusID >= ItemStatusNew &&
					proposed.StatusID > ItemStatusNew &&
					proposed.IsAssignedTo(callerID))

			err := CheckCorrectStatuses(RoleDeveloper, existing, proposed, callerID)

			if expectedAllowed {
				assert.NoError(t, err, "existing=%+v proposed=%+v", existing, proposed)
			} else {
				require.Error(t, err, "existing=%+v proposed=%+v", existing, proposed)
				assert.True(t, errors_utils.IsForbiddenOperation(err))
				assert.Equal(t, MsgStatusChangeNotAllowed, err.Error())
			}
		}
	}
}

func Test_CheckCorrectStatuses_WhenDeveloperMovesOwnItemBackToNew_Fails(t *testing.T) {
	callerID := uuid.New()
	existing := ItemState{StatusID: ItemStatusActive, AssignedUserID: &callerID}
	proposed := ItemState{StatusID: ItemStatusNew, AssignedUserID: &callerID}

	err := CheckCorrectStatuses(RoleDeveloper, existing, proposed, callerID)

	assert.True(t, errors_utils.IsForbiddenOperation(err))
}

func Test_CheckCorrectAssigningAndStatuses_WhenObserverOrNone_FailOnAnyChange(t *testing.T) {
	callerID := uuid.New()
	existing := ItemState{StatusID: ItemStatusNew}
	proposed := ItemState{StatusID: ItemStatusActive, AssignedUserID: &callerID}

	for _, role := range []Role{RoleObserver, RoleNone} {
		assert.Error(t, CheckCorrectAssigning(role, existing, proposed, callerID))
		assert.Error(t, CheckCorrectStatuses(role, existing, proposed, callerID))

		assert.NoError(t, CheckCorrectAssigning(role, existing, existing, callerID))
		assert.NoError(t, CheckCorrectStatuses(role, existing, existing, callerID))
	}
}

func Test_CreateItemAccessValidation_ForEveryRoleAndState(t *testing.T) {
	callerID, otherID := uuid.New(), uuid.New()

	for _, item := range allItemStates(callerID, otherID) {
		for _, role := range everyRole {
			var expectedAllowed bool
			switch role {
			case RoleOwner, RoleScrumMaster:
				expectedAllowed = true
			case RoleDeveloper:
				expectedAllowed = item.IsAssignedTo(callerID) ||
					(item.StatusID == ItemStatusNew && item.IsUnassigned())
			}

			err := CreateItemAccessValidation(item, callerID, role)

			if expectedAllowed {
				assert.NoError(t, err, "role=%s item=%+v", role, item)
			} else {
				assert.True(t, errors_utils.IsForbiddenOperation(err), "role=%s item=%+v", role, item)
			}
		}
	}
}

func Test_CreateItemAccessValidation_WhenDeveloperCreatesItemForAnotherUser_Fails(t *testing.T) {
	developerID := uuid.New()
	otherUserID := uuid.New()

	err := CreateItemAccessValidation(
		ItemState{StatusID: ItemStatusNew},
		developerID,
		RoleDeveloper,
	)
	assert.NoError(t, err)

	err = CreateItemAccessValidation(
		ItemState{StatusID: ItemStatusNew, AssignedUserID: &otherUserID},
		developerID,
		RoleDeveloper,
	)
	require.Error(t, err)
	assert.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Equal(t, MsgCreateItemNotAllowed, err.Error())
}

func Test_CanEditItem_ForEveryRoleAndAssignee(t *testing.T) {
	callerID, otherID := uuid.New(), uuid.New()

	for _, item := range allItemStates(callerID, otherID) {
		for _, role := range everyRole {
			expectedAllowed := IsScrumMasterOrOwner(role) ||
				item.IsAssignedTo(callerID) ||
				item.IsUnassigned()

			err := CanEditItem(item, callerID, role)

			if expectedAllowed {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, MsgEditItemNotAllowed, err.Error())
			}
		}
	}
}

func Test_CanDeleteItem_WhenDeveloper_AllowsOnlyOwnItem(t *testing.T) {
	callerID, otherID := uuid.New(), uuid.New()

	assert.NoError(t, CanDeleteItem(ItemState{StatusID: ItemStatusActive, AssignedUserID: &callerID}, callerID, RoleDeveloper))
	assert.Error(t, CanDeleteItem(ItemState{StatusID: ItemStatusNew}, callerID, RoleDeveloper))
	assert.Error(t, CanDeleteItem(ItemState{StatusID: ItemStatusNew, AssignedUserID: &otherID}, callerID, RoleDeveloper))
	assert.Error(t, CanDeleteItem(ItemState{StatusID: ItemStatusNew, AssignedUserID: &callerID}, callerID, RoleObserver))
	assert.NoError(t, CanDeleteItem(ItemState{StatusID: ItemStatusNew, AssignedUserID: &otherID}, callerID, RoleScrumMaster))
}

func Test_RequireTeamMember_WhenObserver_Fails(t *testing.T) {
	assert.Error(t, RequireTeamMember(RoleObserver))
	assert.Error(t, RequireTeamMember(RoleNone))
	assert.NoError(t, RequireTeamMember(RoleDeveloper))
}

func Test_CanDeleteComment_ForEveryRole(t *testing.T) {
	callerID, otherID := uuid.New(), uuid.New()
	ownComment := CommentState{AuthorUserID: callerID}
	foreignComment := CommentState{AuthorUserID: otherID}

	testCases := []struct {
		role          Role
		ownAllowed    bool
		othersAllowed bool
	}{
		{RoleOwner, true, true},
		{RoleScrumMaster, true, true},
		{RoleDeveloper, true, false},
		{RoleObserver, false, false},
		{RoleNone, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.role.Name(), func(t *testing.T) {
			assert.Equal(t, tc.ownAllowed, CanDeleteComment(ownComment, callerID, tc.role) == nil)
			assert.Equal(t, tc.othersAllowed, CanDeleteComment(foreignComment, callerID, tc.role) == nil)
		})
	}
}

func Test_CanEditComment_WhenNotAuthor_Fails(t *testing.T) {
	authorID := uuid.New()
	comment := CommentState{AuthorUserID: authorID}

	assert.NoError(t, CanEditComment(comment, authorID))

	err := CanEditComment(comment, uuid.New())
	assert.Equal(t, MsgEditCommentNotAllowed, err.Error())
}
