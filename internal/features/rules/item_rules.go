package rules

import (
	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
)

const (
	MsgAssigningNotAllowed     = "You can only assign a new unassigned item to yourself"
	MsgStatusChangeNotAllowed  = "You can only move items assigned to you and never back to New"
	MsgCreateItemNotAllowed    = "You can only create unassigned new items or items assigned to yourself"
	MsgEditItemNotAllowed      = "You can only edit items that are unassigned or assigned to you"
	MsgDeleteItemNotAllowed    = "You can only delete items assigned to you"
	MsgDeleteCommentNotAllowed = "You can only delete your own comments"
	MsgEditCommentNotAllowed   = "Only the author can edit a comment"
	MsgNotPartOfTeam           = "Only team members can change the board"
)

// CheckCorrectAssigning validates a change of the assignee.
// A developer may only claim a brand new unassigned item for themself.
func CheckCorrectAssigning(role Role, existing, proposed ItemState, callerID uuid.UUID) error {
	if sameAssignee(existing.AssignedUserID, proposed.AssignedUserID) {
		return nil
	}

	if IsScrumMasterOrOwner(role) {
		return nil
	}

	if role == RoleDeveloper &&
		existing.StatusID == ItemStatusNew &&
		existing.IsUnassigned() &&
		proposed.IsAssignedTo(callerID) {
		return nil
	}

	return errors_utils.NewForbiddenOperation(MsgAssigningNotAllowed)
}

// CheckCorrectStatuses validates a status transition.
// A developer may move only their own item and never back to New.
func CheckCorrectStatuses(role Role, existing, proposed ItemState, callerID uuid.UUID) error {
	if existing.StatusID == proposed.StatusID {
		return nil
	}

	if IsScrumMasterOrOwner(role) {
		return nil
	}

	if role == RoleDeveloper &&
		existing.StatusID >= ItemStatusNew &&
		proposed.StatusID > ItemStatusNew &&
		proposed.IsAssignedTo(callerID) {
		return nil
	}

	return errors_utils.NewForbiddenOperation(MsgStatusChangeNotAllowed)
}

func CreateItemAccessValidation(item ItemState, callerID uuid.UUID, role Role) error {
	if IsScrumMasterOrOwner(role) {
		return nil
	}

	if role == RoleDeveloper {
		if item.IsAssignedTo(callerID) {
			return nil
		}

		if item.StatusID == ItemStatusNew && item.IsUnassigned() {
			return nil
		}
	}

	return errors_utils.NewForbiddenOperation(MsgCreateItemNotAllowed)
}

// CanEditItem is the coarse gate run before the assignment and status
// checks.
func CanEditItem(item ItemState, callerID uuid.UUID, role Role) error {
	if IsScrumMasterOrOwner(role) || item.IsAssignedTo(callerID) || item.IsUnassigned() {
		return nil
	}

	return errors_utils.NewForbiddenOperation(MsgEditItemNotAllowed)
}

func CanDeleteItem(item ItemState, callerID uuid.UUID, role Role) error {
	if IsScrumMasterOrOwner(role) {
		return nil
	}

	if role == RoleDeveloper && item.IsAssignedTo(callerID) {
		return nil
	}

	return errors_utils.NewForbiddenOperation(MsgDeleteItemNotAllowed)
}

func RequireTeamMember(role Role) error {
	if IsPartOfTeam(role) {
		return nil
	}

	return errors_utils.NewForbiddenOperation(MsgNotPartOfTeam)
}

func CanDeleteComment(comment CommentState, callerID uuid.UUID, role Role) error {
	if IsScrumMasterOrOwner(role) {
		return nil
	}

	if role == RoleDeveloper && comment.AuthorUserID == callerID {
		return nil
	}

	return errors_utils.NewForbiddenOperation(MsgDeleteCommentNotAllowed)
}

func CanEditComment(comment CommentState, callerID uuid.UUID) error {
	if comment.AuthorUserID == callerID {
		return nil
	}

	return errors_utils.NewForbiddenOperation(MsgEditCommentNotAllowed)
}
