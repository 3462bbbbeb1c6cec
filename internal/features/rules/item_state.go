package rules

import "github.com/google/uuid"

// ItemStatus is an ordered board stage.
type ItemStatus int

const (
	ItemStatusNew        ItemStatus = 1
	ItemStatusActive     ItemStatus = 2
	ItemStatusCodeReview ItemStatus = 3
	ItemStatusResolved   ItemStatus = 4
	ItemStatusClosed     ItemStatus = 5
)

func (s ItemStatus) IsValid() bool {
	return s >= ItemStatusNew && s <= ItemStatusClosed
}

// ItemState is the part of a work item the rules look at.
type ItemState struct {
	StatusID       ItemStatus
	AssignedUserID *uuid.UUID
}

func (s ItemState) IsAssignedTo(userID uuid.UUID) bool {
	return s.AssignedUserID != nil && *s.AssignedUserID == userID
}

func (s ItemState) IsUnassigned() bool {
	return s.AssignedUserID == nil
}

type CommentState struct {
	AuthorUserID uuid.UUID
}

func sameAssignee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}
