package errors_utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_StatusCode_ForEachErrorKind_ReturnsMappedStatus(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"forbidden", NewForbiddenOperation("denied"), http.StatusForbidden},
		{"wrapped forbidden", fmt.Errorf("update item: %w", NewForbiddenOperation("denied")), http.StatusForbidden},
		{"invalid token", NewInvalidToken("invalid token"), http.StatusUnauthorized},
		{"not found", NewNotFound("item not found"), http.StatusNotFound},
		{"plain", errors.New("name is required"), http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusCode(tc.err))
		})
	}
}

func Test_ForbiddenOperation_Message_IsPreservedVerbatim(t *testing.T) {
	err := NewForbiddenOperation("You can assign only items that are new and unassigned")

	assert.Equal(t, "You can assign only items that are new and unassigned", err.Error())
	assert.False(t, IsInvalidToken(err))
}
