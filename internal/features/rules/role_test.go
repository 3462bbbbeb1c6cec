package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RoleFromValue_WithUnknownValue_ReturnsNone(t *testing.T) {
	for _, value := range []int{-1, 4, 6, 100} {
		assert.Equal(t, RoleNone, RoleFromValue(value), "value %d", value)
	}
}

func Test_RoleFromValue_WithKnownValue_ReturnsRole(t *testing.T) {
	assert.Equal(t, RoleOwner, RoleFromValue(1))
	assert.Equal(t, RoleScrumMaster, RoleFromValue(2))
	assert.Equal(t, RoleDeveloper, RoleFromValue(3))
	assert.Equal(t, RoleObserver, RoleFromValue(5))
}

func Test_Role_Name_ReturnsDisplayName(t *testing.T) {
	assert.Equal(t, "Scrum Master", RoleScrumMaster.Name())
	assert.Equal(t, "None", Role(42).Name())
}

func Test_AllRoles_ExcludesNone(t *testing.T) {
	assert.Equal(t, []Role{RoleOwner, RoleScrumMaster, RoleDeveloper, RoleObserver}, AllRoles())
	for _, role := range AllRoles() {
		assert.True(t, role.IsValid())
	}
	assert.False(t, RoleNone.IsValid())
}

func Test_Role_MarshalJSON_EncodesIntegerValue(t *testing.T) {
	data, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleObserver})

	require.NoError(t, err)
	assert.JSONEq(t, `{"role":5}`, string(data))
}
