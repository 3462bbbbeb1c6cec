package rules

import "github.com/google/uuid"

// Role is the fixed permission level a user holds within one project.
// Values are persisted, so they must never be renumbered.
type Role int

const (
	RoleNone        Role = 0
	RoleOwner       Role = 1
	RoleScrumMaster Role = 2
	RoleDeveloper   Role = 3
	RoleObserver    Role = 5
)

type roleMetadata struct {
	role Role
	name string
}

var roles = []roleMetadata{
	{RoleNone, "None"},
	{RoleOwner, "Owner"},
	{RoleScrumMaster, "Scrum Master"},
	{RoleDeveloper, "Developer"},
	{RoleObserver, "Observer"},
}

// RoleFromValue converts a stored value into a Role. Anything outside the
// known set becomes RoleNone.
func RoleFromValue(value int) Role {
	for _, meta := range roles {
		if int(meta.role) == value {
			return meta.role
		}
	}

	return RoleNone
}

func (r Role) IsValid() bool {
	return r != RoleNone && RoleFromValue(int(r)) == r
}

func (r Role) Name() string {
	for _, meta := range roles {
		if meta.role == r {
			return meta.name
		}
	}

	return roles[0].name
}

func (r Role) String() string {
	return r.Name()
}

// AllRoles lists every assignable role, None excluded.
func AllRoles() []Role {
	result := make([]Role, 0, len(roles)-1)
	for _, meta := range roles {
		if meta.role != RoleNone {
			result = append(result, meta.role)
		}
	}

	return result
}

// MemberRoleLookup resolves the role of a user inside a project. It returns
// RoleNone when the user is not a member.
type MemberRoleLookup interface {
	GetMemberRole(projectID, userID uuid.UUID) (Role, error)
}
