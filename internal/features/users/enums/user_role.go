package users_enums

// UserRole is an account wide role name. It is unrelated to the role a user
// holds inside a project.
type UserRole string

const (
	UserRoleAdministrator UserRole = "Administrator"
	UserRoleUser          UserRole = "User"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdministrator, UserRoleUser:
		return true
	default:
		return false
	}
}
