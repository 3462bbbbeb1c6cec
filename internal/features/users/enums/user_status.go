package users_enums

// UserStatus gates sign in. Inactive accounts keep their memberships and history.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

func (s UserStatus) CanSignIn() bool {
	return s == UserStatusActive
}
