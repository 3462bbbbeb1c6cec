package rules

func IsScrumMasterOrOwner(role Role) bool {
	return role == RoleOwner || role == RoleScrumMaster
}

// IsPartOfTeam reports whether the role may work on the board. Observers
// are members but not part of the team.
func IsPartOfTeam(role Role) bool {
	return role == RoleOwner || role == RoleScrumMaster || role == RoleDeveloper
}

func CanViewProject(role Role) bool {
	return RoleFromValue(int(role)) != RoleNone
}

func CanAddMember(role Role) bool {
	return role == RoleOwner
}

func CanRemoveOtherMember(role Role) bool {
	return role == RoleOwner
}

// CanRemoveSelf reports whether a member may leave. The owner has to stay.
func CanRemoveSelf(role Role) bool {
	return role != RoleOwner && RoleFromValue(int(role)) != RoleNone
}

// CanAssignRoleOnAdd reports whether a new member may be added with role.
// Ownership is only granted on project creation.
func CanAssignRoleOnAdd(role Role) bool {
	return role == RoleScrumMaster || role == RoleDeveloper || role == RoleObserver
}

func CanChangeMemberRole(caller, oldRole, newRole Role) bool {
	caller = RoleFromValue(int(caller))
	oldRole = RoleFromValue(int(oldRole))
	newRole = RoleFromValue(int(newRole))

	if caller == RoleNone || oldRole == RoleNone || newRole == RoleNone {
		return false
	}

	if !IsScrumMasterOrOwner(caller) {
		return false
	}

	if oldRole == newRole {
		return false
	}

	if oldRole == RoleOwner || newRole == RoleOwner {
		return false
	}

	if (oldRole == RoleScrumMaster || newRole == RoleScrumMaster) && caller != RoleOwner {
		return false
	}

	return true
}

func CanManageSprints(role Role) bool {
	return IsScrumMasterOrOwner(role)
}

func CanEditProject(role Role) bool {
	return IsScrumMasterOrOwner(role)
}

func CanDeleteProject(role Role) bool {
	return role == RoleOwner
}
