package constants

// PermissionRoles maps each permission to roles allowed to perform it.
var PermissionRoles = map[string][]string{
	PostFood:        {Organizer},
	ViewOwnListings: {Organizer},
	ViewAvailable:   {NGO},
	ViewClaimed:     {NGO},
	ClaimFood:       {NGO},
	CollectFood:     {NGO},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
