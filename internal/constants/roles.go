package constants

const (
	Organizer = "organizer"
	NGO       = "ngo"
)

// ValidRoles is the set of roles a user can sign in as.
var ValidRoles = []string{Organizer, NGO}

// IsValidRole returns true if role is one of the allowed values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
