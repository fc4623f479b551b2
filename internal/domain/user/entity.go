package user

type Role string

const (
	RoleOwner    Role = "owner"    // Pharmacy owner - full access
	RoleManager  Role = "manager"  // Builds schedules, reviews overtime
	RoleEmployee Role = "employee" // Works shifts, files own overtime
)

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// IsManager checks if role is manager or owner
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}
