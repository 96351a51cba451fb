package domain

// Role is a staff account role
type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Valid reports whether the role belongs to the closed set
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// StaffUser is a staff account listed on the team management page
type StaffUser struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	UUID     string `json:"uuid,omitempty"`
}

// AddStaffRequest is the payload for creating a staff account
type AddStaffRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
