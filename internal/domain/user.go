package domain

// User is a directory account: student, staff, or administrator.
type User struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	RegisterNumber string `json:"registerNumber"`
	Department     string `json:"department"`
	Semester       string `json:"semester"`
	DOB            string `json:"dob"`
	Phone          string `json:"phone"`
	IsActive       bool   `json:"isActive"`
	CreatedAt      string `json:"createdAt"`
}

// CreateUserRequest holds the fields for creating a directory account.
// Students authenticate with register number + DOB, staff and admins
// with email + password; the backend enforces the distinction.
type CreateUserRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Password       string `json:"password,omitempty"`
	RegisterNumber string `json:"registerNumber,omitempty"`
	Department     string `json:"department,omitempty"`
	Semester       string `json:"semester,omitempty"`
	DOB            string `json:"dob,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// Validate checks that the request is well-formed for the given role.
func (r *CreateUserRequest) Validate(role Role) error {
	if r.Name == "" {
		return ErrValidation("name is required")
	}
	switch role {
	case RoleStudent:
		if r.RegisterNumber == "" {
			return ErrValidation("register number is required")
		}
	case RoleStaff, RoleAdmin:
		if r.Email == "" {
			return ErrValidation("email is required")
		}
	default:
		return ErrValidation("unknown role %q", role)
	}
	return nil
}

// BulkUpdateUsersRequest promotes or deactivates a set of accounts at once.
type BulkUpdateUsersRequest struct {
	IDs      []string `json:"selectedIds"`
	Semester string   `json:"semester,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
}
