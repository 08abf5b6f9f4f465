package users

// Role controls what an authenticated caller may do. Roles are looked up
// per request from the user record, never taken from the credential.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleViewer Role = "Viewer"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// User links an external identity key to a store role.
type User struct {
	ID       int64  `json:"id"`
	OwnerKey string `json:"ownerKey"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
