package identity

// Role is a user's role. Permissions are granted per role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Permission codes use resource:action form
const (
	PermGroceryCreate = "grocery:create"
	PermGroceryRead   = "grocery:read"
	PermGroceryUpdate = "grocery:update"
	PermGroceryDelete = "grocery:delete"
	PermOrderCreate   = "order:create"
	PermOrderRead     = "order:read"
	PermOrderUpdate   = "order:update"
	PermOrderDelete   = "order:delete"
	PermOrderItemRead = "orderItem:read"
	PermUserCreate    = "user:create"
	PermUserRead      = "user:read"
	PermUserUpdate    = "user:update"
	PermUserDelete    = "user:delete"
)

// DefaultPermissions is the role to permission mapping seeded into role_permissions
var DefaultPermissions = map[Role][]string{
	RoleUser: {
		PermGroceryRead,
		PermOrderCreate, PermOrderRead, PermOrderUpdate, PermOrderDelete,
		PermOrderItemRead,
		PermUserRead, PermUserUpdate,
	},
	RoleAdmin: {
		PermGroceryCreate, PermGroceryRead, PermGroceryUpdate, PermGroceryDelete,
		PermOrderRead, PermOrderUpdate, PermOrderDelete,
		PermOrderItemRead,
		PermUserCreate, PermUserRead, PermUserUpdate, PermUserDelete,
	},
}

// RolePermission is one row of the role to permission mapping
type RolePermission struct {
	Role       Role
	Permission string
}
