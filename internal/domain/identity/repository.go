package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
)

// UserQuery contains filter options for querying users
type UserQuery struct {
	shared.Filter
	ID *uuid.UUID
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user with an optimistic lock
	Update(ctx context.Context, user *User) error

	// FindByID finds an active user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds an active user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if an active user already uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAll returns one page of active users
	FindAll(ctx context.Context, query UserQuery) ([]User, error)

	// Count counts active users matching the query
	Count(ctx context.Context, query UserQuery) (int64, error)
}

// PermissionRepository resolves the permissions granted to a role
type PermissionRepository interface {
	FindByRole(ctx context.Context, role Role) ([]string, error)
}
