package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	// GetByID retrieves a user by internal ID
	GetByID(ctx context.Context, id uint) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create creates a new user (seeding and admin tooling)
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error
}

// RoleChecker answers the role predicate against the authorization store.
// The store is authoritative: role claims carried in tokens are advisory
// only and must be re-checked here before granting anything.
type RoleChecker interface {
	// HasRole reports whether the user holds the named role.
	HasRole(ctx context.Context, userID uint, role string) (bool, error)
}

// RoleRepository manages role assignments in the authorization store.
type RoleRepository interface {
	RoleChecker

	// AssignRole grants a role to a user; assigning an already-held role
	// is a no-op.
	AssignRole(ctx context.Context, userID uint, role string) error

	// RevokeRole removes a role from a user.
	RevokeRole(ctx context.Context, userID uint, role string) error

	// GetRoles lists the user's roles.
	GetRoles(ctx context.Context, userID uint) ([]string, error)
}
