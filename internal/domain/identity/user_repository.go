package identity

import "context"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create stores a new user; a taken username yields shared.ErrAlreadyExists
	Create(ctx context.Context, user *User) error

	// FindByUsername returns shared.ErrNotFound when no user matches
	FindByUsername(ctx context.Context, username string) (*User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
