package ports

import (
	"context"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
//
// Uniqueness of email and username is enforced by the store itself (unique
// indexes spanning deleted and non-deleted rows); Create returns
// domain.ErrUserExists on a violation, which makes concurrent duplicate
// registrations safe without a check-then-write race in the services.
type UserRepository interface {
	// FindByIdentifier resolves a non-deleted account by username or email.
	// Email matching is case-insensitive.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// FindByID resolves an account by id regardless of its deleted flag.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Create inserts a new account and returns it with its assigned id.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// List returns all non-deleted accounts, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// UpdateRole atomically sets the role and returns the updated account.
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)

	// SetDeleted atomically sets the soft-delete flag and returns the
	// updated account. Setting the flag to its current value succeeds.
	SetDeleted(ctx context.Context, id string, deleted bool) (*domain.User, error)

	// UpdatePassword atomically replaces the stored password hash.
	UpdatePassword(ctx context.Context, id string, passwordHash string) (*domain.User, error)
}
