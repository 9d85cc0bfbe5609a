package ports

import (
	"context"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
)

// ChangePasswordInput carries a self-service password change request.
type ChangePasswordInput struct {
	CurrentPassword    string
	NewPassword        string
	ConfirmNewPassword string
}

// UserService manages the account lifecycle after registration.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error)
	SoftDelete(ctx context.Context, actorID, targetID string) error
	Restore(ctx context.Context, actorID, targetID string) (*domain.User, error)
	ChangePassword(ctx context.Context, accountID string, in ChangePasswordInput) error
}
