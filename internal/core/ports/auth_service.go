package ports

import (
	"context"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Username string
	Password string
	Role     domain.Role
}

// AuthService implements registration and credential-based login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Login authenticates by username or email plus password and returns a
	// signed bearer token alongside the account. Unknown identifier and
	// wrong password are indistinguishable from the caller's perspective.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
}
