package handler

import (
	"time"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
)

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"omitempty"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin staff"`
}

type loginRequest struct {
	// Username also accepts an email address, as in the original API.
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin staff"`
}

type changePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"    validate:"required"`
	NewPassword        string `json:"newPassword"        validate:"required,min=6"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required"`
}

// --- Response types ---

// userResponse is the redacted outward view of an account. There is no
// password field to omit by accident: the type simply does not carry one.
type userResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	IsDeleted bool        `json:"is_deleted"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Username:  u.Username,
		Role:      u.Role,
		IsDeleted: u.IsDeleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type accountEventResponse struct {
	AccountID string    `json:"account_id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func toAccountEventResponses(events []*domain.AccountEvent) []accountEventResponse {
	out := make([]accountEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, accountEventResponse{
			AccountID: e.AccountID,
			Action:    string(e.Action),
			ActorID:   e.ActorID,
			Details:   e.Details,
			Timestamp: e.Timestamp,
		})
	}
	return out
}
