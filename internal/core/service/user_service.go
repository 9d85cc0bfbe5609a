package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/ports"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/password"
)

// MinPasswordLength is the enforced floor for new passwords. The user-facing
// message in domain.ErrPasswordTooShort states the same number.
const MinPasswordLength = 6

// UserService manages the account lifecycle after registration.
type UserService struct {
	repo  ports.UserRepository
	audit AuditRecorder
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// GetByID returns a non-deleted account. Soft-deleted accounts read as not
// found, matching the list view.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return nil, domain.ErrInvalidRole
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.IsDeleted {
		return nil, domain.ErrUserNotFound
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.record(ports.AccountEventInput{
		AccountID: targetID,
		Action:    domain.AuditRoleChanged,
		ActorID:   actorID,
		Details:   fmt.Sprintf("role set to %s", role),
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", targetID).Str("role", string(role)).Msg("user role updated")

	return updated, nil
}

// SoftDelete marks the account deleted. Deleting an already-deleted account
// succeeds; only a nonexistent id is an error.
func (s *UserService) SoftDelete(ctx context.Context, actorID, targetID string) error {
	if _, err := s.repo.SetDeleted(ctx, targetID, true); err != nil {
		return err
	}

	s.record(ports.AccountEventInput{
		AccountID: targetID,
		Action:    domain.AuditSoftDeleted,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", targetID).Msg("user soft-deleted")
	return nil
}

// Restore clears the soft-delete flag. Restoring an active account succeeds.
func (s *UserService) Restore(ctx context.Context, actorID, targetID string) (*domain.User, error) {
	updated, err := s.repo.SetDeleted(ctx, targetID, false)
	if err != nil {
		return nil, err
	}

	s.record(ports.AccountEventInput{
		AccountID: targetID,
		Action:    domain.AuditRestored,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", targetID).Msg("user restored")
	return updated, nil
}

// ChangePassword re-verifies the current password even though the caller is
// already authenticated, so a hijacked session cannot rotate the secret
// without knowing it.
func (s *UserService) ChangePassword(ctx context.Context, accountID string, in ports.ChangePasswordInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" || in.ConfirmNewPassword == "" {
		return domain.ErrInvalidInput
	}
	if in.NewPassword != in.ConfirmNewPassword {
		return domain.ErrPasswordMismatch
	}
	if len(in.NewPassword) < MinPasswordLength {
		return domain.ErrPasswordTooShort
	}

	user, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !password.Verify(in.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	if _, err := s.repo.UpdatePassword(ctx, accountID, hash); err != nil {
		return err
	}

	s.record(ports.AccountEventInput{
		AccountID: accountID,
		Action:    domain.AuditPasswordChanged,
		ActorID:   accountID,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", accountID).Msg("password changed")
	return nil
}

func (s *UserService) record(event ports.AccountEventInput) {
	if s.audit != nil {
		s.audit.Enqueue(event)
	}
}
