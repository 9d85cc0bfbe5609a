package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/ports"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/metrics"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/password"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/token"
)

// AuditRecorder is the interface the services use to enqueue lifecycle
// events onto the async audit pipeline. A nil recorder disables auditing.
type AuditRecorder interface {
	Enqueue(event ports.AccountEventInput)
}

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	issuer *token.Issuer
	audit  AuditRecorder
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer, audit AuditRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, audit: audit, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if in.Role != domain.RoleAdmin && in.Role != domain.RoleStaff {
		return nil, domain.ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	// Friendly pre-check against active accounts. The unique indexes remain
	// the authority: a concurrent duplicate still fails at Create.
	for _, identifier := range []string{email, in.Username} {
		if _, err := s.repo.FindByIdentifier(ctx, identifier); err == nil {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return nil, domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		Phone:        in.Phone,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		IsDeleted:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.record(ports.AccountEventInput{
		AccountID: created.ID,
		Action:    domain.AuditRegistered,
		ActorID:   created.ID,
		Timestamp: now,
	})
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return created, nil
}

// Login authenticates by username or email. Unknown identifier and wrong
// password collapse into the same ErrInvalidCredentials so responses never
// reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, identifier, pass string) (string, *domain.User, error) {
	if identifier == "" || pass == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(ports.AccountEventInput{
		AccountID: user.ID,
		Action:    domain.AuditLoggedIn,
		ActorID:   user.ID,
		Timestamp: time.Now().UTC(),
	})

	return signed, user, nil
}

func (s *AuthService) record(event ports.AccountEventInput) {
	if s.audit != nil {
		s.audit.Enqueue(event)
	}
}
