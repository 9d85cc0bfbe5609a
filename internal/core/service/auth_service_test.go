package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/ports"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/password"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/token"
)

// stubUserRepo is an in-memory ports.UserRepository mirroring the store's
// contract: unique email/username across deleted rows, identifier lookups
// restricted to active rows.
type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.IsDeleted {
			continue
		}
		if strings.EqualFold(u.Email, identifier) || u.Username == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if !u.IsDeleted {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetDeleted(_ context.Context, id string, deleted bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsDeleted = deleted
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func registerInput(username, email string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Test User",
		Email:    email,
		Username: username,
		Password: "secret123",
		Role:     domain.RoleStaff,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("secret", time.Hour), nil, zerolog.Nop())

	user, err := svc.Register(context.Background(), registerInput("alice", "A@X.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Email != "a@x.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if !password.Verify("secret123", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if user.Role != domain.RoleStaff {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.IsDeleted {
		t.Fatalf("new account must not be deleted")
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), token.NewIssuer("secret", time.Hour), nil, zerolog.Nop())

	in := registerInput("alice", "a@x.com")
	in.Password = "tiny"
	if _, err := svc.Register(context.Background(), in); err != domain.ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("secret", time.Hour), nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("alice", "a@x.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob", "A@X.COM")); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("secret", time.Hour), nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("alice", "a@x.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("alice", "other@x.com")); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

// Concurrent registrations with the same email must settle to exactly one
// success and one conflict; the store's atomic uniqueness check is the
// arbiter, not a pre-check in the service.
func TestAuthService_Register_ConcurrentDuplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("secret", time.Hour), nil, zerolog.Nop())

	errs := make(chan error, 2)
	for _, username := range []string{"alice", "bob"} {
		go func(username string) {
			_, err := svc.Register(context.Background(), registerInput(username, "shared@x.com"))
			errs <- err
		}(username)
	}

	var success, conflict int
	for i := 0; i < 2; i++ {
		switch err := <-errs; err {
		case nil:
			success++
		case domain.ErrUserExists:
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 || conflict != 1 {
		t.Fatalf("expected 1 success and 1 conflict, got %d/%d", success, conflict)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	issuer := token.NewIssuer("secret", time.Hour)
	svc := NewAuthService(repo, issuer, nil, zerolog.Nop())

	in := registerInput("carol", "carol@x.com")
	in.Role = domain.RoleAdmin
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	signed, user, err := svc.Login(context.Background(), "carol", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected claims id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", claims.Role)
	}
}

func TestAuthService_Login_ByEmailCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("secret", time.Hour), nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("dave", "dave@x.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "DAVE@X.COM", "secret123"); err != nil {
		t.Fatalf("login by upper-case email failed: %v", err)
	}
}

// Wrong password and unknown identifier must be indistinguishable: the exact
// same error value, so no response content can leak which part was wrong.
func TestAuthService_Login_EnumerationResistance(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("secret", time.Hour), nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("erin", "erin@x.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, errWrongPass := svc.Login(context.Background(), "erin", "wrongpass")
	_, _, errNoUser := svc.Login(context.Background(), "ghost", "secret123")

	if errWrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPass)
	}
	if errNoUser != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", errNoUser)
	}
	if errWrongPass.Error() != errNoUser.Error() {
		t.Fatalf("error content differs: %q vs %q", errWrongPass, errNoUser)
	}
}

func TestAuthService_Login_DeletedAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("secret", time.Hour), nil, zerolog.Nop())

	user, err := svc.Register(context.Background(), registerInput("frank", "frank@x.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := repo.SetDeleted(context.Background(), user.ID, true); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "frank", "secret123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for deleted account, got %v", err)
	}
}
