package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/ports"
)

type stubAuditRepo struct {
	events []*domain.AccountEvent
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AccountEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *stubAuditRepo) FindByAccount(_ context.Context, accountID string) ([]*domain.AccountEvent, error) {
	var out []*domain.AccountEvent
	for _, e := range r.events {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubDedup struct {
	seen map[string]bool
	fail bool
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(accountID string, action domain.AuditAction, ts time.Time) string {
	return fmt.Sprintf("%s:%s:%d", accountID, action, ts.Unix())
}

func (d *stubDedup) IsDuplicate(_ context.Context, accountID string, action domain.AuditAction, ts time.Time) (bool, error) {
	if d.fail {
		return false, errors.New("redis down")
	}
	return d.seen[d.key(accountID, action, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, accountID string, action domain.AuditAction, ts time.Time) error {
	if d.fail {
		return errors.New("redis down")
	}
	d.seen[d.key(accountID, action, ts)] = true
	return nil
}

func TestAuditService_Process_RecordsEvent(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	in := ports.AccountEventInput{
		AccountID: "user_1",
		Action:    domain.AuditRoleChanged,
		ActorID:   "admin_1",
		Details:   "role set to admin",
		Timestamp: time.Now().UTC(),
	}
	if err := svc.Process(context.Background(), in); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	if repo.events[0].Action != domain.AuditRoleChanged || repo.events[0].ActorID != "admin_1" {
		t.Fatalf("unexpected event: %+v", repo.events[0])
	}
}

func TestAuditService_Process_SkipsDuplicate(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	in := ports.AccountEventInput{
		AccountID: "user_1",
		Action:    domain.AuditLoggedIn,
		ActorID:   "user_1",
		Timestamp: time.Now().UTC(),
	}
	for i := 0; i < 2; i++ {
		if err := svc.Process(context.Background(), in); err != nil {
			t.Fatalf("Process call %d returned error: %v", i+1, err)
		}
	}
	if len(repo.events) != 1 {
		t.Fatalf("duplicate should be skipped, got %d events", len(repo.events))
	}
}

// A dedup store outage must not drop audit events.
func TestAuditService_Process_DedupFailureStillRecords(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := newStubDedup()
	dedup.fail = true
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	in := ports.AccountEventInput{
		AccountID: "user_1",
		Action:    domain.AuditRegistered,
		ActorID:   "user_1",
		Timestamp: time.Now().UTC(),
	}
	if err := svc.Process(context.Background(), in); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected event despite dedup failure, got %d", len(repo.events))
	}
}

func TestAuditService_ListByAccount(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	now := time.Now().UTC()
	for i, action := range []domain.AuditAction{domain.AuditRegistered, domain.AuditLoggedIn} {
		err := svc.Process(context.Background(), ports.AccountEventInput{
			AccountID: "user_1",
			Action:    action,
			ActorID:   "user_1",
			Timestamp: now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Process returned error: %v", err)
		}
	}

	events, err := svc.ListByAccount(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("ListByAccount returned error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}
