package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/ports"
)

type stubAuditService struct {
	mu     sync.Mutex
	events []ports.AccountEventInput
}

func (s *stubAuditService) Process(_ context.Context, event ports.AccountEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *stubAuditService) ListByAccount(context.Context, string) ([]*domain.AccountEvent, error) {
	return nil, nil
}

func (s *stubAuditService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := &stubAuditService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Enqueue(ports.AccountEventInput{
			AccountID: "acc-1",
			Action:    domain.AuditRegistered,
			Timestamp: time.Now(),
		})
	}

	deadline := time.After(2 * time.Second)
	for svc.count() < 10 {
		select {
		case <-deadline:
			t.Fatalf("expected 10 events processed, got %d", svc.count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_ShardIsStablePerAccount(t *testing.T) {
	d := NewDispatcher(4, &stubAuditService{}, zerolog.Nop())

	want := d.shardIndex("acc-42")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("acc-42"); got != want {
			t.Fatalf("shard index changed: got %d, want %d", got, want)
		}
	}
}

// Once workers have stopped, enqueueing must still return immediately even
// after the buffer fills; callers on the request path never wait on the
// audit pipeline.
func TestDispatcher_EnqueueNeverBlocksAfterShutdown(t *testing.T) {
	svc := &stubAuditService{}
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+16; i++ {
			d.Enqueue(ports.AccountEventInput{
				AccountID: "acc-1",
				Action:    domain.AuditSoftDeleted,
				Timestamp: time.Now(),
			})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked after shutdown")
	}
}
