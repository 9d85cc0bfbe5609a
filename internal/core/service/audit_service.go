package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/ports"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/metrics"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, accountID string, action domain.AuditAction, ts time.Time) (bool, error)
	Mark(ctx context.Context, accountID string, action domain.AuditAction, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single account lifecycle event.
// Audit failures are logged, not propagated to the originating operation.
func (s *auditService) Process(ctx context.Context, in ports.AccountEventInput) error {
	action := string(in.Action)

	isDup, err := s.dedup.IsDuplicate(ctx, in.AccountID, in.Action, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("account_id", in.AccountID).Msg("dedup check failed, recording anyway")
	} else if isDup {
		metrics.AuditEventsTotal.WithLabelValues(action, "duplicate").Inc()
		s.log.Debug().Str("account_id", in.AccountID).Str("action", action).Msg("duplicate audit event skipped")
		return nil
	}

	// Mark before writing so a retry of the same event is dropped.
	if markErr := s.dedup.Mark(ctx, in.AccountID, in.Action, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("account_id", in.AccountID).Msg("failed to set dedup key")
	}

	event := &domain.AccountEvent{
		AccountID: in.AccountID,
		Action:    in.Action,
		ActorID:   in.ActorID,
		Details:   in.Details,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		metrics.AuditEventsTotal.WithLabelValues(action, "error").Inc()
		return fmt.Errorf("record audit event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(action, "recorded").Inc()
	s.log.Info().
		Str("account_id", in.AccountID).
		Str("action", action).
		Str("actor_id", in.ActorID).
		Msg("audit event recorded")

	return nil
}

func (s *auditService) ListByAccount(ctx context.Context, accountID string) ([]*domain.AccountEvent, error) {
	return s.repo.FindByAccount(ctx, accountID)
}
