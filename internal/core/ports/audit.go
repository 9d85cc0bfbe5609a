package ports

import (
	"context"
	"time"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
)

// AccountEventInput is the DTO passed from the services to the audit pipeline.
type AccountEventInput struct {
	AccountID string
	Action    domain.AuditAction
	ActorID   string
	Details   string
	Timestamp time.Time
}

// AuditService processes account lifecycle events off the request path.
type AuditService interface {
	Process(ctx context.Context, event AccountEventInput) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.AccountEvent, error)
}

// AuditRepository persists account lifecycle events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AccountEvent) error
	FindByAccount(ctx context.Context, accountID string) ([]*domain.AccountEvent, error)
}
