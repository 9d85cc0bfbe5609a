package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for the audit pipeline backed by
// Redis. Key format: audit:<account_id>:<action>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact lifecycle event was already recorded.
func (d *DedupChecker) IsDuplicate(ctx context.Context, accountID string, action domain.AuditAction, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(accountID, action, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been persisted (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, accountID string, action domain.AuditAction, ts time.Time) error {
	return d.client.Set(ctx, d.key(accountID, action, ts), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(accountID string, action domain.AuditAction, ts time.Time) string {
	return fmt.Sprintf("audit:%s:%s:%d", accountID, action, ts.Unix())
}
