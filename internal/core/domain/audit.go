package domain

import "time"

// AuditAction identifies a lifecycle mutation recorded in the audit trail.
type AuditAction string

const (
	AuditRegistered      AuditAction = "registered"
	AuditLoggedIn        AuditAction = "logged_in"
	AuditRoleChanged     AuditAction = "role_changed"
	AuditSoftDeleted     AuditAction = "soft_deleted"
	AuditRestored        AuditAction = "restored"
	AuditPasswordChanged AuditAction = "password_changed"
)

// AccountEvent records a single lifecycle mutation on an account.
type AccountEvent struct {
	AccountID string
	Action    AuditAction
	ActorID   string // account that performed the mutation; equals AccountID for self-service operations
	Details   string
	Timestamp time.Time
}
