package bootstrap

import "context"

// AuditLog is a single operational audit entry (server lifecycle, seeding,
// migrations). Domain events travel through the outbox instead.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
