package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/audit"
)

// AuditRepository appends immutable audit entries. Entries are written in the
// same transaction as the mutation they record, so the trail is never
// reordered relative to committed state.
type AuditRepository interface {
	Append(ctx context.Context, entry *audit.Entry) error
}
