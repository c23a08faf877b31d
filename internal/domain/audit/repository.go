package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/tenant"
)

// AuditLogRepository defines audit trail persistence. Entries are append
// only; there is no update or delete.
type AuditLogRepository interface {
	Save(ctx context.Context, tc tenant.Context, entry *AuditLog) error
	FindByEntity(ctx context.Context, tc tenant.Context, entityType string, entityID uuid.UUID) ([]*AuditLog, error)
	FindByActor(ctx context.Context, tc tenant.Context, actorID uuid.UUID, limit int) ([]*AuditLog, error)
}
