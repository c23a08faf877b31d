package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/audit"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements audit.AuditLogRepository using GORM.
// The table is append only; this repository never updates or deletes.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Save appends an audit entry
func (r *GormAuditLogRepository) Save(ctx context.Context, tc tenant.Context, entry *audit.AuditLog) error {
	if err := checkOwnership(tc, entry.CompanyID); err != nil {
		return err
	}
	model := models.AuditLogModelFromDomain(entry)
	return Conn(ctx, r.db).Create(model).Error
}

// FindByEntity returns the audit trail of one entity, newest first
func (r *GormAuditLogRepository) FindByEntity(ctx context.Context, tc tenant.Context, entityType string, entityID uuid.UUID) ([]*audit.AuditLog, error) {
	var logModels []models.AuditLogModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("occurred_at DESC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}
	return auditLogsToDomain(logModels), nil
}

// FindByActor returns an actor's most recent audit entries, up to limit
func (r *GormAuditLogRepository) FindByActor(ctx context.Context, tc tenant.Context, actorID uuid.UUID, limit int) ([]*audit.AuditLog, error) {
	var logModels []models.AuditLogModel
	query := scoped(Conn(ctx, r.db), tc).
		Where("actor_id = ?", actorID).
		Order("occurred_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}
	return auditLogsToDomain(logModels), nil
}

func auditLogsToDomain(logModels []models.AuditLogModel) []*audit.AuditLog {
	entries := make([]*audit.AuditLog, len(logModels))
	for i := range logModels {
		entries[i] = logModels[i].ToDomain()
	}
	return entries
}

var _ audit.AuditLogRepository = (*GormAuditLogRepository)(nil)
