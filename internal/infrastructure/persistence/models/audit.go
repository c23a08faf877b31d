package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/audit"
)

// AuditLogModel is the persistence model for immutable audit entries.
type AuditLogModel struct {
	BaseModel
	CompanyID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Action     string         `gorm:"type:varchar(50);not null;index"`
	EntityType string         `gorm:"type:varchar(50);not null;index:idx_audit_entity,priority:1"`
	EntityID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_audit_entity,priority:2"`
	ActorID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	OldState   audit.Snapshot `gorm:"type:jsonb"`
	NewState   audit.Snapshot `gorm:"type:jsonb"`
	Notes      string         `gorm:"type:text"`
	OccurredAt time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain AuditLog
func (m *AuditLogModel) ToDomain() *audit.AuditLog {
	return &audit.AuditLog{
		BaseEntity: m.BaseModel.ToDomain(),
		CompanyID:  m.CompanyID,
		Action:     audit.Action(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		ActorID:    m.ActorID,
		OldState:   m.OldState,
		NewState:   m.NewState,
		Notes:      m.Notes,
		OccurredAt: m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain AuditLog
func (m *AuditLogModel) FromDomain(a *audit.AuditLog) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.CompanyID = a.CompanyID
	m.Action = string(a.Action)
	m.EntityType = a.EntityType
	m.EntityID = a.EntityID
	m.ActorID = a.ActorID
	m.OldState = a.OldState
	m.NewState = a.NewState
	m.Notes = a.Notes
	m.OccurredAt = a.OccurredAt
}

// AuditLogModelFromDomain creates a new persistence model from a domain AuditLog
func AuditLogModelFromDomain(a *audit.AuditLog) *AuditLogModel {
	m := &AuditLogModel{}
	m.FromDomain(a)
	return m
}
