// Package audit records who changed ledger state and what it looked like
// before and after. Sensitive operations (reversal, adjustment) always
// write an entry in the same transaction as the change.
package audit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared"
)

// Action identifies the kind of change being audited
type Action string

const (
	ActionCardAssigned    Action = "CARD_ASSIGNED"
	ActionPaymentRecorded Action = "PAYMENT_RECORDED"
	ActionPaymentReversed Action = "PAYMENT_REVERSED"
	ActionPaymentAdjusted Action = "PAYMENT_ADJUSTED"
	ActionCardCancelled   Action = "CARD_CANCELLED"
)

// Snapshot is a loose JSON picture of an entity before or after a change,
// stored as jsonb.
type Snapshot map[string]any

// Value implements driver.Valuer
func (s Snapshot) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *Snapshot) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into Snapshot", value)
	}
}

// AuditLog is one immutable audit entry
type AuditLog struct {
	shared.BaseEntity
	CompanyID  uuid.UUID `json:"company_id"`
	Action     Action    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	ActorID    uuid.UUID `json:"actor_id"`
	OldState   Snapshot  `json:"old_state,omitempty"`
	NewState   Snapshot  `json:"new_state,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewAuditLog creates an audit entry for a change to an entity
func NewAuditLog(companyID uuid.UUID, action Action, entityType string, entityID, actorID uuid.UUID, oldState, newState Snapshot, notes string) (*AuditLog, error) {
	if companyID == uuid.Nil {
		return nil, shared.ErrMissingTenantContext
	}
	if entityType == "" || entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUDIT_TARGET", "Audit entry must reference an entity")
	}
	return &AuditLog{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		OldState:   oldState,
		NewState:   newState,
		Notes:      notes,
		OccurredAt: time.Now(),
	}, nil
}
