package tenant

import (
	"time"

	"github.com/sanduq/backend/internal/domain/shared"
)

// CompanyStatus represents the lifecycle status of a company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusInactive CompanyStatus = "INACTIVE"
)

// IsValid checks if the status is a valid CompanyStatus
func (s CompanyStatus) IsValid() bool {
	return s == CompanyStatusActive || s == CompanyStatusInactive
}

// Company is the tenant root. Every other entity in the system hangs off a
// company via company_id; deactivation is the only form of deletion.
type Company struct {
	shared.BaseAggregateRoot
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	Status        CompanyStatus `json:"status"`
	DeactivatedAt *time.Time    `json:"deactivated_at,omitempty"`
}

// NewCompany creates a new active company
func NewCompany(code, name string) (*Company, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_CODE", "Company code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Status:            CompanyStatusActive,
	}, nil
}

// IsActive returns true if the company may be operated on
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// Deactivate soft-deletes the company
func (c *Company) Deactivate() error {
	if c.Status == CompanyStatusInactive {
		return shared.ErrInvalidState
	}
	now := time.Now()
	c.Status = CompanyStatusInactive
	c.DeactivatedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()
	return nil
}

// Reactivate restores a deactivated company
func (c *Company) Reactivate() error {
	if c.Status == CompanyStatusActive {
		return shared.ErrInvalidState
	}
	c.Status = CompanyStatusActive
	c.DeactivatedAt = nil
	c.Touch()
	c.IncrementVersion()
	return nil
}

// ScopedContext returns a tenant context confined to this company
func (c *Company) ScopedContext() Context {
	return Scoped(c.ID)
}
