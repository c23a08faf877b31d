// Package organization holds the collection network entities: branches and
// the field workers attached to them. Customers and daily totals reference
// both.
package organization

import (
	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared"
)

// Branch is a physical collection office within a company
type Branch struct {
	shared.CompanyAggregateRoot
	Code   string `json:"code"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`
}

// NewBranch creates a new active branch
func NewBranch(companyID uuid.UUID, code, name string) (*Branch, error) {
	if companyID == uuid.Nil {
		return nil, shared.ErrMissingTenantContext
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_CODE", "Branch code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}
	return &Branch{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 code,
		Name:                 name,
		Active:               true,
	}, nil
}

// Deactivate marks the branch inactive
func (b *Branch) Deactivate() {
	b.Active = false
	b.Touch()
	b.IncrementVersion()
}
