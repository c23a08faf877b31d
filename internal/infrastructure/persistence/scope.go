package persistence

import (
	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/tenant"
	"gorm.io/gorm"
)

// scoped applies the tenant filter to a query. Scoped contexts confine the
// query to one company; an Unscoped context passes through untouched and is
// reserved for trusted execution paths.
func scoped(db *gorm.DB, tc tenant.Context) *gorm.DB {
	companyID, ok := tc.CompanyID()
	if !ok {
		return db
	}
	return db.Where("company_id = ?", companyID)
}

// requireScope rejects calls that must run under a company scope. Writes on
// tenant-owned tables go through this so an accidentally unscoped caller
// fails loudly instead of touching every tenant's rows.
func requireScope(tc tenant.Context) error {
	if !tc.IsScoped() {
		return shared.ErrMissingTenantContext
	}
	return nil
}

// checkOwnership verifies an entity being written belongs to the scoped
// company. Saving another tenant's row is a hard error, not a silent no-op.
func checkOwnership(tc tenant.Context, companyID uuid.UUID) error {
	scopedID, ok := tc.CompanyID()
	if !ok {
		return shared.ErrMissingTenantContext
	}
	if companyID != scopedID {
		return shared.ErrUnauthorized
	}
	return nil
}
