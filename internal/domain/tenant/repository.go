package tenant

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository persists Company aggregates. Companies are platform-level
// rows and are never tenant-scoped themselves.
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByCode(ctx context.Context, code string) (*Company, error)
	FindAllActive(ctx context.Context) ([]Company, error)
	Save(ctx context.Context, company *Company) error
}
