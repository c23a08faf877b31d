package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/tenant"
)

// BranchRepository defines branch persistence operations
type BranchRepository interface {
	FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*Branch, error)
	FindByCode(ctx context.Context, tc tenant.Context, code string) (*Branch, error)
	FindAll(ctx context.Context, tc tenant.Context) ([]*Branch, error)
	Save(ctx context.Context, tc tenant.Context, branch *Branch) error
}

// WorkerRepository defines worker persistence operations
type WorkerRepository interface {
	FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*Worker, error)
	FindByBranch(ctx context.Context, tc tenant.Context, branchID uuid.UUID) ([]*Worker, error)
	FindAll(ctx context.Context, tc tenant.Context) ([]*Worker, error)
	Save(ctx context.Context, tc tenant.Context, worker *Worker) error
}
