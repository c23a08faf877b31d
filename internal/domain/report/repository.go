package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
)

// DailyTotalRepository maintains the three aggregate levels. Increment
// methods upsert the row for the date and apply the delta atomically so
// concurrent payments on the same date never lose updates. Recompute
// methods rebuild the branch and company roll-ups from the level below,
// refreshing the distinct worker and branch counts.
type DailyTotalRepository interface {
	IncrementWorkerTotal(ctx context.Context, tc tenant.Context, workerID, branchID uuid.UUID, date time.Time, amount valueobject.Money, boxes, payments int) error
	RecomputeBranchTotal(ctx context.Context, tc tenant.Context, branchID uuid.UUID, date time.Time) error
	RecomputeCompanyTotal(ctx context.Context, tc tenant.Context, date time.Time) error

	FindWorkerTotal(ctx context.Context, tc tenant.Context, workerID uuid.UUID, date time.Time) (*WorkerDailyTotal, error)
	FindWorkerTotalsByBranch(ctx context.Context, tc tenant.Context, branchID uuid.UUID, date time.Time) ([]*WorkerDailyTotal, error)
	FindBranchTotal(ctx context.Context, tc tenant.Context, branchID uuid.UUID, date time.Time) (*BranchDailyTotal, error)
	FindBranchTotals(ctx context.Context, tc tenant.Context, date time.Time) ([]*BranchDailyTotal, error)
	FindCompanyTotal(ctx context.Context, tc tenant.Context, date time.Time) (*CompanyDailyTotal, error)
	FindCompanyTotalsInRange(ctx context.Context, tc tenant.Context, from, to time.Time) ([]*CompanyDailyTotal, error)
}
