package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/report"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyTotalRepository implements report.DailyTotalRepository using GORM
type GormDailyTotalRepository struct {
	db *gorm.DB
}

// NewGormDailyTotalRepository creates a new GormDailyTotalRepository
func NewGormDailyTotalRepository(db *gorm.DB) *GormDailyTotalRepository {
	return &GormDailyTotalRepository{db: db}
}

// IncrementWorkerTotal upserts the worker's row for the date and applies
// the deltas in SQL. Concurrent payments on the same worker and date both
// land because the database applies the additions, not the application.
// Negative deltas from reversals are applied the same way.
func (r *GormDailyTotalRepository) IncrementWorkerTotal(ctx context.Context, tc tenant.Context, workerID, branchID uuid.UUID, date time.Time, amount valueobject.Money, boxes, payments int) error {
	if err := requireScope(tc); err != nil {
		return err
	}
	companyID, _ := tc.CompanyID()

	now := time.Now().UTC()
	row := models.WorkerDailyTotalModel{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:    companyID,
		WorkerID:     workerID,
		BranchID:     branchID,
		TotalDate:    report.DateOf(date),
		TotalAmount:  amount.Amount(),
		Currency:     string(amount.Currency()),
		TotalBoxes:   boxes,
		PaymentCount: payments,
	}

	return Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"},
				{Name: "worker_id"},
				{Name: "total_date"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"total_amount":  gorm.Expr("worker_daily_totals.total_amount + ?", amount.Amount()),
				"total_boxes":   gorm.Expr("worker_daily_totals.total_boxes + ?", boxes),
				"payment_count": gorm.Expr("worker_daily_totals.payment_count + ?", payments),
				"updated_at":    now,
			}),
		}).
		Create(&row).Error
}

// RecomputeBranchTotal rebuilds the branch roll-up for the date from the
// worker rows beneath it. Rebuilding instead of incrementing keeps the
// worker count correct when a payment introduces a new worker to the day.
func (r *GormDailyTotalRepository) RecomputeBranchTotal(ctx context.Context, tc tenant.Context, branchID uuid.UUID, date time.Time) error {
	if err := requireScope(tc); err != nil {
		return err
	}
	companyID, _ := tc.CompanyID()
	day := report.DateOf(date)

	var agg struct {
		TotalAmount  decimal.Decimal
		TotalBoxes   int
		PaymentCount int
		WorkerCount  int
	}
	err := Conn(ctx, r.db).
		Model(&models.WorkerDailyTotalModel{}).
		Select(
			"COALESCE(SUM(total_amount), 0) AS total_amount, "+
				"COALESCE(SUM(total_boxes), 0) AS total_boxes, "+
				"COALESCE(SUM(payment_count), 0) AS payment_count, "+
				"COUNT(DISTINCT worker_id) AS worker_count").
		Where("company_id = ? AND branch_id = ? AND total_date = ?", companyID, branchID, day).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	row := models.BranchDailyTotalModel{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:    companyID,
		BranchID:     branchID,
		TotalDate:    day,
		TotalAmount:  agg.TotalAmount,
		Currency:     string(valueobject.DefaultCurrency),
		TotalBoxes:   agg.TotalBoxes,
		PaymentCount: agg.PaymentCount,
		WorkerCount:  agg.WorkerCount,
	}

	return Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"},
				{Name: "branch_id"},
				{Name: "total_date"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"total_amount":  agg.TotalAmount,
				"total_boxes":   agg.TotalBoxes,
				"payment_count": agg.PaymentCount,
				"worker_count":  agg.WorkerCount,
				"updated_at":    now,
			}),
		}).
		Create(&row).Error
}

// RecomputeCompanyTotal rebuilds the company roll-up for the date from
// the branch rows beneath it.
func (r *GormDailyTotalRepository) RecomputeCompanyTotal(ctx context.Context, tc tenant.Context, date time.Time) error {
	if err := requireScope(tc); err != nil {
		return err
	}
	companyID, _ := tc.CompanyID()
	day := report.DateOf(date)

	var agg struct {
		TotalAmount  decimal.Decimal
		TotalBoxes   int
		PaymentCount int
		BranchCount  int
		WorkerCount  int
	}
	err := Conn(ctx, r.db).
		Model(&models.BranchDailyTotalModel{}).
		Select(
			"COALESCE(SUM(total_amount), 0) AS total_amount, "+
				"COALESCE(SUM(total_boxes), 0) AS total_boxes, "+
				"COALESCE(SUM(payment_count), 0) AS payment_count, "+
				"COUNT(DISTINCT branch_id) AS branch_count, "+
				"COALESCE(SUM(worker_count), 0) AS worker_count").
		Where("company_id = ? AND total_date = ?", companyID, day).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	row := models.CompanyDailyTotalModel{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:    companyID,
		TotalDate:    day,
		TotalAmount:  agg.TotalAmount,
		Currency:     string(valueobject.DefaultCurrency),
		TotalBoxes:   agg.TotalBoxes,
		PaymentCount: agg.PaymentCount,
		BranchCount:  agg.BranchCount,
		WorkerCount:  agg.WorkerCount,
	}

	return Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"},
				{Name: "total_date"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"total_amount":  agg.TotalAmount,
				"total_boxes":   agg.TotalBoxes,
				"payment_count": agg.PaymentCount,
				"branch_count":  agg.BranchCount,
				"worker_count":  agg.WorkerCount,
				"updated_at":    now,
			}),
		}).
		Create(&row).Error
}

// FindWorkerTotal returns one worker's totals for one date
func (r *GormDailyTotalRepository) FindWorkerTotal(ctx context.Context, tc tenant.Context, workerID uuid.UUID, date time.Time) (*report.WorkerDailyTotal, error) {
	var model models.WorkerDailyTotalModel
	err := scoped(Conn(ctx, r.db), tc).
		Where("worker_id = ? AND total_date = ?", workerID, report.DateOf(date)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindWorkerTotalsByBranch returns all worker totals of a branch for one date
func (r *GormDailyTotalRepository) FindWorkerTotalsByBranch(ctx context.Context, tc tenant.Context, branchID uuid.UUID, date time.Time) ([]*report.WorkerDailyTotal, error) {
	var totalModels []models.WorkerDailyTotalModel
	err := scoped(Conn(ctx, r.db), tc).
		Where("branch_id = ? AND total_date = ?", branchID, report.DateOf(date)).
		Order("total_amount DESC").
		Find(&totalModels).Error
	if err != nil {
		return nil, err
	}
	totals := make([]*report.WorkerDailyTotal, len(totalModels))
	for i := range totalModels {
		totals[i] = totalModels[i].ToDomain()
	}
	return totals, nil
}

// FindBranchTotal returns one branch's roll-up for one date
func (r *GormDailyTotalRepository) FindBranchTotal(ctx context.Context, tc tenant.Context, branchID uuid.UUID, date time.Time) (*report.BranchDailyTotal, error) {
	var model models.BranchDailyTotalModel
	err := scoped(Conn(ctx, r.db), tc).
		Where("branch_id = ? AND total_date = ?", branchID, report.DateOf(date)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBranchTotals returns all branch roll-ups for one date
func (r *GormDailyTotalRepository) FindBranchTotals(ctx context.Context, tc tenant.Context, date time.Time) ([]*report.BranchDailyTotal, error) {
	var totalModels []models.BranchDailyTotalModel
	err := scoped(Conn(ctx, r.db), tc).
		Where("total_date = ?", report.DateOf(date)).
		Order("total_amount DESC").
		Find(&totalModels).Error
	if err != nil {
		return nil, err
	}
	totals := make([]*report.BranchDailyTotal, len(totalModels))
	for i := range totalModels {
		totals[i] = totalModels[i].ToDomain()
	}
	return totals, nil
}

// FindCompanyTotal returns the company roll-up for one date
func (r *GormDailyTotalRepository) FindCompanyTotal(ctx context.Context, tc tenant.Context, date time.Time) (*report.CompanyDailyTotal, error) {
	var model models.CompanyDailyTotalModel
	err := scoped(Conn(ctx, r.db), tc).
		Where("total_date = ?", report.DateOf(date)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindCompanyTotalsInRange returns company roll-ups for an inclusive
// date range, oldest first.
func (r *GormDailyTotalRepository) FindCompanyTotalsInRange(ctx context.Context, tc tenant.Context, from, to time.Time) ([]*report.CompanyDailyTotal, error) {
	var totalModels []models.CompanyDailyTotalModel
	err := scoped(Conn(ctx, r.db), tc).
		Where("total_date >= ? AND total_date <= ?", report.DateOf(from), report.DateOf(to)).
		Order("total_date ASC").
		Find(&totalModels).Error
	if err != nil {
		return nil, err
	}
	totals := make([]*report.CompanyDailyTotal, len(totalModels))
	for i := range totalModels {
		totals[i] = totalModels[i].ToDomain()
	}
	return totals, nil
}

var _ report.DailyTotalRepository = (*GormDailyTotalRepository)(nil)
