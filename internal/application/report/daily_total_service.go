// Package report exposes the daily collection roll-ups: recording happens
// inside payment transactions, reading backs the reporting endpoints.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sanduq/backend/internal/domain/report"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/telemetry"
)

// DailyTotalService maintains and serves the three-level daily totals
type DailyTotalService struct {
	dailyTotalRepo report.DailyTotalRepository
}

// NewDailyTotalService creates a new DailyTotalService
func NewDailyTotalService(dailyTotalRepo report.DailyTotalRepository) *DailyTotalService {
	return &DailyTotalService{dailyTotalRepo: dailyTotalRepo}
}

// RecordCollection rolls one payment into the worker, branch and company
// totals for the payment's calendar date. It must run inside the payment's
// transaction so the totals never drift from the payment rows.
func (s *DailyTotalService) RecordCollection(ctx context.Context, tc tenant.Context, workerID, branchID uuid.UUID, paymentDate time.Time, amount valueobject.Money, boxes int) error {
	return s.apply(ctx, tc, workerID, branchID, paymentDate, amount, boxes, 1)
}

// ReverseCollection backs one reversed payment out of the totals for the
// date the payment was originally recorded on.
func (s *DailyTotalService) ReverseCollection(ctx context.Context, tc tenant.Context, workerID, branchID uuid.UUID, paymentDate time.Time, amount valueobject.Money, boxes int) error {
	return s.apply(ctx, tc, workerID, branchID, paymentDate, amount.Negate(), -boxes, -1)
}

func (s *DailyTotalService) apply(ctx context.Context, tc tenant.Context, workerID, branchID uuid.UUID, paymentDate time.Time, amount valueobject.Money, boxes, payments int) error {
	date := report.DateOf(paymentDate)
	if err := s.dailyTotalRepo.IncrementWorkerTotal(ctx, tc, workerID, branchID, date, amount, boxes, payments); err != nil {
		return fmt.Errorf("failed to update worker daily total: %w", err)
	}
	if err := s.dailyTotalRepo.RecomputeBranchTotal(ctx, tc, branchID, date); err != nil {
		return fmt.Errorf("failed to recompute branch daily total: %w", err)
	}
	if err := s.dailyTotalRepo.RecomputeCompanyTotal(ctx, tc, date); err != nil {
		return fmt.Errorf("failed to recompute company daily total: %w", err)
	}
	return nil
}

// DailySalesReport is the company-wide view for one date with its branch
// breakdown.
type DailySalesReport struct {
	Date         time.Time                  `json:"date"`
	TotalAmount  valueobject.Money          `json:"total_amount"`
	TotalBoxes   int                        `json:"total_boxes"`
	PaymentCount int                        `json:"payment_count"`
	BranchCount  int                        `json:"branch_count"`
	WorkerCount  int                        `json:"worker_count"`
	Branches     []*report.BranchDailyTotal `json:"branches"`
}

// GetDailySales returns the company roll-up and branch breakdown for a date.
// A date with no collections returns a zero report, not an error.
func (s *DailyTotalService) GetDailySales(ctx context.Context, at time.Time) (*DailySalesReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "daily_total", "get_daily_sales")
	defer span.End()

	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		return nil, fmt.Errorf("daily sales require a company scope")
	}

	date := report.DateOf(at)
	companyTotal, err := s.dailyTotalRepo.FindCompanyTotal(ctx, tc, date)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load company daily total: %w", err)
	}

	result := &DailySalesReport{
		Date:        date,
		TotalAmount: valueobject.ZeroKES(),
		Branches:    []*report.BranchDailyTotal{},
	}
	if companyTotal == nil {
		return result, nil
	}

	branches, err := s.dailyTotalRepo.FindBranchTotals(ctx, tc, date)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load branch daily totals: %w", err)
	}

	result.TotalAmount = companyTotal.TotalAmount
	result.TotalBoxes = companyTotal.TotalBoxes
	result.PaymentCount = companyTotal.PaymentCount
	result.BranchCount = companyTotal.BranchCount
	result.WorkerCount = companyTotal.WorkerCount
	result.Branches = branches
	return result, nil
}

// GetWorkerDailySales returns one worker's totals for a date. A worker with
// no collections gets a zero row.
func (s *DailyTotalService) GetWorkerDailySales(ctx context.Context, workerID uuid.UUID, at time.Time) (*report.WorkerDailyTotal, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "daily_total", "get_worker_daily_sales")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrWorkerID, workerID.String())

	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		return nil, fmt.Errorf("worker daily sales require a company scope")
	}

	date := report.DateOf(at)
	total, err := s.dailyTotalRepo.FindWorkerTotal(ctx, tc, workerID, date)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load worker daily total: %w", err)
	}
	if total == nil {
		companyID, _ := tc.CompanyID()
		empty := report.NewWorkerDailyTotal(companyID, workerID, uuid.Nil, date)
		return empty, nil
	}
	return total, nil
}

// GetBranchDailySales returns one branch's totals and its per-worker rows
// for a date.
func (s *DailyTotalService) GetBranchDailySales(ctx context.Context, branchID uuid.UUID, at time.Time) (*report.BranchDailyTotal, []*report.WorkerDailyTotal, error) {
	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		return nil, nil, fmt.Errorf("branch daily sales require a company scope")
	}

	date := report.DateOf(at)
	branchTotal, err := s.dailyTotalRepo.FindBranchTotal(ctx, tc, branchID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load branch daily total: %w", err)
	}
	workers, err := s.dailyTotalRepo.FindWorkerTotalsByBranch(ctx, tc, branchID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load worker daily totals: %w", err)
	}
	return branchTotal, workers, nil
}

// GetSalesRange returns company totals for each date in [from, to]
func (s *DailyTotalService) GetSalesRange(ctx context.Context, from, to time.Time) ([]*report.CompanyDailyTotal, error) {
	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		return nil, fmt.Errorf("sales range requires a company scope")
	}
	if to.Before(from) {
		from, to = to, from
	}
	totals, err := s.dailyTotalRepo.FindCompanyTotalsInRange(ctx, tc, report.DateOf(from), report.DateOf(to))
	if err != nil {
		return nil, fmt.Errorf("failed to load company daily totals: %w", err)
	}
	return totals, nil
}
