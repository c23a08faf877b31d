// Package report holds the daily collection aggregates kept at three
// levels: per worker, per branch, per company. Rows are keyed by the
// payment's calendar date and updated in the same transaction as the
// payment itself.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
)

// DateOf truncates a timestamp to its calendar date in UTC. All daily
// total rows are keyed by this.
func DateOf(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

// WorkerDailyTotal is one worker's collections for one calendar date
type WorkerDailyTotal struct {
	shared.BaseEntity
	CompanyID    uuid.UUID         `json:"company_id"`
	WorkerID     uuid.UUID         `json:"worker_id"`
	BranchID     uuid.UUID         `json:"branch_id"`
	TotalDate    time.Time         `json:"total_date"`
	TotalAmount  valueobject.Money `json:"total_amount"`
	TotalBoxes   int               `json:"total_boxes"`
	PaymentCount int               `json:"payment_count"`
}

// NewWorkerDailyTotal creates an empty row for a worker and date
func NewWorkerDailyTotal(companyID, workerID, branchID uuid.UUID, date time.Time) *WorkerDailyTotal {
	return &WorkerDailyTotal{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		WorkerID:    workerID,
		BranchID:    branchID,
		TotalDate:   DateOf(date),
		TotalAmount: valueobject.ZeroKES(),
	}
}

// ApplyCollection adds one payment to the day's running totals
func (w *WorkerDailyTotal) ApplyCollection(amount valueobject.Money, boxes int) error {
	total, err := w.TotalAmount.Add(amount)
	if err != nil {
		return err
	}
	w.TotalAmount = total
	w.TotalBoxes += boxes
	w.PaymentCount++
	w.Touch()
	return nil
}

// ApplyReversal subtracts a reversed payment from the day's totals
func (w *WorkerDailyTotal) ApplyReversal(amount valueobject.Money, boxes int) error {
	total, err := w.TotalAmount.Subtract(amount)
	if err != nil {
		return err
	}
	w.TotalAmount = total
	w.TotalBoxes -= boxes
	w.PaymentCount--
	w.Touch()
	return nil
}

// BranchDailyTotal is one branch's collections for one calendar date,
// rolled up across its workers.
type BranchDailyTotal struct {
	shared.BaseEntity
	CompanyID    uuid.UUID         `json:"company_id"`
	BranchID     uuid.UUID         `json:"branch_id"`
	TotalDate    time.Time         `json:"total_date"`
	TotalAmount  valueobject.Money `json:"total_amount"`
	TotalBoxes   int               `json:"total_boxes"`
	PaymentCount int               `json:"payment_count"`
	WorkerCount  int               `json:"worker_count"`
}

// NewBranchDailyTotal creates an empty row for a branch and date
func NewBranchDailyTotal(companyID, branchID uuid.UUID, date time.Time) *BranchDailyTotal {
	return &BranchDailyTotal{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		BranchID:    branchID,
		TotalDate:   DateOf(date),
		TotalAmount: valueobject.ZeroKES(),
	}
}

// CompanyDailyTotal is the company-wide roll-up for one calendar date
type CompanyDailyTotal struct {
	shared.BaseEntity
	CompanyID    uuid.UUID         `json:"company_id"`
	TotalDate    time.Time         `json:"total_date"`
	TotalAmount  valueobject.Money `json:"total_amount"`
	TotalBoxes   int               `json:"total_boxes"`
	PaymentCount int               `json:"payment_count"`
	BranchCount  int               `json:"branch_count"`
	WorkerCount  int               `json:"worker_count"`
}

// NewCompanyDailyTotal creates an empty row for a company and date
func NewCompanyDailyTotal(companyID uuid.UUID, date time.Time) *CompanyDailyTotal {
	return &CompanyDailyTotal{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		TotalDate:   DateOf(date),
		TotalAmount: valueobject.ZeroKES(),
	}
}
