package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// WorkerDailyTotalModel is one worker's collections for one calendar date.
// Rows are upserted with atomic deltas, never replaced.
type WorkerDailyTotalModel struct {
	BaseModel
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_worker_total_day,priority:1"`
	WorkerID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_worker_total_day,priority:2"`
	BranchID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalDate    time.Time       `gorm:"type:date;not null;uniqueIndex:idx_worker_total_day,priority:3"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'KES'"`
	TotalBoxes   int             `gorm:"not null;default:0"`
	PaymentCount int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (WorkerDailyTotalModel) TableName() string {
	return "worker_daily_totals"
}

// ToDomain converts the persistence model to a domain WorkerDailyTotal
func (m *WorkerDailyTotalModel) ToDomain() *report.WorkerDailyTotal {
	return &report.WorkerDailyTotal{
		BaseEntity:   m.BaseModel.ToDomain(),
		CompanyID:    m.CompanyID,
		WorkerID:     m.WorkerID,
		BranchID:     m.BranchID,
		TotalDate:    m.TotalDate,
		TotalAmount:  money(m.TotalAmount, m.Currency),
		TotalBoxes:   m.TotalBoxes,
		PaymentCount: m.PaymentCount,
	}
}

// FromDomain populates the persistence model from a domain WorkerDailyTotal
func (m *WorkerDailyTotalModel) FromDomain(w *report.WorkerDailyTotal) {
	m.FromDomainBaseEntity(w.BaseEntity)
	m.CompanyID = w.CompanyID
	m.WorkerID = w.WorkerID
	m.BranchID = w.BranchID
	m.TotalDate = w.TotalDate
	m.TotalAmount = w.TotalAmount.Amount()
	m.Currency = string(w.TotalAmount.Currency())
	m.TotalBoxes = w.TotalBoxes
	m.PaymentCount = w.PaymentCount
}

// BranchDailyTotalModel is one branch's roll-up for one calendar date.
type BranchDailyTotalModel struct {
	BaseModel
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_branch_total_day,priority:1"`
	BranchID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_branch_total_day,priority:2"`
	TotalDate    time.Time       `gorm:"type:date;not null;uniqueIndex:idx_branch_total_day,priority:3"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'KES'"`
	TotalBoxes   int             `gorm:"not null;default:0"`
	PaymentCount int             `gorm:"not null;default:0"`
	WorkerCount  int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BranchDailyTotalModel) TableName() string {
	return "branch_daily_totals"
}

// ToDomain converts the persistence model to a domain BranchDailyTotal
func (m *BranchDailyTotalModel) ToDomain() *report.BranchDailyTotal {
	return &report.BranchDailyTotal{
		BaseEntity:   m.BaseModel.ToDomain(),
		CompanyID:    m.CompanyID,
		BranchID:     m.BranchID,
		TotalDate:    m.TotalDate,
		TotalAmount:  money(m.TotalAmount, m.Currency),
		TotalBoxes:   m.TotalBoxes,
		PaymentCount: m.PaymentCount,
		WorkerCount:  m.WorkerCount,
	}
}

// FromDomain populates the persistence model from a domain BranchDailyTotal
func (m *BranchDailyTotalModel) FromDomain(b *report.BranchDailyTotal) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.CompanyID = b.CompanyID
	m.BranchID = b.BranchID
	m.TotalDate = b.TotalDate
	m.TotalAmount = b.TotalAmount.Amount()
	m.Currency = string(b.TotalAmount.Currency())
	m.TotalBoxes = b.TotalBoxes
	m.PaymentCount = b.PaymentCount
	m.WorkerCount = b.WorkerCount
}

// CompanyDailyTotalModel is the company-wide roll-up for one calendar date.
type CompanyDailyTotalModel struct {
	BaseModel
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_company_total_day,priority:1"`
	TotalDate    time.Time       `gorm:"type:date;not null;uniqueIndex:idx_company_total_day,priority:2"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'KES'"`
	TotalBoxes   int             `gorm:"not null;default:0"`
	PaymentCount int             `gorm:"not null;default:0"`
	BranchCount  int             `gorm:"not null;default:0"`
	WorkerCount  int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CompanyDailyTotalModel) TableName() string {
	return "company_daily_totals"
}

// ToDomain converts the persistence model to a domain CompanyDailyTotal
func (m *CompanyDailyTotalModel) ToDomain() *report.CompanyDailyTotal {
	return &report.CompanyDailyTotal{
		BaseEntity:   m.BaseModel.ToDomain(),
		CompanyID:    m.CompanyID,
		TotalDate:    m.TotalDate,
		TotalAmount:  money(m.TotalAmount, m.Currency),
		TotalBoxes:   m.TotalBoxes,
		PaymentCount: m.PaymentCount,
		BranchCount:  m.BranchCount,
		WorkerCount:  m.WorkerCount,
	}
}

// FromDomain populates the persistence model from a domain CompanyDailyTotal
func (m *CompanyDailyTotalModel) FromDomain(c *report.CompanyDailyTotal) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.CompanyID = c.CompanyID
	m.TotalDate = c.TotalDate
	m.TotalAmount = c.TotalAmount.Amount()
	m.Currency = string(c.TotalAmount.Currency())
	m.TotalBoxes = c.TotalBoxes
	m.PaymentCount = c.PaymentCount
	m.BranchCount = c.BranchCount
	m.WorkerCount = c.WorkerCount
}
