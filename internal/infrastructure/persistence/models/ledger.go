package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CardModel is the persistence model for the Card template aggregate root.
type CardModel struct {
	CompanyAggregateModel
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_card_company_code,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null"`
	NumberOfBoxes int             `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'KES'"`
	Description   string          `gorm:"type:text"`
	Active        bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CardModel) TableName() string {
	return "cards"
}

// ToDomain converts the persistence model to a domain Card
func (m *CardModel) ToDomain() *ledger.Card {
	c := &ledger.Card{
		Code:          m.Code,
		Name:          m.Name,
		NumberOfBoxes: m.NumberOfBoxes,
		Amount:        money(m.Amount, m.Currency),
		Description:   m.Description,
		Active:        m.Active,
	}
	m.PopulateCompanyAggregateRoot(&c.CompanyAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Card
func (m *CardModel) FromDomain(c *ledger.Card) {
	m.FromDomainCompanyAggregateRoot(c.CompanyAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.NumberOfBoxes = c.NumberOfBoxes
	m.Amount = c.Amount.Amount()
	m.Currency = string(c.Amount.Currency())
	m.Description = c.Description
	m.Active = c.Active
}

// CardModelFromDomain creates a new persistence model from a domain Card
func CardModelFromDomain(c *ledger.Card) *CardModel {
	m := &CardModel{}
	m.FromDomain(c)
	return m
}

// CustomerModel is the persistence model for the legacy Customer ledger.
type CustomerModel struct {
	CompanyAggregateModel
	Name            string          `gorm:"type:varchar(200);not null"`
	Phone           string          `gorm:"type:varchar(30)"`
	BranchID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalBoxes      int             `gorm:"not null"`
	BoxesFilled     decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	PricePerBox     decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'KES'"`
	Status          string          `gorm:"type:varchar(20);not null;default:'in_progress';index"`
	LastPaymentDate *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *ledger.Customer {
	c := &ledger.Customer{
		Name:            m.Name,
		Phone:           m.Phone,
		BranchID:        m.BranchID,
		WorkerID:        m.WorkerID,
		TotalBoxes:      m.TotalBoxes,
		BoxesFilled:     m.BoxesFilled,
		PricePerBox:     money(m.PricePerBox, m.Currency),
		TotalAmount:     money(m.TotalAmount, m.Currency),
		AmountPaid:      money(m.AmountPaid, m.Currency),
		Status:          ledger.CustomerStatus(m.Status),
		LastPaymentDate: m.LastPaymentDate,
	}
	m.PopulateCompanyAggregateRoot(&c.CompanyAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *ledger.Customer) {
	m.FromDomainCompanyAggregateRoot(c.CompanyAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.BranchID = c.BranchID
	m.WorkerID = c.WorkerID
	m.TotalBoxes = c.TotalBoxes
	m.BoxesFilled = c.BoxesFilled
	m.PricePerBox = c.PricePerBox.Amount()
	m.TotalAmount = c.TotalAmount.Amount()
	m.AmountPaid = c.AmountPaid.Amount()
	m.Currency = string(c.TotalAmount.Currency())
	m.Status = string(c.Status)
	m.LastPaymentDate = c.LastPaymentDate
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *ledger.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// CustomerCardModel is the persistence model for the CustomerCard aggregate root.
type CustomerCardModel struct {
	CompanyAggregateModel
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CardID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalBoxes      int             `gorm:"not null"`
	BoxesChecked    int             `gorm:"not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AmountRemaining decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'KES'"`
	Status          string          `gorm:"type:varchar(20);not null;default:'active';index"`
	AssignedDate    time.Time       `gorm:"not null"`
	AssignedBy      *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CustomerCardModel) TableName() string {
	return "customer_cards"
}

// ToDomain converts the persistence model to a domain CustomerCard
func (m *CustomerCardModel) ToDomain() *ledger.CustomerCard {
	cc := &ledger.CustomerCard{
		CustomerID:      m.CustomerID,
		CardID:          m.CardID,
		BranchID:        m.BranchID,
		WorkerID:        m.WorkerID,
		TotalBoxes:      m.TotalBoxes,
		BoxesChecked:    m.BoxesChecked,
		TotalAmount:     money(m.TotalAmount, m.Currency),
		AmountPaid:      money(m.AmountPaid, m.Currency),
		AmountRemaining: money(m.AmountRemaining, m.Currency),
		Status:          ledger.CustomerCardStatus(m.Status),
		AssignedDate:    m.AssignedDate,
		AssignedBy:      m.AssignedBy,
	}
	m.PopulateCompanyAggregateRoot(&cc.CompanyAggregateRoot)
	return cc
}

// FromDomain populates the persistence model from a domain CustomerCard
func (m *CustomerCardModel) FromDomain(cc *ledger.CustomerCard) {
	m.FromDomainCompanyAggregateRoot(cc.CompanyAggregateRoot)
	m.CustomerID = cc.CustomerID
	m.CardID = cc.CardID
	m.BranchID = cc.BranchID
	m.WorkerID = cc.WorkerID
	m.TotalBoxes = cc.TotalBoxes
	m.BoxesChecked = cc.BoxesChecked
	m.TotalAmount = cc.TotalAmount.Amount()
	m.AmountPaid = cc.AmountPaid.Amount()
	m.AmountRemaining = cc.AmountRemaining.Amount()
	m.Currency = string(cc.TotalAmount.Currency())
	m.Status = string(cc.Status)
	m.AssignedDate = cc.AssignedDate
	m.AssignedBy = cc.AssignedBy
}

// CustomerCardModelFromDomain creates a new persistence model from a domain CustomerCard
func CustomerCardModelFromDomain(cc *ledger.CustomerCard) *CustomerCardModel {
	m := &CustomerCardModel{}
	m.FromDomain(cc)
	return m
}

// BoxStateModel is the persistence model for one box on a customer card.
type BoxStateModel struct {
	BaseModel
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerCardID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_box_card_number,priority:1"`
	BoxNumber      int        `gorm:"not null;uniqueIndex:idx_box_card_number,priority:2"`
	IsChecked      bool       `gorm:"not null;default:false;index"`
	CheckedDate    *time.Time
	PaymentID      *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (BoxStateModel) TableName() string {
	return "box_states"
}

// ToDomain converts the persistence model to a domain BoxState
func (m *BoxStateModel) ToDomain() *ledger.BoxState {
	return &ledger.BoxState{
		BaseEntity:     m.BaseModel.ToDomain(),
		CompanyID:      m.CompanyID,
		CustomerCardID: m.CustomerCardID,
		BoxNumber:      m.BoxNumber,
		IsChecked:      m.IsChecked,
		CheckedDate:    m.CheckedDate,
		PaymentID:      m.PaymentID,
	}
}

// FromDomain populates the persistence model from a domain BoxState
func (m *BoxStateModel) FromDomain(b *ledger.BoxState) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.CompanyID = b.CompanyID
	m.CustomerCardID = b.CustomerCardID
	m.BoxNumber = b.BoxNumber
	m.IsChecked = b.IsChecked
	m.CheckedDate = b.CheckedDate
	m.PaymentID = b.PaymentID
}

// BoxStateModelFromDomain creates a new persistence model from a domain BoxState
func BoxStateModelFromDomain(b *ledger.BoxState) *BoxStateModel {
	m := &BoxStateModel{}
	m.FromDomain(b)
	return m
}

// BoxPaymentModel is the persistence model for the BoxPayment aggregate root.
// Reversed payments stay in the table as tombstones.
type BoxPaymentModel struct {
	CompanyAggregateModel
	CustomerCardID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	BoxesChecked   int             `gorm:"not null"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'KES'"`
	PaymentDate    time.Time       `gorm:"not null;index"`
	PaymentMethod  string          `gorm:"type:varchar(20);not null"`
	Notes          string          `gorm:"type:text"`
	Status         string          `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`

	ReversedBy    *uuid.UUID `gorm:"type:uuid"`
	ReversedAt    *time.Time
	ReversalNotes string     `gorm:"type:varchar(500)"`

	AdjustedFrom    *uuid.UUID `gorm:"type:uuid;index"`
	AdjustedBy      *uuid.UUID `gorm:"type:uuid"`
	AdjustedAt      *time.Time
	AdjustmentNotes string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BoxPaymentModel) TableName() string {
	return "box_payments"
}

// ToDomain converts the persistence model to a domain BoxPayment
func (m *BoxPaymentModel) ToDomain() *ledger.BoxPayment {
	p := &ledger.BoxPayment{
		CustomerCardID:  m.CustomerCardID,
		CustomerID:      m.CustomerID,
		BranchID:        m.BranchID,
		WorkerID:        m.WorkerID,
		BoxesChecked:    m.BoxesChecked,
		AmountPaid:      money(m.AmountPaid, m.Currency),
		PaymentDate:     m.PaymentDate,
		PaymentMethod:   ledger.PaymentMethod(m.PaymentMethod),
		Notes:           m.Notes,
		Status:          ledger.BoxPaymentStatus(m.Status),
		ReversedBy:      m.ReversedBy,
		ReversedAt:      m.ReversedAt,
		ReversalNotes:   m.ReversalNotes,
		AdjustedFrom:    m.AdjustedFrom,
		AdjustedBy:      m.AdjustedBy,
		AdjustedAt:      m.AdjustedAt,
		AdjustmentNotes: m.AdjustmentNotes,
	}
	m.PopulateCompanyAggregateRoot(&p.CompanyAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain BoxPayment
func (m *BoxPaymentModel) FromDomain(p *ledger.BoxPayment) {
	m.FromDomainCompanyAggregateRoot(p.CompanyAggregateRoot)
	m.CustomerCardID = p.CustomerCardID
	m.CustomerID = p.CustomerID
	m.BranchID = p.BranchID
	m.WorkerID = p.WorkerID
	m.BoxesChecked = p.BoxesChecked
	m.AmountPaid = p.AmountPaid.Amount()
	m.Currency = string(p.AmountPaid.Currency())
	m.PaymentDate = p.PaymentDate
	m.PaymentMethod = string(p.PaymentMethod)
	m.Notes = p.Notes
	m.Status = string(p.Status)
	m.ReversedBy = p.ReversedBy
	m.ReversedAt = p.ReversedAt
	m.ReversalNotes = p.ReversalNotes
	m.AdjustedFrom = p.AdjustedFrom
	m.AdjustedBy = p.AdjustedBy
	m.AdjustedAt = p.AdjustedAt
	m.AdjustmentNotes = p.AdjustmentNotes
}

// BoxPaymentModelFromDomain creates a new persistence model from a domain BoxPayment
func BoxPaymentModelFromDomain(p *ledger.BoxPayment) *BoxPaymentModel {
	m := &BoxPaymentModel{}
	m.FromDomain(p)
	return m
}

// PaymentModel is the persistence model for legacy ledger installments.
type PaymentModel struct {
	CompanyAggregateModel
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'KES'"`
	PaymentDate   time.Time       `gorm:"not null;index"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *ledger.Payment {
	p := &ledger.Payment{
		CustomerID:    m.CustomerID,
		BranchID:      m.BranchID,
		WorkerID:      m.WorkerID,
		Amount:        money(m.Amount, m.Currency),
		PaymentDate:   m.PaymentDate,
		PaymentMethod: ledger.PaymentMethod(m.PaymentMethod),
		Notes:         m.Notes,
	}
	m.PopulateCompanyAggregateRoot(&p.CompanyAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *ledger.Payment) {
	m.FromDomainCompanyAggregateRoot(p.CompanyAggregateRoot)
	m.CustomerID = p.CustomerID
	m.BranchID = p.BranchID
	m.WorkerID = p.WorkerID
	m.Amount = p.Amount.Amount()
	m.Currency = string(p.Amount.Currency())
	m.PaymentDate = p.PaymentDate
	m.PaymentMethod = string(p.PaymentMethod)
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
