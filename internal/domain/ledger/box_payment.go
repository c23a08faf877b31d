package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
)

// PaymentMethod is how money was received
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// ValidPaymentMethod reports whether m is one of the accepted methods
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMobileMoney, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// BoxPaymentStatus distinguishes live payments from reversed tombstones
type BoxPaymentStatus string

const (
	BoxPaymentActive   BoxPaymentStatus = "ACTIVE"
	BoxPaymentReversed BoxPaymentStatus = "REVERSED"
)

// BoxPayment is one payment against a customer card. Payments are never
// deleted: a reversal flips the status to REVERSED and records who did it,
// and an adjustment reverses the original and links the replacement back to
// it.
type BoxPayment struct {
	shared.CompanyAggregateRoot
	CustomerCardID uuid.UUID         `json:"customer_card_id"`
	CustomerID     uuid.UUID         `json:"customer_id"`
	BranchID       uuid.UUID         `json:"branch_id"`
	WorkerID       uuid.UUID         `json:"worker_id"`
	BoxesChecked   int               `json:"boxes_checked"`
	AmountPaid     valueobject.Money `json:"amount_paid"`
	PaymentDate    time.Time         `json:"payment_date"`
	PaymentMethod  PaymentMethod     `json:"payment_method"`
	Notes          string            `json:"notes,omitempty"`
	Status         BoxPaymentStatus  `json:"status"`

	ReversedBy    *uuid.UUID `json:"reversed_by,omitempty"`
	ReversedAt    *time.Time `json:"reversed_at,omitempty"`
	ReversalNotes string     `json:"reversal_notes,omitempty"`

	AdjustedFrom    *uuid.UUID `json:"adjusted_from,omitempty"`
	AdjustedBy      *uuid.UUID `json:"adjusted_by,omitempty"`
	AdjustedAt      *time.Time `json:"adjusted_at,omitempty"`
	AdjustmentNotes string     `json:"adjustment_notes,omitempty"`
}

// CardDailySales is the sum of one card's live payments for a single
// calendar date. Reversed tombstones are excluded.
type CardDailySales struct {
	CustomerCardID uuid.UUID         `json:"customer_card_id"`
	Date           time.Time         `json:"date"`
	TotalAmount    valueobject.Money `json:"total_amount"`
	BoxesChecked   int               `json:"boxes_checked"`
	PaymentCount   int               `json:"payment_count"`
}

// NewBoxPayment records a payment that checked the given boxes. The worker
// is the collector, who may differ from the worker the card is assigned to;
// a nil worker falls back to the card's worker.
func NewBoxPayment(cc *CustomerCard, workerID uuid.UUID, boxes int, amount valueobject.Money, paymentDate time.Time, method PaymentMethod, notes string) (*BoxPayment, error) {
	if cc == nil {
		return nil, ErrCustomerCardNotFound
	}
	if workerID == uuid.Nil {
		workerID = cc.WorkerID
	}
	if boxes <= 0 {
		return nil, shared.NewDomainError("INVALID_BOX_COUNT", "Payment must check at least one box")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive")
	}
	if !ValidPaymentMethod(method) {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	p := &BoxPayment{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(cc.CompanyID),
		CustomerCardID:       cc.ID,
		CustomerID:           cc.CustomerID,
		BranchID:             cc.BranchID,
		WorkerID:             workerID,
		BoxesChecked:         boxes,
		AmountPaid:           amount,
		PaymentDate:          paymentDate,
		PaymentMethod:        method,
		Notes:                notes,
		Status:               BoxPaymentActive,
	}
	return p, nil
}

// IsReversed reports whether the payment has been tombstoned
func (p *BoxPayment) IsReversed() bool {
	return p.Status == BoxPaymentReversed
}

// MarkReversed tombstones the payment. Reversing twice is an error so the
// ledger rollback runs exactly once.
func (p *BoxPayment) MarkReversed(by uuid.UUID, notes string, at time.Time) error {
	if p.IsReversed() {
		return ErrPaymentReversed
	}
	p.Status = BoxPaymentReversed
	reversedBy := by
	p.ReversedBy = &reversedBy
	reversedAt := at
	p.ReversedAt = &reversedAt
	p.ReversalNotes = notes
	p.Touch()
	p.IncrementVersion()
	return nil
}

// LinkAdjustment marks a replacement payment as the adjusted successor of
// an original.
func (p *BoxPayment) LinkAdjustment(originalID, by uuid.UUID, notes string, at time.Time) {
	origID := originalID
	p.AdjustedFrom = &origID
	adjustedBy := by
	p.AdjustedBy = &adjustedBy
	adjustedAt := at
	p.AdjustedAt = &adjustedAt
	p.AdjustmentNotes = notes
	p.Touch()
	p.IncrementVersion()
}
