package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
)

// CardAssignedEvent fires when a card template is assigned to a customer
type CardAssignedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID         `json:"customer_id"`
	CardID     uuid.UUID         `json:"card_id"`
	WorkerID   uuid.UUID         `json:"worker_id"`
	TotalBoxes int               `json:"total_boxes"`
	Amount     valueobject.Money `json:"amount"`
}

func NewCardAssignedEvent(cc *CustomerCard) *CardAssignedEvent {
	return &CardAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ledger.card_assigned", "CustomerCard", cc.ID, cc.CompanyID),
		CustomerID:      cc.CustomerID,
		CardID:          cc.CardID,
		WorkerID:        cc.WorkerID,
		TotalBoxes:      cc.TotalBoxes,
		Amount:          cc.TotalAmount,
	}
}

// BoxesCheckedEvent fires when a payment checks boxes on a customer card
type BoxesCheckedEvent struct {
	shared.BaseDomainEvent
	PaymentID    uuid.UUID         `json:"payment_id"`
	CustomerID   uuid.UUID         `json:"customer_id"`
	WorkerID     uuid.UUID         `json:"worker_id"`
	BoxesChecked int               `json:"boxes_checked"`
	Amount       valueobject.Money `json:"amount"`
	PaymentDate  time.Time         `json:"payment_date"`
}

func NewBoxesCheckedEvent(cc *CustomerCard, payment *BoxPayment) *BoxesCheckedEvent {
	return &BoxesCheckedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ledger.boxes_checked", "CustomerCard", cc.ID, cc.CompanyID),
		PaymentID:       payment.ID,
		CustomerID:      cc.CustomerID,
		WorkerID:        payment.WorkerID,
		BoxesChecked:    payment.BoxesChecked,
		Amount:          payment.AmountPaid,
		PaymentDate:     payment.PaymentDate,
	}
}

// CardCompletedEvent fires when the last box on a card is checked
type CardCompletedEvent struct {
	shared.BaseDomainEvent
	CustomerID  uuid.UUID         `json:"customer_id"`
	CardID      uuid.UUID         `json:"card_id"`
	TotalAmount valueobject.Money `json:"total_amount"`
}

func NewCardCompletedEvent(cc *CustomerCard) *CardCompletedEvent {
	return &CardCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ledger.card_completed", "CustomerCard", cc.ID, cc.CompanyID),
		CustomerID:      cc.CustomerID,
		CardID:          cc.CardID,
		TotalAmount:     cc.TotalAmount,
	}
}

// PaymentReversedEvent fires when a box payment is tombstoned
type PaymentReversedEvent struct {
	shared.BaseDomainEvent
	CustomerCardID uuid.UUID         `json:"customer_card_id"`
	BoxesUnchecked int               `json:"boxes_unchecked"`
	Amount         valueobject.Money `json:"amount"`
	ReversedBy     uuid.UUID         `json:"reversed_by"`
}

func NewPaymentReversedEvent(payment *BoxPayment, reversedBy uuid.UUID) *PaymentReversedEvent {
	return &PaymentReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ledger.payment_reversed", "BoxPayment", payment.ID, payment.CompanyID),
		CustomerCardID:  payment.CustomerCardID,
		BoxesUnchecked:  payment.BoxesChecked,
		Amount:          payment.AmountPaid,
		ReversedBy:      reversedBy,
	}
}

// PaymentAdjustedEvent fires when a payment is replaced with corrected terms
type PaymentAdjustedEvent struct {
	shared.BaseDomainEvent
	OriginalPaymentID uuid.UUID         `json:"original_payment_id"`
	CustomerCardID    uuid.UUID         `json:"customer_card_id"`
	NewBoxesChecked   int               `json:"new_boxes_checked"`
	NewAmount         valueobject.Money `json:"new_amount"`
	AdjustedBy        uuid.UUID         `json:"adjusted_by"`
}

func NewPaymentAdjustedEvent(replacement *BoxPayment, originalID, adjustedBy uuid.UUID) *PaymentAdjustedEvent {
	return &PaymentAdjustedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("ledger.payment_adjusted", "BoxPayment", replacement.ID, replacement.CompanyID),
		OriginalPaymentID: originalID,
		CustomerCardID:    replacement.CustomerCardID,
		NewBoxesChecked:   replacement.BoxesChecked,
		NewAmount:         replacement.AmountPaid,
		AdjustedBy:        adjustedBy,
	}
}

// LegacyPaymentRecordedEvent fires when an installment lands on the legacy
// customer ledger.
type LegacyPaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID         `json:"payment_id"`
	WorkerID  uuid.UUID         `json:"worker_id"`
	Amount    valueobject.Money `json:"amount"`
	Completed bool              `json:"completed"`
}

func NewLegacyPaymentRecordedEvent(customer *Customer, payment *Payment) *LegacyPaymentRecordedEvent {
	return &LegacyPaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ledger.legacy_payment_recorded", "Customer", customer.ID, customer.CompanyID),
		PaymentID:       payment.ID,
		WorkerID:        payment.WorkerID,
		Amount:          payment.Amount,
		Completed:       customer.Status == CustomerCompleted,
	}
}
