package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
)

// Payment is one installment on the legacy customer ledger. It carries no
// box state; the customer aggregate derives fractional progress from the
// running amount.
type Payment struct {
	shared.CompanyAggregateRoot
	CustomerID    uuid.UUID         `json:"customer_id"`
	BranchID      uuid.UUID         `json:"branch_id"`
	WorkerID      uuid.UUID         `json:"worker_id"`
	Amount        valueobject.Money `json:"amount"`
	PaymentDate   time.Time         `json:"payment_date"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	Notes         string            `json:"notes,omitempty"`
}

// NewPayment records a legacy ledger installment for a customer
func NewPayment(customer *Customer, amount valueobject.Money, paymentDate time.Time, method PaymentMethod, notes string) (*Payment, error) {
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive")
	}
	if !ValidPaymentMethod(method) {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	return &Payment{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(customer.CompanyID),
		CustomerID:           customer.ID,
		BranchID:             customer.BranchID,
		WorkerID:             customer.WorkerID,
		Amount:               amount,
		PaymentDate:          paymentDate,
		PaymentMethod:        method,
		Notes:                notes,
	}, nil
}
