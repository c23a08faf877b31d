package ledger

import (
	"fmt"

	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
)

var (
	ErrCardNotFound         = shared.NewDomainError("CARD_NOT_FOUND", "Card not found")
	ErrCustomerNotFound     = shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	ErrCustomerCardNotFound = shared.NewDomainError("CUSTOMER_CARD_NOT_FOUND", "Customer card not found")
	ErrPaymentNotFound      = shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found")
	ErrCardNotActive        = shared.NewDomainError("CARD_NOT_ACTIVE", "Customer card is not active")
	ErrPaymentReversed      = shared.NewDomainError("PAYMENT_ALREADY_REVERSED", "Payment has already been reversed")
	ErrInvalidPricing       = shared.NewDomainError("INVALID_PRICING", "Card pricing would produce a per-box price below the minimum")
)

// OverpaymentError rejects a payment that would check more boxes than remain
// on the card. It carries enough detail for the caller to tell the payer the
// exact maximum they can still pay.
type OverpaymentError struct {
	RequestedBoxes int
	RemainingBoxes int
	MaxAmount      valueobject.Money
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment covers %d boxes but only %d remain; maximum payable is %s",
		e.RequestedBoxes, e.RemainingBoxes, e.MaxAmount.String())
}

// Code implements the coded-error contract used by the HTTP layer
func (e *OverpaymentError) DomainCode() string { return "OVERPAYMENT_REJECTED" }

// NewOverpaymentError builds an OverpaymentError from the card's remaining
// capacity and per-box price.
func NewOverpaymentError(requested, remaining int, boxPrice valueobject.Money) *OverpaymentError {
	return &OverpaymentError{
		RequestedBoxes: requested,
		RemainingBoxes: remaining,
		MaxAmount:      boxPrice.MultiplyByInt(int64(remaining)),
	}
}

// CorruptionError signals that stored ledger state violates an internal
// invariant, e.g. more boxes checked than the card holds. It is never
// caused by user input.
type CorruptionError struct {
	CustomerCardID string
	Detail         string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("ledger corruption on customer card %s: %s", e.CustomerCardID, e.Detail)
}

func (e *CorruptionError) DomainCode() string { return "LEDGER_CORRUPTION" }
