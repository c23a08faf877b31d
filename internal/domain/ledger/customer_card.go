package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
)

// CustomerCardStatus is the lifecycle of an assigned card
type CustomerCardStatus string

const (
	CustomerCardActive    CustomerCardStatus = "active"
	CustomerCardCompleted CustomerCardStatus = "completed"
	CustomerCardCancelled CustomerCardStatus = "cancelled"
)

// amountTolerance absorbs rounding drift between box-count arithmetic and
// the stored running amounts.
var amountTolerance = decimal.NewFromFloat(0.01)

// AmountTolerance returns the rounding tolerance used for amount checks
func AmountTolerance() decimal.Decimal {
	return amountTolerance
}

// CustomerCard is one card assigned to one customer: a snapshot of the
// template's box count and amount plus the running checked and paid state.
// The per-box checked rows live in BoxState; the counters here must stay
// consistent with them.
type CustomerCard struct {
	shared.CompanyAggregateRoot
	CustomerID      uuid.UUID          `json:"customer_id"`
	CardID          uuid.UUID          `json:"card_id"`
	BranchID        uuid.UUID          `json:"branch_id"`
	WorkerID        uuid.UUID          `json:"worker_id"`
	TotalBoxes      int                `json:"total_boxes"`
	BoxesChecked    int                `json:"boxes_checked"`
	TotalAmount     valueobject.Money  `json:"total_amount"`
	AmountPaid      valueobject.Money  `json:"amount_paid"`
	AmountRemaining valueobject.Money  `json:"amount_remaining"`
	Status          CustomerCardStatus `json:"status"`
	AssignedDate    time.Time          `json:"assigned_date"`
	AssignedBy      *uuid.UUID         `json:"assigned_by,omitempty"`
}

// NewCustomerCard assigns a card template to a customer, snapshotting the
// template's terms.
func NewCustomerCard(companyID uuid.UUID, customerID uuid.UUID, card *Card, branchID, workerID uuid.UUID, assignedBy *uuid.UUID) (*CustomerCard, error) {
	if companyID == uuid.Nil {
		return nil, shared.ErrMissingTenantContext
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer card must belong to a customer")
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	if !card.Active {
		return nil, shared.NewDomainError("CARD_TEMPLATE_INACTIVE", "Cannot assign an inactive card template")
	}
	if card.CompanyID != companyID {
		return nil, shared.ErrMissingTenantContext
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Customer card must belong to a branch")
	}
	if workerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORKER", "Customer card must be assigned to a worker")
	}
	cc := &CustomerCard{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		CustomerID:           customerID,
		CardID:               card.ID,
		BranchID:             branchID,
		WorkerID:             workerID,
		TotalBoxes:           card.NumberOfBoxes,
		BoxesChecked:         0,
		TotalAmount:          card.Amount,
		AmountPaid:           valueobject.Zero(card.Amount.Currency()),
		AmountRemaining:      card.Amount,
		Status:               CustomerCardActive,
		AssignedDate:         time.Now(),
		AssignedBy:           assignedBy,
	}
	cc.AddDomainEvent(NewCardAssignedEvent(cc))
	return cc, nil
}

// BoxPrice returns the per-box price of this assignment, rounded to 6
// decimal places. A card with no boxes has no price; a stored row that
// reaches that state is rejected rather than divided by.
func (cc *CustomerCard) BoxPrice() (valueobject.Money, error) {
	if cc.TotalBoxes <= 0 {
		return valueobject.Money{}, ErrInvalidPricing
	}
	price := cc.TotalAmount.Amount().Div(decimal.NewFromInt(int64(cc.TotalBoxes))).Round(6)
	return valueobject.NewMoney(price, cc.TotalAmount.Currency())
}

// RemainingBoxes returns how many boxes are still unchecked. A negative
// count means the stored state is corrupt and the card must not accept
// further writes.
func (cc *CustomerCard) RemainingBoxes() (int, error) {
	remaining := cc.TotalBoxes - cc.BoxesChecked
	if remaining < 0 {
		return 0, &CorruptionError{
			CustomerCardID: cc.ID.String(),
			Detail:         "boxes checked exceeds total boxes",
		}
	}
	return remaining, nil
}

// ApplyCheck records k boxes checked for the given amount. Overpayment is
// rejected before any state changes. Completion fires exactly when the last
// box is checked.
func (cc *CustomerCard) ApplyCheck(boxes int, amount valueobject.Money) error {
	if cc.Status != CustomerCardActive {
		return ErrCardNotActive
	}
	if boxes <= 0 {
		return shared.NewDomainError("INVALID_BOX_COUNT", "Must check at least one box")
	}
	remaining, err := cc.RemainingBoxes()
	if err != nil {
		return err
	}
	if boxes > remaining {
		price, err := cc.BoxPrice()
		if err != nil {
			return err
		}
		return NewOverpaymentError(boxes, remaining, price)
	}
	newPaid, err := cc.AmountPaid.Add(amount)
	if err != nil {
		return err
	}
	newRemaining, err := cc.AmountRemaining.Subtract(amount)
	if err != nil {
		return err
	}
	cc.BoxesChecked += boxes
	cc.AmountPaid = newPaid
	cc.AmountRemaining = newRemaining
	if cc.BoxesChecked == cc.TotalBoxes {
		cc.Status = CustomerCardCompleted
		cc.AmountRemaining = valueobject.Zero(cc.TotalAmount.Currency())
		cc.AddDomainEvent(NewCardCompletedEvent(cc))
	}
	if err := cc.validateInvariants(); err != nil {
		return err
	}
	cc.Touch()
	cc.IncrementVersion()
	return nil
}

// ApplyUncheck rolls back k boxes and the amount they were paid with, used
// by payment reversal. A completed card reopens to active.
func (cc *CustomerCard) ApplyUncheck(boxes int, amount valueobject.Money) error {
	if cc.Status == CustomerCardCancelled {
		return ErrCardNotActive
	}
	if boxes <= 0 {
		return shared.NewDomainError("INVALID_BOX_COUNT", "Must uncheck at least one box")
	}
	if boxes > cc.BoxesChecked {
		return &CorruptionError{
			CustomerCardID: cc.ID.String(),
			Detail:         "cannot uncheck more boxes than are checked",
		}
	}
	newPaid, err := cc.AmountPaid.Subtract(amount)
	if err != nil {
		return err
	}
	if newPaid.IsNegative() {
		return &CorruptionError{
			CustomerCardID: cc.ID.String(),
			Detail:         "reversal would drive amount paid negative",
		}
	}
	newRemaining, err := cc.AmountRemaining.Add(amount)
	if err != nil {
		return err
	}
	cc.BoxesChecked -= boxes
	cc.AmountPaid = newPaid
	cc.AmountRemaining = newRemaining
	if cc.Status == CustomerCardCompleted {
		cc.Status = CustomerCardActive
	}
	if err := cc.validateInvariants(); err != nil {
		return err
	}
	cc.Touch()
	cc.IncrementVersion()
	return nil
}

// Cancel closes the card to further payments without deleting history
func (cc *CustomerCard) Cancel() error {
	if cc.Status == CustomerCardCompleted {
		return shared.NewDomainError("CARD_COMPLETED", "Cannot cancel a completed card")
	}
	cc.Status = CustomerCardCancelled
	cc.Touch()
	cc.IncrementVersion()
	return nil
}

// validateInvariants checks the counters against each other after every
// mutation. Amounts are compared within a small rounding tolerance; box
// counts must be exact.
func (cc *CustomerCard) validateInvariants() error {
	if cc.BoxesChecked < 0 || cc.BoxesChecked > cc.TotalBoxes {
		return &CorruptionError{
			CustomerCardID: cc.ID.String(),
			Detail:         "boxes checked out of range",
		}
	}
	sum, err := cc.AmountPaid.Add(cc.AmountRemaining)
	if err != nil {
		return err
	}
	drift := sum.Amount().Sub(cc.TotalAmount.Amount()).Abs()
	if drift.GreaterThan(amountTolerance) {
		return &CorruptionError{
			CustomerCardID: cc.ID.String(),
			Detail:         "amount paid and remaining do not sum to total",
		}
	}
	if cc.Status == CustomerCardCompleted && cc.BoxesChecked != cc.TotalBoxes {
		return &CorruptionError{
			CustomerCardID: cc.ID.String(),
			Detail:         "completed card has unchecked boxes",
		}
	}
	return nil
}
