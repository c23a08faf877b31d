package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
)

// CustomerStatus tracks progress on the legacy free-form ledger
type CustomerStatus string

const (
	CustomerInProgress CustomerStatus = "in_progress"
	CustomerCompleted  CustomerStatus = "completed"
	CustomerDefaulting CustomerStatus = "defaulting"
)

// DefaultingWindow is how long a customer with an open balance may go
// without a payment before being flagged as defaulting.
const DefaultingWindow = 7 * 24 * time.Hour

// Customer is the legacy ledger: a target of boxes at a fixed price, paid
// down by arbitrary amounts. Unlike CustomerCard there is no per-box state;
// progress is the fractional boxes-filled quotient.
type Customer struct {
	shared.CompanyAggregateRoot
	Name            string            `json:"name"`
	Phone           string            `json:"phone,omitempty"`
	BranchID        uuid.UUID         `json:"branch_id"`
	WorkerID        uuid.UUID         `json:"worker_id"`
	TotalBoxes      int               `json:"total_boxes"`
	BoxesFilled     decimal.Decimal   `json:"boxes_filled"`
	PricePerBox     valueobject.Money `json:"price_per_box"`
	TotalAmount     valueobject.Money `json:"total_amount"`
	AmountPaid      valueobject.Money `json:"amount_paid"`
	Status          CustomerStatus    `json:"status"`
	LastPaymentDate *time.Time        `json:"last_payment_date,omitempty"`
}

// NewCustomer opens a legacy ledger for a customer
func NewCustomer(companyID, branchID, workerID uuid.UUID, name string, totalBoxes int, pricePerBox valueobject.Money) (*Customer, error) {
	if companyID == uuid.Nil {
		return nil, shared.ErrMissingTenantContext
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Customer must belong to a branch")
	}
	if workerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORKER", "Customer must be assigned to a worker")
	}
	if totalBoxes <= 0 {
		return nil, shared.NewDomainError("INVALID_BOX_COUNT", "Customer must have at least one box")
	}
	if !pricePerBox.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per box must be positive")
	}
	total := pricePerBox.MultiplyByInt(int64(totalBoxes))
	return &Customer{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		BranchID:             branchID,
		WorkerID:             workerID,
		TotalBoxes:           totalBoxes,
		BoxesFilled:          decimal.Zero,
		PricePerBox:          pricePerBox,
		TotalAmount:          total,
		AmountPaid:           valueobject.Zero(pricePerBox.Currency()),
		Status:               CustomerInProgress,
	}, nil
}

// Balance returns the amount still owed
func (c *Customer) Balance() valueobject.Money {
	bal, err := c.TotalAmount.Subtract(c.AmountPaid)
	if err != nil {
		return valueobject.Zero(c.TotalAmount.Currency())
	}
	return bal
}

// CompletionPercentage returns paid progress as a 0-100 percentage
func (c *Customer) CompletionPercentage() decimal.Decimal {
	if c.TotalAmount.IsZero() {
		return decimal.Zero
	}
	return c.AmountPaid.Amount().
		Div(c.TotalAmount.Amount()).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// RecordPayment applies an arbitrary payment amount. A payment that would
// push the total past the target is rejected as an overpayment.
func (c *Customer) RecordPayment(amount valueobject.Money, at time.Time) error {
	if c.Status == CustomerCompleted {
		return shared.NewDomainError("CUSTOMER_COMPLETED", "Customer has already completed payment")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive")
	}
	if !c.PricePerBox.IsPositive() {
		return ErrInvalidPricing
	}
	newPaid, err := c.AmountPaid.Add(amount)
	if err != nil {
		return err
	}
	over, err := newPaid.GreaterThan(c.TotalAmount)
	if err != nil {
		return err
	}
	if over {
		remaining := c.TotalAmount.Amount().Sub(c.AmountPaid.Amount()).Div(c.PricePerBox.Amount())
		maxAmount, _ := c.TotalAmount.Subtract(c.AmountPaid)
		return &OverpaymentError{
			RequestedBoxes: int(amount.Amount().Div(c.PricePerBox.Amount()).Ceil().IntPart()),
			RemainingBoxes: int(remaining.Ceil().IntPart()),
			MaxAmount:      maxAmount,
		}
	}
	c.AmountPaid = newPaid
	c.BoxesFilled = newPaid.Amount().Div(c.PricePerBox.Amount()).Round(6)
	paidAt := at
	c.LastPaymentDate = &paidAt
	if c.AmountPaid.Equals(c.TotalAmount) {
		c.Status = CustomerCompleted
	} else {
		c.Status = CustomerInProgress
	}
	c.Touch()
	c.IncrementVersion()
	return nil
}

// EvaluateStatus recomputes the defaulting flag against the given clock.
// Completed customers are never flagged. Returns true when the status
// changed.
func (c *Customer) EvaluateStatus(now time.Time) bool {
	if c.Status == CustomerCompleted {
		return false
	}
	status := CustomerInProgress
	if c.LastPaymentDate != nil && now.Sub(*c.LastPaymentDate) > DefaultingWindow {
		status = CustomerDefaulting
	}
	if c.LastPaymentDate == nil && now.Sub(c.CreatedAt) > DefaultingWindow {
		status = CustomerDefaulting
	}
	if status == c.Status {
		return false
	}
	c.Status = status
	c.Touch()
	c.IncrementVersion()
	return true
}
