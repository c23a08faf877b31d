// Package ledger implements the contribution ledger: card templates,
// customer card assignments with per-box state, box payments with reversal
// and adjustment, and the legacy free-form customer ledger.
package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
)

// MinBoxPrice is the smallest allowed per-box price. A card whose total
// amount divided by its box count falls below this is rejected at creation.
var MinBoxPrice = decimal.NewFromFloat(0.01)

// Card is a reusable card template: a fixed number of boxes and a total
// amount. Assigning one to a customer snapshots these values onto the
// CustomerCard, so later edits to the template never touch open cards.
type Card struct {
	shared.CompanyAggregateRoot
	Code          string            `json:"code"`
	Name          string            `json:"name"`
	NumberOfBoxes int               `json:"number_of_boxes"`
	Amount        valueobject.Money `json:"amount"`
	Description   string            `json:"description,omitempty"`
	Active        bool              `json:"active"`
}

// NewCard creates a card template after validating its pricing
func NewCard(companyID uuid.UUID, code, name string, numberOfBoxes int, amount valueobject.Money) (*Card, error) {
	if companyID == uuid.Nil {
		return nil, shared.ErrMissingTenantContext
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CARD_CODE", "Card code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CARD_NAME", "Card name cannot be empty")
	}
	if numberOfBoxes <= 0 {
		return nil, shared.NewDomainError("INVALID_BOX_COUNT", "Card must have at least one box")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_CARD_AMOUNT", "Card amount must be positive")
	}
	card := &Card{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 code,
		Name:                 name,
		NumberOfBoxes:        numberOfBoxes,
		Amount:               amount,
		Active:               true,
	}
	price, err := card.BoxPrice()
	if err != nil {
		return nil, err
	}
	if price.Amount().LessThan(MinBoxPrice) {
		return nil, ErrInvalidPricing
	}
	return card, nil
}

// BoxPrice returns the per-box price, rounded to 6 decimal places. A box
// count of zero on a stored row is rejected rather than divided by.
func (c *Card) BoxPrice() (valueobject.Money, error) {
	if c.NumberOfBoxes <= 0 {
		return valueobject.Money{}, ErrInvalidPricing
	}
	price := c.Amount.Amount().Div(decimal.NewFromInt(int64(c.NumberOfBoxes))).Round(6)
	return valueobject.NewMoney(price, c.Amount.Currency())
}

// Deactivate retires the template. Existing customer cards keep running.
func (c *Card) Deactivate() {
	c.Active = false
	c.Touch()
	c.IncrementVersion()
}

// Reactivate makes the template assignable again
func (c *Card) Reactivate() {
	c.Active = true
	c.Touch()
	c.IncrementVersion()
}
