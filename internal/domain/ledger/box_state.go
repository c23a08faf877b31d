package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared"
)

// BoxState is one box on a customer card. Boxes are created up front when
// the card is assigned, all unchecked, and flip to checked as payments come
// in. A checked box remembers which payment checked it so reversal can flip
// exactly those boxes back.
type BoxState struct {
	shared.BaseEntity
	CompanyID      uuid.UUID  `json:"company_id"`
	CustomerCardID uuid.UUID  `json:"customer_card_id"`
	BoxNumber      int        `json:"box_number"`
	IsChecked      bool       `json:"is_checked"`
	CheckedDate    *time.Time `json:"checked_date,omitempty"`
	PaymentID      *uuid.UUID `json:"payment_id,omitempty"`
}

// NewBoxStates creates the full unchecked box set for a new customer card,
// numbered 1..totalBoxes.
func NewBoxStates(companyID, customerCardID uuid.UUID, totalBoxes int) []*BoxState {
	boxes := make([]*BoxState, 0, totalBoxes)
	for n := 1; n <= totalBoxes; n++ {
		boxes = append(boxes, &BoxState{
			BaseEntity:     shared.NewBaseEntity(),
			CompanyID:      companyID,
			CustomerCardID: customerCardID,
			BoxNumber:      n,
			IsChecked:      false,
		})
	}
	return boxes
}

// Check marks the box as paid by the given payment
func (b *BoxState) Check(paymentID uuid.UUID, at time.Time) error {
	if b.IsChecked {
		return &CorruptionError{
			CustomerCardID: b.CustomerCardID.String(),
			Detail:         "box is already checked",
		}
	}
	b.IsChecked = true
	checkedAt := at
	b.CheckedDate = &checkedAt
	pid := paymentID
	b.PaymentID = &pid
	b.Touch()
	return nil
}

// Uncheck clears the box back to unpaid, used by payment reversal
func (b *BoxState) Uncheck() error {
	if !b.IsChecked {
		return &CorruptionError{
			CustomerCardID: b.CustomerCardID.String(),
			Detail:         "box is not checked",
		}
	}
	b.IsChecked = false
	b.CheckedDate = nil
	b.PaymentID = nil
	b.Touch()
	return nil
}
