package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/tenant"
)

// CardRepository defines card template persistence operations
type CardRepository interface {
	FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*Card, error)
	FindByCode(ctx context.Context, tc tenant.Context, code string) (*Card, error)
	FindAllActive(ctx context.Context, tc tenant.Context) ([]*Card, error)
	Save(ctx context.Context, tc tenant.Context, card *Card) error
}

// CustomerRepository defines legacy customer ledger persistence operations
type CustomerRepository interface {
	FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*Customer, error)
	FindByIDForUpdate(ctx context.Context, tc tenant.Context, id uuid.UUID) (*Customer, error)
	FindByWorker(ctx context.Context, tc tenant.Context, workerID uuid.UUID) ([]*Customer, error)
	FindByStatus(ctx context.Context, tc tenant.Context, status CustomerStatus) ([]*Customer, error)
	FindStale(ctx context.Context, tc tenant.Context, before time.Time) ([]*Customer, error)
	Save(ctx context.Context, tc tenant.Context, customer *Customer) error
	SaveWithLock(ctx context.Context, tc tenant.Context, customer *Customer) error
}

// CustomerCardRepository defines customer card persistence operations.
// FindByIDForUpdate takes a row lock so concurrent payments against one
// card serialize inside the surrounding transaction.
type CustomerCardRepository interface {
	FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*CustomerCard, error)
	FindByIDForUpdate(ctx context.Context, tc tenant.Context, id uuid.UUID) (*CustomerCard, error)
	FindByCustomer(ctx context.Context, tc tenant.Context, customerID uuid.UUID) ([]*CustomerCard, error)
	FindByWorker(ctx context.Context, tc tenant.Context, workerID uuid.UUID) ([]*CustomerCard, error)
	Save(ctx context.Context, tc tenant.Context, cc *CustomerCard) error
	SaveWithLock(ctx context.Context, tc tenant.Context, cc *CustomerCard) error
}

// BoxStateRepository defines per-box state persistence operations.
// FindUnchecked returns boxes ordered by box number ascending so payments
// consume the lowest-numbered open boxes first.
type BoxStateRepository interface {
	CreateBatch(ctx context.Context, tc tenant.Context, boxes []*BoxState) error
	FindByCustomerCard(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID) ([]*BoxState, error)
	FindUnchecked(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID, limit int) ([]*BoxState, error)
	FindByPayment(ctx context.Context, tc tenant.Context, paymentID uuid.UUID) ([]*BoxState, error)
	Save(ctx context.Context, tc tenant.Context, box *BoxState) error
	SaveBatch(ctx context.Context, tc tenant.Context, boxes []*BoxState) error
}

// BoxPaymentRepository defines box payment persistence operations
type BoxPaymentRepository interface {
	FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*BoxPayment, error)
	FindByCustomerCard(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID) ([]*BoxPayment, error)
	FindByWorkerAndDate(ctx context.Context, tc tenant.Context, workerID uuid.UUID, date time.Time) ([]*BoxPayment, error)
	SumActiveByCardAndDate(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID, date time.Time) (*CardDailySales, error)
	Save(ctx context.Context, tc tenant.Context, payment *BoxPayment) error
	SaveWithLock(ctx context.Context, tc tenant.Context, payment *BoxPayment) error
}

// PaymentRepository defines legacy installment persistence operations
type PaymentRepository interface {
	FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*Payment, error)
	FindByCustomer(ctx context.Context, tc tenant.Context, customerID uuid.UUID) ([]*Payment, error)
	Save(ctx context.Context, tc tenant.Context, payment *Payment) error
}
