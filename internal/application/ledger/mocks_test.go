package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sanduq/backend/internal/domain/audit"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/organization"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
)

// passthroughTxManager runs the transaction body directly, no database
type passthroughTxManager struct{}

func (passthroughTxManager) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type mockCardRepo struct{ mock.Mock }

func (m *mockCardRepo) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.Card, error) {
	args := m.Called(ctx, tc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Card), args.Error(1)
}

func (m *mockCardRepo) FindByCode(ctx context.Context, tc tenant.Context, code string) (*ledger.Card, error) {
	args := m.Called(ctx, tc, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Card), args.Error(1)
}

func (m *mockCardRepo) FindAllActive(ctx context.Context, tc tenant.Context) ([]*ledger.Card, error) {
	args := m.Called(ctx, tc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Card), args.Error(1)
}

func (m *mockCardRepo) Save(ctx context.Context, tc tenant.Context, card *ledger.Card) error {
	return m.Called(ctx, tc, card).Error(0)
}

type mockBranchRepo struct{ mock.Mock }

func (m *mockBranchRepo) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*organization.Branch, error) {
	args := m.Called(ctx, tc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Branch), args.Error(1)
}

func (m *mockBranchRepo) FindByCode(ctx context.Context, tc tenant.Context, code string) (*organization.Branch, error) {
	args := m.Called(ctx, tc, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Branch), args.Error(1)
}

func (m *mockBranchRepo) FindAll(ctx context.Context, tc tenant.Context) ([]*organization.Branch, error) {
	args := m.Called(ctx, tc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*organization.Branch), args.Error(1)
}

func (m *mockBranchRepo) Save(ctx context.Context, tc tenant.Context, branch *organization.Branch) error {
	return m.Called(ctx, tc, branch).Error(0)
}

type mockWorkerRepo struct{ mock.Mock }

func (m *mockWorkerRepo) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*organization.Worker, error) {
	args := m.Called(ctx, tc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Worker), args.Error(1)
}

func (m *mockWorkerRepo) FindByBranch(ctx context.Context, tc tenant.Context, branchID uuid.UUID) ([]*organization.Worker, error) {
	args := m.Called(ctx, tc, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*organization.Worker), args.Error(1)
}

func (m *mockWorkerRepo) FindAll(ctx context.Context, tc tenant.Context) ([]*organization.Worker, error) {
	args := m.Called(ctx, tc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*organization.Worker), args.Error(1)
}

func (m *mockWorkerRepo) Save(ctx context.Context, tc tenant.Context, worker *organization.Worker) error {
	return m.Called(ctx, tc, worker).Error(0)
}

type mockCustomerCardRepo struct{ mock.Mock }

func (m *mockCustomerCardRepo) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.CustomerCard, error) {
	args := m.Called(ctx, tc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CustomerCard), args.Error(1)
}

func (m *mockCustomerCardRepo) FindByIDForUpdate(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.CustomerCard, error) {
	args := m.Called(ctx, tc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CustomerCard), args.Error(1)
}

func (m *mockCustomerCardRepo) FindByCustomer(ctx context.Context, tc tenant.Context, customerID uuid.UUID) ([]*ledger.CustomerCard, error) {
	args := m.Called(ctx, tc, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.CustomerCard), args.Error(1)
}

func (m *mockCustomerCardRepo) FindByWorker(ctx context.Context, tc tenant.Context, workerID uuid.UUID) ([]*ledger.CustomerCard, error) {
	args := m.Called(ctx, tc, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.CustomerCard), args.Error(1)
}

func (m *mockCustomerCardRepo) Save(ctx context.Context, tc tenant.Context, cc *ledger.CustomerCard) error {
	return m.Called(ctx, tc, cc).Error(0)
}

func (m *mockCustomerCardRepo) SaveWithLock(ctx context.Context, tc tenant.Context, cc *ledger.CustomerCard) error {
	return m.Called(ctx, tc, cc).Error(0)
}

type mockBoxStateRepo struct{ mock.Mock }

func (m *mockBoxStateRepo) CreateBatch(ctx context.Context, tc tenant.Context, boxes []*ledger.BoxState) error {
	return m.Called(ctx, tc, boxes).Error(0)
}

func (m *mockBoxStateRepo) FindByCustomerCard(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID) ([]*ledger.BoxState, error) {
	args := m.Called(ctx, tc, customerCardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.BoxState), args.Error(1)
}

func (m *mockBoxStateRepo) FindUnchecked(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID, limit int) ([]*ledger.BoxState, error) {
	args := m.Called(ctx, tc, customerCardID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.BoxState), args.Error(1)
}

func (m *mockBoxStateRepo) FindByPayment(ctx context.Context, tc tenant.Context, paymentID uuid.UUID) ([]*ledger.BoxState, error) {
	args := m.Called(ctx, tc, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.BoxState), args.Error(1)
}

func (m *mockBoxStateRepo) Save(ctx context.Context, tc tenant.Context, box *ledger.BoxState) error {
	return m.Called(ctx, tc, box).Error(0)
}

func (m *mockBoxStateRepo) SaveBatch(ctx context.Context, tc tenant.Context, boxes []*ledger.BoxState) error {
	return m.Called(ctx, tc, boxes).Error(0)
}

type mockBoxPaymentRepo struct{ mock.Mock }

func (m *mockBoxPaymentRepo) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.BoxPayment, error) {
	args := m.Called(ctx, tc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.BoxPayment), args.Error(1)
}

func (m *mockBoxPaymentRepo) FindByCustomerCard(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID) ([]*ledger.BoxPayment, error) {
	args := m.Called(ctx, tc, customerCardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.BoxPayment), args.Error(1)
}

func (m *mockBoxPaymentRepo) FindByWorkerAndDate(ctx context.Context, tc tenant.Context, workerID uuid.UUID, date time.Time) ([]*ledger.BoxPayment, error) {
	args := m.Called(ctx, tc, workerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.BoxPayment), args.Error(1)
}

func (m *mockBoxPaymentRepo) SumActiveByCardAndDate(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID, date time.Time) (*ledger.CardDailySales, error) {
	args := m.Called(ctx, tc, customerCardID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CardDailySales), args.Error(1)
}

func (m *mockBoxPaymentRepo) Save(ctx context.Context, tc tenant.Context, payment *ledger.BoxPayment) error {
	return m.Called(ctx, tc, payment).Error(0)
}

func (m *mockBoxPaymentRepo) SaveWithLock(ctx context.Context, tc tenant.Context, payment *ledger.BoxPayment) error {
	return m.Called(ctx, tc, payment).Error(0)
}

type mockCustomerRepo struct{ mock.Mock }

func (m *mockCustomerRepo) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.Customer, error) {
	args := m.Called(ctx, tc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindByIDForUpdate(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.Customer, error) {
	args := m.Called(ctx, tc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindByWorker(ctx context.Context, tc tenant.Context, workerID uuid.UUID) ([]*ledger.Customer, error) {
	args := m.Called(ctx, tc, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindByStatus(ctx context.Context, tc tenant.Context, status ledger.CustomerStatus) ([]*ledger.Customer, error) {
	args := m.Called(ctx, tc, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindStale(ctx context.Context, tc tenant.Context, before time.Time) ([]*ledger.Customer, error) {
	args := m.Called(ctx, tc, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Save(ctx context.Context, tc tenant.Context, customer *ledger.Customer) error {
	return m.Called(ctx, tc, customer).Error(0)
}

func (m *mockCustomerRepo) SaveWithLock(ctx context.Context, tc tenant.Context, customer *ledger.Customer) error {
	return m.Called(ctx, tc, customer).Error(0)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, tc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByCustomer(ctx context.Context, tc tenant.Context, customerID uuid.UUID) ([]*ledger.Payment, error) {
	args := m.Called(ctx, tc, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Save(ctx context.Context, tc tenant.Context, payment *ledger.Payment) error {
	return m.Called(ctx, tc, payment).Error(0)
}

type mockAuditRepo struct{ mock.Mock }

func (m *mockAuditRepo) Save(ctx context.Context, tc tenant.Context, entry *audit.AuditLog) error {
	return m.Called(ctx, tc, entry).Error(0)
}

func (m *mockAuditRepo) FindByEntity(ctx context.Context, tc tenant.Context, entityType string, entityID uuid.UUID) ([]*audit.AuditLog, error) {
	args := m.Called(ctx, tc, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.AuditLog), args.Error(1)
}

func (m *mockAuditRepo) FindByActor(ctx context.Context, tc tenant.Context, actorID uuid.UUID, limit int) ([]*audit.AuditLog, error) {
	args := m.Called(ctx, tc, actorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.AuditLog), args.Error(1)
}

type mockDailyTotals struct{ mock.Mock }

func (m *mockDailyTotals) RecordCollection(ctx context.Context, tc tenant.Context, workerID, branchID uuid.UUID, paymentDate time.Time, amount valueobject.Money, boxes int) error {
	return m.Called(ctx, tc, workerID, branchID, paymentDate, amount, boxes).Error(0)
}

func (m *mockDailyTotals) ReverseCollection(ctx context.Context, tc tenant.Context, workerID, branchID uuid.UUID, paymentDate time.Time, amount valueobject.Money, boxes int) error {
	return m.Called(ctx, tc, workerID, branchID, paymentDate, amount, boxes).Error(0)
}

type mockIdempotencyStore struct{ mock.Mock }

func (m *mockIdempotencyStore) Get(ctx context.Context, companyID uuid.UUID, key string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, companyID, key)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *mockIdempotencyStore) Put(ctx context.Context, companyID uuid.UUID, key string, paymentID uuid.UUID) error {
	return m.Called(ctx, companyID, key, paymentID).Error(0)
}
