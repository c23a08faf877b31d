package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
)

type legacyFixture struct {
	svc          *LegacyPaymentService
	customerRepo *mockCustomerRepo
	paymentRepo  *mockPaymentRepo
	dailyTotals  *mockDailyTotals
	auditRepo    *mockAuditRepo
	companyID    uuid.UUID
	ctx          context.Context
	tc           tenant.Context
}

func newLegacyFixture(t *testing.T) *legacyFixture {
	t.Helper()
	f := &legacyFixture{
		customerRepo: new(mockCustomerRepo),
		paymentRepo:  new(mockPaymentRepo),
		dailyTotals:  new(mockDailyTotals),
		auditRepo:    new(mockAuditRepo),
		companyID:    uuid.New(),
	}
	f.svc = NewLegacyPaymentService(passthroughTxManager{}, f.customerRepo, f.paymentRepo, f.dailyTotals, f.auditRepo)
	f.tc = tenant.Scoped(f.companyID)
	f.ctx = tenant.Into(context.Background(), f.tc)
	return f
}

func (f *legacyFixture) newCustomer(t *testing.T, boxes int, pricePerBox float64) *ledger.Customer {
	t.Helper()
	c, err := ledger.NewCustomer(f.companyID, uuid.New(), uuid.New(), "Juma Otieno", boxes, valueobject.NewMoneyKESFromFloat(pricePerBox))
	require.NoError(t, err)
	return c
}

func TestLegacyRecordPayment(t *testing.T) {
	now := time.Now()

	t.Run("applies an installment", func(t *testing.T) {
		f := newLegacyFixture(t)
		customer := f.newCustomer(t, 50, 20)

		f.customerRepo.On("FindByIDForUpdate", mock.Anything, f.tc, customer.ID).Return(customer, nil)
		f.paymentRepo.On("Save", mock.Anything, f.tc, mock.AnythingOfType("*ledger.Payment")).Return(nil)
		f.customerRepo.On("SaveWithLock", mock.Anything, f.tc, customer).Return(nil)
		f.dailyTotals.On("RecordCollection", mock.Anything, f.tc, customer.WorkerID, customer.BranchID, now, mock.Anything, 0).Return(nil)
		f.auditRepo.On("Save", mock.Anything, f.tc, mock.Anything).Return(nil)

		result, err := f.svc.RecordPayment(f.ctx, RecordPaymentRequest{
			CustomerID:    customer.ID,
			Amount:        valueobject.NewMoneyKESFromFloat(130),
			PaymentDate:   now,
			PaymentMethod: ledger.PaymentMethodCash,
			RecordedBy:    uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, "130", result.AmountPaid)
		assert.Equal(t, "870", result.Balance)
		assert.Equal(t, "6.5", result.BoxesFilled)
		assert.Equal(t, string(ledger.CustomerInProgress), result.Status)
		f.dailyTotals.AssertExpectations(t)
	})

	t.Run("rejects overpayment", func(t *testing.T) {
		f := newLegacyFixture(t)
		customer := f.newCustomer(t, 10, 100)
		require.NoError(t, customer.RecordPayment(valueobject.NewMoneyKESFromFloat(950), now))

		f.customerRepo.On("FindByIDForUpdate", mock.Anything, f.tc, customer.ID).Return(customer, nil)

		_, err := f.svc.RecordPayment(f.ctx, RecordPaymentRequest{
			CustomerID:    customer.ID,
			Amount:        valueobject.NewMoneyKESFromFloat(100),
			PaymentDate:   now,
			PaymentMethod: ledger.PaymentMethodCash,
		})
		var ope *ledger.OverpaymentError
		require.ErrorAs(t, err, &ope)
		f.paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing customer", func(t *testing.T) {
		f := newLegacyFixture(t)
		id := uuid.New()
		f.customerRepo.On("FindByIDForUpdate", mock.Anything, f.tc, id).Return(nil, nil)

		_, err := f.svc.RecordPayment(f.ctx, RecordPaymentRequest{
			CustomerID:    id,
			Amount:        valueobject.NewMoneyKESFromFloat(100),
			PaymentDate:   now,
			PaymentMethod: ledger.PaymentMethodCash,
		})
		assert.Equal(t, ledger.ErrCustomerNotFound, err)
	})
}

func TestEvaluateDefaulters(t *testing.T) {
	now := time.Now()

	t.Run("flags stale customers and counts them", func(t *testing.T) {
		f := newLegacyFixture(t)
		stale := f.newCustomer(t, 10, 100)
		require.NoError(t, stale.RecordPayment(valueobject.NewMoneyKESFromFloat(100), now.Add(-9*24*time.Hour)))
		alreadyFlagged := f.newCustomer(t, 10, 100)
		require.NoError(t, alreadyFlagged.RecordPayment(valueobject.NewMoneyKESFromFloat(100), now.Add(-9*24*time.Hour)))
		alreadyFlagged.Status = ledger.CustomerDefaulting

		f.customerRepo.On("FindStale", mock.Anything, f.tc, mock.AnythingOfType("time.Time")).
			Return([]*ledger.Customer{stale, alreadyFlagged}, nil)
		f.customerRepo.On("Save", mock.Anything, f.tc, stale).Return(nil)

		flagged, err := f.svc.EvaluateDefaulters(f.ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, flagged)
		assert.Equal(t, ledger.CustomerDefaulting, stale.Status)
		f.customerRepo.AssertExpectations(t)
	})
}
