package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanduq/backend/internal/domain/shared/valueobject"
)

func TestNewBoxStates(t *testing.T) {
	companyID := uuid.New()
	cardID := uuid.New()
	boxes := NewBoxStates(companyID, cardID, 5)

	require.Len(t, boxes, 5)
	for i, b := range boxes {
		assert.Equal(t, i+1, b.BoxNumber)
		assert.False(t, b.IsChecked)
		assert.Nil(t, b.PaymentID)
		assert.Equal(t, cardID, b.CustomerCardID)
	}
}

func TestBoxStateCheckUncheck(t *testing.T) {
	box := NewBoxStates(uuid.New(), uuid.New(), 1)[0]
	paymentID := uuid.New()
	now := time.Now()

	require.NoError(t, box.Check(paymentID, now))
	assert.True(t, box.IsChecked)
	require.NotNil(t, box.PaymentID)
	assert.Equal(t, paymentID, *box.PaymentID)

	err := box.Check(uuid.New(), now)
	var ce *CorruptionError
	require.ErrorAs(t, err, &ce)

	require.NoError(t, box.Uncheck())
	assert.False(t, box.IsChecked)
	assert.Nil(t, box.PaymentID)
	assert.Nil(t, box.CheckedDate)

	require.ErrorAs(t, box.Uncheck(), &ce)
}

func TestNewBoxPayment(t *testing.T) {
	cc := newTestCustomerCard(t, 10, 1000)
	now := time.Now()

	t.Run("carries the card attribution", func(t *testing.T) {
		p, err := NewBoxPayment(cc, uuid.Nil, 2, valueobject.NewMoneyKESFromFloat(200), now, PaymentMethodCash, "weekly round")
		require.NoError(t, err)
		assert.Equal(t, cc.ID, p.CustomerCardID)
		assert.Equal(t, cc.CustomerID, p.CustomerID)
		assert.Equal(t, cc.BranchID, p.BranchID)
		assert.Equal(t, cc.WorkerID, p.WorkerID)
		assert.Equal(t, BoxPaymentActive, p.Status)
		assert.False(t, p.IsReversed())
	})

	t.Run("attributes to the collecting worker when one is given", func(t *testing.T) {
		collector := uuid.New()
		p, err := NewBoxPayment(cc, collector, 2, valueobject.NewMoneyKESFromFloat(200), now, PaymentMethodCash, "")
		require.NoError(t, err)
		assert.Equal(t, collector, p.WorkerID)
	})

	t.Run("rejects unknown payment methods", func(t *testing.T) {
		_, err := NewBoxPayment(cc, uuid.Nil, 2, valueobject.NewMoneyKESFromFloat(200), now, PaymentMethod("CHEQUE"), "")
		require.Error(t, err)
	})
}

func TestBoxPaymentMarkReversed(t *testing.T) {
	cc := newTestCustomerCard(t, 10, 1000)
	p, err := NewBoxPayment(cc, uuid.Nil, 2, valueobject.NewMoneyKESFromFloat(200), time.Now(), PaymentMethodMobileMoney, "")
	require.NoError(t, err)

	admin := uuid.New()
	require.NoError(t, p.MarkReversed(admin, "entered twice", time.Now()))
	assert.True(t, p.IsReversed())
	require.NotNil(t, p.ReversedBy)
	assert.Equal(t, admin, *p.ReversedBy)
	assert.Equal(t, "entered twice", p.ReversalNotes)

	err = p.MarkReversed(admin, "again", time.Now())
	assert.Equal(t, ErrPaymentReversed, err)
}

func TestBoxPaymentLinkAdjustment(t *testing.T) {
	cc := newTestCustomerCard(t, 10, 1000)
	original, err := NewBoxPayment(cc, uuid.Nil, 3, valueobject.NewMoneyKESFromFloat(300), time.Now(), PaymentMethodCash, "")
	require.NoError(t, err)
	replacement, err := NewBoxPayment(cc, uuid.Nil, 2, valueobject.NewMoneyKESFromFloat(200), time.Now(), PaymentMethodCash, "")
	require.NoError(t, err)

	admin := uuid.New()
	replacement.LinkAdjustment(original.ID, admin, "wrong box count", time.Now())
	require.NotNil(t, replacement.AdjustedFrom)
	assert.Equal(t, original.ID, *replacement.AdjustedFrom)
	assert.Equal(t, admin, *replacement.AdjustedBy)
	assert.Equal(t, "wrong box count", replacement.AdjustmentNotes)
}
