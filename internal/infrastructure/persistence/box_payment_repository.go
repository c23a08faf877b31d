package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/report"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBoxPaymentRepository implements ledger.BoxPaymentRepository using GORM
type GormBoxPaymentRepository struct {
	db *gorm.DB
}

// NewGormBoxPaymentRepository creates a new GormBoxPaymentRepository
func NewGormBoxPaymentRepository(db *gorm.DB) *GormBoxPaymentRepository {
	return &GormBoxPaymentRepository{db: db}
}

// FindByID finds a box payment by its ID
func (r *GormBoxPaymentRepository) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.BoxPayment, error) {
	var model models.BoxPaymentModel
	if err := scoped(Conn(ctx, r.db), tc).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomerCard returns the payment history of a card, newest first
func (r *GormBoxPaymentRepository) FindByCustomerCard(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID) ([]*ledger.BoxPayment, error) {
	var paymentModels []models.BoxPaymentModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("customer_card_id = ?", customerCardID).
		Order("payment_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return boxPaymentsToDomain(paymentModels), nil
}

// FindByWorkerAndDate returns a worker's payments for one calendar date
func (r *GormBoxPaymentRepository) FindByWorkerAndDate(ctx context.Context, tc tenant.Context, workerID uuid.UUID, date time.Time) ([]*ledger.BoxPayment, error) {
	dayStart := report.DateOf(date)
	dayEnd := dayStart.Add(24 * time.Hour)

	var paymentModels []models.BoxPaymentModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("worker_id = ? AND payment_date >= ? AND payment_date < ?", workerID, dayStart, dayEnd).
		Order("payment_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return boxPaymentsToDomain(paymentModels), nil
}

// SumActiveByCardAndDate sums a card's live payments for one calendar
// date. Reversed tombstones are excluded from the sum.
func (r *GormBoxPaymentRepository) SumActiveByCardAndDate(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID, date time.Time) (*ledger.CardDailySales, error) {
	dayStart := report.DateOf(date)
	dayEnd := dayStart.Add(24 * time.Hour)

	var agg struct {
		TotalAmount  decimal.Decimal
		BoxesChecked int
		PaymentCount int
	}
	err := scoped(Conn(ctx, r.db), tc).
		Model(&models.BoxPaymentModel{}).
		Select(
			"COALESCE(SUM(amount_paid), 0) AS total_amount, "+
				"COALESCE(SUM(boxes_checked), 0) AS boxes_checked, "+
				"COUNT(*) AS payment_count").
		Where("customer_card_id = ? AND status = ? AND payment_date >= ? AND payment_date < ?",
			customerCardID, string(ledger.BoxPaymentActive), dayStart, dayEnd).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoney(agg.TotalAmount, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	return &ledger.CardDailySales{
		CustomerCardID: customerCardID,
		Date:           dayStart,
		TotalAmount:    amount,
		BoxesChecked:   agg.BoxesChecked,
		PaymentCount:   agg.PaymentCount,
	}, nil
}

// Save creates or updates a box payment
func (r *GormBoxPaymentRepository) Save(ctx context.Context, tc tenant.Context, payment *ledger.BoxPayment) error {
	if err := checkOwnership(tc, payment.CompanyID); err != nil {
		return err
	}
	model := models.BoxPaymentModelFromDomain(payment)
	return Conn(ctx, r.db).Save(model).Error
}

// SaveWithLock saves a box payment with optimistic locking (version check).
// Reversal marks the row, it never deletes it, so the update covers the
// reversal and adjustment columns too.
func (r *GormBoxPaymentRepository) SaveWithLock(ctx context.Context, tc tenant.Context, payment *ledger.BoxPayment) error {
	if err := checkOwnership(tc, payment.CompanyID); err != nil {
		return err
	}
	model := models.BoxPaymentModelFromDomain(payment)
	result := Conn(ctx, r.db).
		Model(model).
		Where("id = ? AND version = ?", payment.ID, payment.Version-1).
		Updates(map[string]any{
			"status":           model.Status,
			"reversed_by":      model.ReversedBy,
			"reversed_at":      model.ReversedAt,
			"reversal_notes":   model.ReversalNotes,
			"adjusted_by":      model.AdjustedBy,
			"adjusted_at":      model.AdjustedAt,
			"adjustment_notes": model.AdjustmentNotes,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func boxPaymentsToDomain(paymentModels []models.BoxPaymentModel) []*ledger.BoxPayment {
	payments := make([]*ledger.BoxPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments
}

var _ ledger.BoxPaymentRepository = (*GormBoxPaymentRepository)(nil)
