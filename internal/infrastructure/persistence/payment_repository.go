package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentRepository implements ledger.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds an installment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.Payment, error) {
	var model models.PaymentModel
	if err := scoped(Conn(ctx, r.db), tc).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer returns a customer's installments, newest first
func (r *GormPaymentRepository) FindByCustomer(ctx context.Context, tc tenant.Context, customerID uuid.UUID) ([]*ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("customer_id = ?", customerID).
		Order("payment_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]*ledger.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments, nil
}

// Save creates or updates an installment
func (r *GormPaymentRepository) Save(ctx context.Context, tc tenant.Context, payment *ledger.Payment) error {
	if err := checkOwnership(tc, payment.CompanyID); err != nil {
		return err
	}
	model := models.PaymentModelFromDomain(payment)
	return Conn(ctx, r.db).Save(model).Error
}

var _ ledger.PaymentRepository = (*GormPaymentRepository)(nil)
