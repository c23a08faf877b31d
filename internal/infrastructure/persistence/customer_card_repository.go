package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerCardRepository implements ledger.CustomerCardRepository using GORM
type GormCustomerCardRepository struct {
	db *gorm.DB
}

// NewGormCustomerCardRepository creates a new GormCustomerCardRepository
func NewGormCustomerCardRepository(db *gorm.DB) *GormCustomerCardRepository {
	return &GormCustomerCardRepository{db: db}
}

// FindByID finds a customer card by its ID
func (r *GormCustomerCardRepository) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.CustomerCard, error) {
	var model models.CustomerCardModel
	if err := scoped(Conn(ctx, r.db), tc).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a customer card by ID taking a row lock so
// concurrent payments against the same card serialize inside the
// surrounding transaction.
func (r *GormCustomerCardRepository) FindByIDForUpdate(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.CustomerCard, error) {
	var model models.CustomerCardModel
	if err := scoped(Conn(ctx, r.db), tc).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds all cards assigned to a customer
func (r *GormCustomerCardRepository) FindByCustomer(ctx context.Context, tc tenant.Context, customerID uuid.UUID) ([]*ledger.CustomerCard, error) {
	var cardModels []models.CustomerCardModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("customer_id = ?", customerID).
		Order("assigned_date DESC").
		Find(&cardModels).Error; err != nil {
		return nil, err
	}
	return customerCardsToDomain(cardModels), nil
}

// FindByWorker finds all cards attributed to a worker
func (r *GormCustomerCardRepository) FindByWorker(ctx context.Context, tc tenant.Context, workerID uuid.UUID) ([]*ledger.CustomerCard, error) {
	var cardModels []models.CustomerCardModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("worker_id = ?", workerID).
		Order("assigned_date DESC").
		Find(&cardModels).Error; err != nil {
		return nil, err
	}
	return customerCardsToDomain(cardModels), nil
}

// Save creates or updates a customer card
func (r *GormCustomerCardRepository) Save(ctx context.Context, tc tenant.Context, cc *ledger.CustomerCard) error {
	if err := checkOwnership(tc, cc.CompanyID); err != nil {
		return err
	}
	model := models.CustomerCardModelFromDomain(cc)
	return Conn(ctx, r.db).Save(model).Error
}

// SaveWithLock saves a customer card with optimistic locking (version check).
// Returns shared.ErrConcurrencyConflict if the row changed underneath.
func (r *GormCustomerCardRepository) SaveWithLock(ctx context.Context, tc tenant.Context, cc *ledger.CustomerCard) error {
	if err := checkOwnership(tc, cc.CompanyID); err != nil {
		return err
	}
	model := models.CustomerCardModelFromDomain(cc)
	result := Conn(ctx, r.db).
		Model(model).
		Where("id = ? AND version = ?", cc.ID, cc.Version-1).
		Updates(map[string]any{
			"boxes_checked":    model.BoxesChecked,
			"amount_paid":      model.AmountPaid,
			"amount_remaining": model.AmountRemaining,
			"status":           model.Status,
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

func customerCardsToDomain(cardModels []models.CustomerCardModel) []*ledger.CustomerCard {
	cards := make([]*ledger.CustomerCard, len(cardModels))
	for i := range cardModels {
		cards[i] = cardModels[i].ToDomain()
	}
	return cards
}

var _ ledger.CustomerCardRepository = (*GormCustomerCardRepository)(nil)
