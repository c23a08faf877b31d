package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements ledger.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.Customer, error) {
	var model models.CustomerModel
	if err := scoped(Conn(ctx, r.db), tc).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a customer by ID taking a row lock. Must run
// inside a transaction; concurrent payments against the same customer
// serialize on the lock.
func (r *GormCustomerRepository) FindByIDForUpdate(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.Customer, error) {
	var model models.CustomerModel
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

// FindByWorker finds all customers attributed to a worker
func (r *GormCustomerRepository) FindByWorker(ctx context.Context, tc tenant.Context, workerID uuid.UUID) ([]*ledger.Customer, error) {
	var customerModels []models.CustomerModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&customerModels).Error; err != nil {
		return nil, err
	}
	return customersToDomain(customerModels), nil
}

// FindByStatus finds all customers with the given status
func (r *GormCustomerRepository) FindByStatus(ctx context.Context, tc tenant.Context, status ledger.CustomerStatus) ([]*ledger.Customer, error) {
	var customerModels []models.CustomerModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&customerModels).Error; err != nil {
		return nil, err
	}
	return customersToDomain(customerModels), nil
}

// FindStale finds open customers whose last activity is older than the
// cutoff, candidates for the defaulter sweep. Customers that never paid
// are judged by their creation date.
func (r *GormCustomerRepository) FindStale(ctx context.Context, tc tenant.Context, before time.Time) ([]*ledger.Customer, error) {
	var customerModels []models.CustomerModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("status <> ?", string(ledger.CustomerCompleted)).
		Where("(last_payment_date IS NOT NULL AND last_payment_date < ?) OR (last_payment_date IS NULL AND created_at < ?)", before, before).
		Order("created_at ASC").
		Find(&customerModels).Error; err != nil {
		return nil, err
	}
	return customersToDomain(customerModels), nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, tc tenant.Context, customer *ledger.Customer) error {
	if err := checkOwnership(tc, customer.CompanyID); err != nil {
		return err
	}
	model := models.CustomerModelFromDomain(customer)
	return Conn(ctx, r.db).Save(model).Error
}

// SaveWithLock saves a customer with optimistic locking (version check).
// Returns shared.ErrConcurrencyConflict if the row changed underneath.
func (r *GormCustomerRepository) SaveWithLock(ctx context.Context, tc tenant.Context, customer *ledger.Customer) error {
	if err := checkOwnership(tc, customer.CompanyID); err != nil {
		return err
	}
	model := models.CustomerModelFromDomain(customer)
	result := Conn(ctx, r.db).
		Model(model).
		Where("id = ? AND version = ?", customer.ID, customer.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func customersToDomain(customerModels []models.CustomerModel) []*ledger.Customer {
	customers := make([]*ledger.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = customerModels[i].ToDomain()
	}
	return customers
}

var _ ledger.CustomerRepository = (*GormCustomerRepository)(nil)
