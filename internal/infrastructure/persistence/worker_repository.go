package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/organization"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWorkerRepository implements organization.WorkerRepository using GORM
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewGormWorkerRepository creates a new GormWorkerRepository
func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

// FindByID finds a worker by its ID
func (r *GormWorkerRepository) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*organization.Worker, error) {
	var model models.WorkerModel
	if err := scoped(Conn(ctx, r.db), tc).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBranch finds all workers attached to a branch
func (r *GormWorkerRepository) FindByBranch(ctx context.Context, tc tenant.Context, branchID uuid.UUID) ([]*organization.Worker, error) {
	var workerModels []models.WorkerModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("branch_id = ?", branchID).
		Order("code ASC").
		Find(&workerModels).Error; err != nil {
		return nil, err
	}

	workers := make([]*organization.Worker, len(workerModels))
	for i := range workerModels {
		workers[i] = workerModels[i].ToDomain()
	}
	return workers, nil
}

// FindAll finds all workers in the company
func (r *GormWorkerRepository) FindAll(ctx context.Context, tc tenant.Context) ([]*organization.Worker, error) {
	var workerModels []models.WorkerModel
	if err := scoped(Conn(ctx, r.db), tc).
		Order("code ASC").
		Find(&workerModels).Error; err != nil {
		return nil, err
	}

	workers := make([]*organization.Worker, len(workerModels))
	for i := range workerModels {
		workers[i] = workerModels[i].ToDomain()
	}
	return workers, nil
}

// Save creates or updates a worker
func (r *GormWorkerRepository) Save(ctx context.Context, tc tenant.Context, worker *organization.Worker) error {
	if err := checkOwnership(tc, worker.CompanyID); err != nil {
		return err
	}
	model := models.WorkerModelFromDomain(worker)
	return Conn(ctx, r.db).Save(model).Error
}

var _ organization.WorkerRepository = (*GormWorkerRepository)(nil)
