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

// GormBranchRepository implements organization.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*organization.Branch, error) {
	var model models.BranchModel
	if err := scoped(Conn(ctx, r.db), tc).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a branch by its code
func (r *GormBranchRepository) FindByCode(ctx context.Context, tc tenant.Context, code string) (*organization.Branch, error) {
	var model models.BranchModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all branches in the company
func (r *GormBranchRepository) FindAll(ctx context.Context, tc tenant.Context) ([]*organization.Branch, error) {
	var branchModels []models.BranchModel
	if err := scoped(Conn(ctx, r.db), tc).
		Order("code ASC").
		Find(&branchModels).Error; err != nil {
		return nil, err
	}

	branches := make([]*organization.Branch, len(branchModels))
	for i := range branchModels {
		branches[i] = branchModels[i].ToDomain()
	}
	return branches, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, tc tenant.Context, branch *organization.Branch) error {
	if err := checkOwnership(tc, branch.CompanyID); err != nil {
		return err
	}
	model := models.BranchModelFromDomain(branch)
	return Conn(ctx, r.db).Save(model).Error
}

var _ organization.BranchRepository = (*GormBranchRepository)(nil)
