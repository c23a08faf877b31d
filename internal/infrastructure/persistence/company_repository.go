package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository implements tenant.CompanyRepository using GORM.
// Companies are platform-level rows; lookups here are never tenant-scoped.
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Company, error) {
	var model models.CompanyModel
	if err := Conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a company by its code
func (r *GormCompanyRepository) FindByCode(ctx context.Context, code string) (*tenant.Company, error) {
	var model models.CompanyModel
	if err := Conn(ctx, r.db).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllActive finds all active companies
func (r *GormCompanyRepository) FindAllActive(ctx context.Context) ([]tenant.Company, error) {
	var companyModels []models.CompanyModel
	if err := Conn(ctx, r.db).
		Where("status = ?", string(tenant.CompanyStatusActive)).
		Order("code ASC").
		Find(&companyModels).Error; err != nil {
		return nil, err
	}

	companies := make([]tenant.Company, len(companyModels))
	for i := range companyModels {
		companies[i] = *companyModels[i].ToDomain()
	}
	return companies, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *tenant.Company) error {
	model := models.CompanyModelFromDomain(company)
	return Conn(ctx, r.db).Save(model).Error
}

var _ tenant.CompanyRepository = (*GormCompanyRepository)(nil)
