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

// GormCardRepository implements ledger.CardRepository using GORM
type GormCardRepository struct {
	db *gorm.DB
}

// NewGormCardRepository creates a new GormCardRepository
func NewGormCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// FindByID finds a card template by its ID
func (r *GormCardRepository) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*ledger.Card, error) {
	var model models.CardModel
	if err := scoped(Conn(ctx, r.db), tc).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a card template by its code
func (r *GormCardRepository) FindByCode(ctx context.Context, tc tenant.Context, code string) (*ledger.Card, error) {
	var model models.CardModel
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

// FindAllActive finds all card templates open for assignment
func (r *GormCardRepository) FindAllActive(ctx context.Context, tc tenant.Context) ([]*ledger.Card, error) {
	var cardModels []models.CardModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("active = ?", true).
		Order("code ASC").
		Find(&cardModels).Error; err != nil {
		return nil, err
	}

	cards := make([]*ledger.Card, len(cardModels))
	for i := range cardModels {
		cards[i] = cardModels[i].ToDomain()
	}
	return cards, nil
}

// Save creates or updates a card template
func (r *GormCardRepository) Save(ctx context.Context, tc tenant.Context, card *ledger.Card) error {
	if err := checkOwnership(tc, card.CompanyID); err != nil {
		return err
	}
	model := models.CardModelFromDomain(card)
	return Conn(ctx, r.db).Save(model).Error
}

var _ ledger.CardRepository = (*GormCardRepository)(nil)
