package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBoxStateRepository implements ledger.BoxStateRepository using GORM
type GormBoxStateRepository struct {
	db *gorm.DB
}

// NewGormBoxStateRepository creates a new GormBoxStateRepository
func NewGormBoxStateRepository(db *gorm.DB) *GormBoxStateRepository {
	return &GormBoxStateRepository{db: db}
}

// CreateBatch inserts the full box grid for a newly assigned card
func (r *GormBoxStateRepository) CreateBatch(ctx context.Context, tc tenant.Context, boxes []*ledger.BoxState) error {
	if len(boxes) == 0 {
		return nil
	}
	for _, box := range boxes {
		if err := checkOwnership(tc, box.CompanyID); err != nil {
			return err
		}
	}
	boxModels := make([]*models.BoxStateModel, len(boxes))
	for i, box := range boxes {
		boxModels[i] = models.BoxStateModelFromDomain(box)
	}
	return Conn(ctx, r.db).CreateInBatches(boxModels, 100).Error
}

// FindByCustomerCard returns every box of a card ordered by box number
func (r *GormBoxStateRepository) FindByCustomerCard(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID) ([]*ledger.BoxState, error) {
	var boxModels []models.BoxStateModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("customer_card_id = ?", customerCardID).
		Order("box_number ASC").
		Find(&boxModels).Error; err != nil {
		return nil, err
	}
	return boxStatesToDomain(boxModels), nil
}

// FindUnchecked returns the lowest-numbered open boxes of a card, up to
// limit. Payments consume boxes in this order.
func (r *GormBoxStateRepository) FindUnchecked(ctx context.Context, tc tenant.Context, customerCardID uuid.UUID, limit int) ([]*ledger.BoxState, error) {
	var boxModels []models.BoxStateModel
	query := scoped(Conn(ctx, r.db), tc).
		Where("customer_card_id = ? AND is_checked = ?", customerCardID, false).
		Order("box_number ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&boxModels).Error; err != nil {
		return nil, err
	}
	return boxStatesToDomain(boxModels), nil
}

// FindByPayment returns the boxes checked by a specific payment
func (r *GormBoxStateRepository) FindByPayment(ctx context.Context, tc tenant.Context, paymentID uuid.UUID) ([]*ledger.BoxState, error) {
	var boxModels []models.BoxStateModel
	if err := scoped(Conn(ctx, r.db), tc).
		Where("payment_id = ?", paymentID).
		Order("box_number ASC").
		Find(&boxModels).Error; err != nil {
		return nil, err
	}
	return boxStatesToDomain(boxModels), nil
}

// Save creates or updates a single box state
func (r *GormBoxStateRepository) Save(ctx context.Context, tc tenant.Context, box *ledger.BoxState) error {
	if err := checkOwnership(tc, box.CompanyID); err != nil {
		return err
	}
	model := models.BoxStateModelFromDomain(box)
	return Conn(ctx, r.db).Save(model).Error
}

// SaveBatch updates a set of box states in one round trip per box.
// Callers run this inside the payment transaction so the batch is atomic.
func (r *GormBoxStateRepository) SaveBatch(ctx context.Context, tc tenant.Context, boxes []*ledger.BoxState) error {
	if len(boxes) == 0 {
		return nil
	}
	conn := Conn(ctx, r.db)
	for _, box := range boxes {
		if err := checkOwnership(tc, box.CompanyID); err != nil {
			return err
		}
		if err := conn.Save(models.BoxStateModelFromDomain(box)).Error; err != nil {
			return err
		}
	}
	return nil
}

func boxStatesToDomain(boxModels []models.BoxStateModel) []*ledger.BoxState {
	boxes := make([]*ledger.BoxState, len(boxModels))
	for i := range boxModels {
		boxes[i] = boxModels[i].ToDomain()
	}
	return boxes
}

var _ ledger.BoxStateRepository = (*GormBoxStateRepository)(nil)
