package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockBoxStateRepository creates a GormBoxStateRepository with a mocked SQL connection
func newMockBoxStateRepository(t *testing.T) (*GormBoxStateRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormBoxStateRepository(gormDB), mock, mockDB
}

func TestGormBoxStateRepository_FindUnchecked(t *testing.T) {
	t.Run("returns open boxes ordered by box number with limit", func(t *testing.T) {
		repo, mock, mockDB := newMockBoxStateRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		cardID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "customer_card_id", "box_number", "is_checked"}).
			AddRow(uuid.New(), companyID, cardID, 4, false).
			AddRow(uuid.New(), companyID, cardID, 5, false).
			AddRow(uuid.New(), companyID, cardID, 6, false)

		mock.ExpectQuery(`SELECT \* FROM "box_states" WHERE company_id = \$1 AND \(customer_card_id = \$2 AND is_checked = \$3\) ORDER BY box_number ASC LIMIT .*`).
			WithArgs(companyID, cardID, false, 3).
			WillReturnRows(rows)

		boxes, err := repo.FindUnchecked(context.Background(), tenant.Scoped(companyID), cardID, 3)

		assert.NoError(t, err)
		require.Len(t, boxes, 3)
		assert.Equal(t, 4, boxes[0].BoxNumber)
		assert.Equal(t, 6, boxes[2].BoxNumber)
		assert.False(t, boxes[0].IsChecked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("omits limit when zero", func(t *testing.T) {
		repo, mock, mockDB := newMockBoxStateRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		cardID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "box_states" WHERE company_id = \$1 AND \(customer_card_id = \$2 AND is_checked = \$3\) ORDER BY box_number ASC`).
			WithArgs(companyID, cardID, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "customer_card_id", "box_number", "is_checked"}))

		boxes, err := repo.FindUnchecked(context.Background(), tenant.Scoped(companyID), cardID, 0)

		assert.NoError(t, err)
		assert.Empty(t, boxes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBoxStateRepository_CreateBatch(t *testing.T) {
	t.Run("returns nil for empty batch", func(t *testing.T) {
		repo, _, mockDB := newMockBoxStateRepository(t)
		defer mockDB.Close()

		err := repo.CreateBatch(context.Background(), tenant.Scoped(uuid.New()), nil)

		assert.NoError(t, err)
	})

	t.Run("rejects batch owned by another company", func(t *testing.T) {
		repo, _, mockDB := newMockBoxStateRepository(t)
		defer mockDB.Close()

		boxes := ledger.NewBoxStates(uuid.New(), uuid.New(), 3)

		err := repo.CreateBatch(context.Background(), tenant.Scoped(uuid.New()), boxes)

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("inserts the full box grid", func(t *testing.T) {
		repo, mock, mockDB := newMockBoxStateRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		boxes := ledger.NewBoxStates(companyID, uuid.New(), 5)

		mock.ExpectExec(`INSERT INTO "box_states"`).
			WillReturnResult(sqlmock.NewResult(0, 5))

		err := repo.CreateBatch(context.Background(), tenant.Scoped(companyID), boxes)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBoxStateRepository_FindByPayment(t *testing.T) {
	t.Run("finds the boxes a payment checked", func(t *testing.T) {
		repo, mock, mockDB := newMockBoxStateRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		paymentID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "box_number", "is_checked", "payment_id"}).
			AddRow(uuid.New(), companyID, 1, true, paymentID).
			AddRow(uuid.New(), companyID, 2, true, paymentID)

		mock.ExpectQuery(`SELECT \* FROM "box_states" WHERE company_id = \$1 AND payment_id = \$2 ORDER BY box_number ASC`).
			WithArgs(companyID, paymentID).
			WillReturnRows(rows)

		boxes, err := repo.FindByPayment(context.Background(), tenant.Scoped(companyID), paymentID)

		assert.NoError(t, err)
		assert.Len(t, boxes, 2)
		assert.True(t, boxes[0].IsChecked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBoxStateRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements BoxStateRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockBoxStateRepository(t)
		defer mockDB.Close()

		var _ ledger.BoxStateRepository = repo
	})
}
