package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCustomerCardRepository creates a GormCustomerCardRepository with a mocked SQL connection
func newMockCustomerCardRepository(t *testing.T) (*GormCustomerCardRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCustomerCardRepository(gormDB), mock, mockDB
}

func newTestCustomerCard(t *testing.T, companyID uuid.UUID) *ledger.CustomerCard {
	amount, err := valueobject.NewMoney(decimal.NewFromInt(1000), valueobject.KES)
	require.NoError(t, err)
	card, err := ledger.NewCard(companyID, "CARD-100", "Standard 100", 100, amount)
	require.NoError(t, err)
	cc, err := ledger.NewCustomerCard(companyID, uuid.New(), card, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	return cc
}

func TestNewGormCustomerCardRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormCustomerCardRepository_FindByID(t *testing.T) {
	t.Run("finds card scoped to company", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		cardID := uuid.New()
		companyID := uuid.New()
		customerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "version", "customer_id", "total_boxes", "boxes_checked", "total_amount", "currency", "status"}).
			AddRow(cardID, companyID, 1, customerID, 100, 25, decimal.NewFromInt(1000), "KES", "active")

		mock.ExpectQuery(`SELECT \* FROM "customer_cards" WHERE company_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, cardID, 1).
			WillReturnRows(rows)

		cc, err := repo.FindByID(context.Background(), tenant.Scoped(companyID), cardID)

		assert.NoError(t, err)
		assert.NotNil(t, cc)
		assert.Equal(t, cardID, cc.ID)
		assert.Equal(t, companyID, cc.CompanyID)
		assert.Equal(t, 25, cc.BoxesChecked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for non-existent card", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		cardID := uuid.New()
		companyID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customer_cards" WHERE company_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, cardID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		cc, err := repo.FindByID(context.Background(), tenant.Scoped(companyID), cardID)

		assert.NoError(t, err)
		assert.Nil(t, cc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerCardRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("takes row lock", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		cardID := uuid.New()
		companyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "version", "total_boxes", "boxes_checked", "currency", "status"}).
			AddRow(cardID, companyID, 3, 100, 50, "KES", "active")

		mock.ExpectQuery(`SELECT \* FROM "customer_cards" WHERE company_id = \$1 AND id = \$2 ORDER BY .* FOR UPDATE`).
			WithArgs(companyID, cardID, 1).
			WillReturnRows(rows)

		cc, err := repo.FindByIDForUpdate(context.Background(), tenant.Scoped(companyID), cardID)

		assert.NoError(t, err)
		assert.NotNil(t, cc)
		assert.Equal(t, 3, cc.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerCardRepository_FindByCustomer(t *testing.T) {
	t.Run("finds all cards of a customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		customerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "version", "customer_id", "total_boxes", "currency", "status"}).
			AddRow(uuid.New(), companyID, 1, customerID, 100, "KES", "active").
			AddRow(uuid.New(), companyID, 1, customerID, 50, "KES", "completed")

		mock.ExpectQuery(`SELECT \* FROM "customer_cards" WHERE company_id = \$1 AND customer_id = \$2 ORDER BY assigned_date DESC`).
			WithArgs(companyID, customerID).
			WillReturnRows(rows)

		cards, err := repo.FindByCustomer(context.Background(), tenant.Scoped(companyID), customerID)

		assert.NoError(t, err)
		assert.Len(t, cards, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerCardRepository_Save(t *testing.T) {
	t.Run("saves card for owning company", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		cc := newTestCustomerCard(t, companyID)

		mock.ExpectExec(`UPDATE "customer_cards" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(context.Background(), tenant.Scoped(companyID), cc)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unscoped write", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		cc := newTestCustomerCard(t, uuid.New())

		err := repo.Save(context.Background(), tenant.Unscoped(), cc)

		assert.ErrorIs(t, err, shared.ErrMissingTenantContext)
	})

	t.Run("rejects write for another company", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		cc := newTestCustomerCard(t, uuid.New())

		err := repo.Save(context.Background(), tenant.Scoped(uuid.New()), cc)

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestGormCustomerCardRepository_SaveWithLock(t *testing.T) {
	t.Run("updates when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		cc := newTestCustomerCard(t, companyID)
		cc.IncrementVersion()

		mock.ExpectExec(`UPDATE "customer_cards" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), tenant.Scoped(companyID), cc)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		cc := newTestCustomerCard(t, companyID)
		cc.IncrementVersion()

		mock.ExpectExec(`UPDATE "customer_cards" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), tenant.Scoped(companyID), cc)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerCardRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements CustomerCardRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerCardRepository(t)
		defer mockDB.Close()

		var _ ledger.CustomerCardRepository = repo
	})
}
