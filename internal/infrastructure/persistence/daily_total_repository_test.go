package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/report"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDailyTotalRepository creates a GormDailyTotalRepository with a mocked SQL connection
func newMockDailyTotalRepository(t *testing.T) (*GormDailyTotalRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormDailyTotalRepository(gormDB), mock, mockDB
}

func TestGormDailyTotalRepository_IncrementWorkerTotal(t *testing.T) {
	day := report.DateOf(time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC))

	t.Run("upserts with in-database deltas", func(t *testing.T) {
		repo, mock, mockDB := newMockDailyTotalRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectExec(`INSERT INTO "worker_daily_totals" .* ON CONFLICT \("company_id","worker_id","total_date"\) DO UPDATE SET .*worker_daily_totals\.payment_count \+ .*worker_daily_totals\.total_amount \+ .*worker_daily_totals\.total_boxes \+ `).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementWorkerTotal(context.Background(), tenant.Scoped(companyID),
			uuid.New(), uuid.New(), day, valueobject.NewMoneyKESFromFloat(300), 3, 1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unscoped writes before touching the database", func(t *testing.T) {
		repo, mock, mockDB := newMockDailyTotalRepository(t)
		defer mockDB.Close()

		err := repo.IncrementWorkerTotal(context.Background(), tenant.Unscoped(),
			uuid.New(), uuid.New(), day, valueobject.NewMoneyKESFromFloat(300), 3, 1)

		assert.ErrorIs(t, err, shared.ErrMissingTenantContext)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDailyTotalRepository_RecomputeBranchTotal(t *testing.T) {
	day := report.DateOf(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	t.Run("rebuilds the branch row from its worker rows", func(t *testing.T) {
		repo, mock, mockDB := newMockDailyTotalRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		branchID := uuid.New()

		agg := sqlmock.NewRows([]string{"total_amount", "total_boxes", "payment_count", "worker_count"}).
			AddRow(decimal.NewFromInt(750), 7, 4, 2)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) AS total_amount, COALESCE\(SUM\(total_boxes\), 0\) AS total_boxes, COALESCE\(SUM\(payment_count\), 0\) AS payment_count, COUNT\(DISTINCT worker_id\) AS worker_count FROM "worker_daily_totals" WHERE company_id = \$1 AND branch_id = \$2 AND total_date = \$3`).
			WithArgs(companyID, branchID, day).
			WillReturnRows(agg)
		mock.ExpectExec(`INSERT INTO "branch_daily_totals" .* ON CONFLICT \("company_id","branch_id","total_date"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RecomputeBranchTotal(context.Background(), tenant.Scoped(companyID), branchID, day)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unscoped recompute", func(t *testing.T) {
		repo, _, mockDB := newMockDailyTotalRepository(t)
		defer mockDB.Close()

		err := repo.RecomputeBranchTotal(context.Background(), tenant.Unscoped(), uuid.New(), day)
		assert.ErrorIs(t, err, shared.ErrMissingTenantContext)
	})
}

func TestGormDailyTotalRepository_RecomputeCompanyTotal(t *testing.T) {
	day := report.DateOf(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	t.Run("rebuilds the company row from its branch rows", func(t *testing.T) {
		repo, mock, mockDB := newMockDailyTotalRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		agg := sqlmock.NewRows([]string{"total_amount", "total_boxes", "payment_count", "branch_count", "worker_count"}).
			AddRow(decimal.NewFromInt(1250), 12, 7, 3, 5)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) AS total_amount, COALESCE\(SUM\(total_boxes\), 0\) AS total_boxes, COALESCE\(SUM\(payment_count\), 0\) AS payment_count, COUNT\(DISTINCT branch_id\) AS branch_count, COALESCE\(SUM\(worker_count\), 0\) AS worker_count FROM "branch_daily_totals" WHERE company_id = \$1 AND total_date = \$2`).
			WithArgs(companyID, day).
			WillReturnRows(agg)
		mock.ExpectExec(`INSERT INTO "company_daily_totals" .* ON CONFLICT \("company_id","total_date"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RecomputeCompanyTotal(context.Background(), tenant.Scoped(companyID), day)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDailyTotalRepository_FindWorkerTotal(t *testing.T) {
	day := report.DateOf(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	t.Run("finds the row scoped to the company", func(t *testing.T) {
		repo, mock, mockDB := newMockDailyTotalRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		workerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "worker_id", "branch_id", "total_date", "total_amount", "currency", "total_boxes", "payment_count"}).
			AddRow(uuid.New(), companyID, workerID, uuid.New(), day, decimal.NewFromInt(400), "KES", 4, 2)

		mock.ExpectQuery(`SELECT \* FROM "worker_daily_totals" WHERE company_id = \$1 AND .?worker_id = \$2 AND total_date = \$3.? ORDER BY .* LIMIT .*`).
			WithArgs(companyID, workerID, day, 1).
			WillReturnRows(rows)

		total, err := repo.FindWorkerTotal(context.Background(), tenant.Scoped(companyID), workerID, day)

		assert.NoError(t, err)
		require.NotNil(t, total)
		assert.Equal(t, workerID, total.WorkerID)
		assert.Equal(t, "400", total.TotalAmount.Amount().String())
		assert.Equal(t, 4, total.TotalBoxes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when the worker has no row for the date", func(t *testing.T) {
		repo, mock, mockDB := newMockDailyTotalRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		workerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "worker_daily_totals"`).
			WithArgs(companyID, workerID, day, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		total, err := repo.FindWorkerTotal(context.Background(), tenant.Scoped(companyID), workerID, day)

		assert.NoError(t, err)
		assert.Nil(t, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDailyTotalRepository_InterfaceCompliance(t *testing.T) {
	repo, _, mockDB := newMockDailyTotalRepository(t)
	defer mockDB.Close()

	var _ report.DailyTotalRepository = repo
}
