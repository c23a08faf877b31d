// Package ledger contains the application services for the contribution
// ledger: card assignment, box payments, reversal and adjustment, and the
// legacy customer ledger.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
)

// DailyTotalRecorder rolls payments into the daily aggregates. Implemented
// by the report application service; the indirection keeps the payment
// services testable without the reporting stack.
type DailyTotalRecorder interface {
	RecordCollection(ctx context.Context, tc tenant.Context, workerID, branchID uuid.UUID, paymentDate time.Time, amount valueobject.Money, boxes int) error
	ReverseCollection(ctx context.Context, tc tenant.Context, workerID, branchID uuid.UUID, paymentDate time.Time, amount valueobject.Money, boxes int) error
}

// IdempotencyStore remembers which payment a client idempotency key
// produced so a retried request returns the original payment instead of
// double charging.
type IdempotencyStore interface {
	Get(ctx context.Context, companyID uuid.UUID, key string) (uuid.UUID, bool, error)
	Put(ctx context.Context, companyID uuid.UUID, key string, paymentID uuid.UUID) error
}
