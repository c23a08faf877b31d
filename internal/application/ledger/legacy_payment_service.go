package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sanduq/backend/internal/domain/audit"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/telemetry"
)

// LegacyPaymentService records installments on the legacy customer ledger,
// where progress is a fractional boxes-filled quotient rather than per-box
// state.
type LegacyPaymentService struct {
	txManager    shared.TransactionManager
	customerRepo ledger.CustomerRepository
	paymentRepo  ledger.PaymentRepository
	dailyTotals  DailyTotalRecorder
	auditRepo    audit.AuditLogRepository
}

// NewLegacyPaymentService creates a new LegacyPaymentService
func NewLegacyPaymentService(
	txManager shared.TransactionManager,
	customerRepo ledger.CustomerRepository,
	paymentRepo ledger.PaymentRepository,
	dailyTotals DailyTotalRecorder,
	auditRepo audit.AuditLogRepository,
) *LegacyPaymentService {
	return &LegacyPaymentService{
		txManager:    txManager,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		dailyTotals:  dailyTotals,
		auditRepo:    auditRepo,
	}
}

// RecordPaymentRequest represents an installment on the legacy ledger
type RecordPaymentRequest struct {
	CustomerID    uuid.UUID
	Amount        valueobject.Money
	PaymentDate   time.Time
	PaymentMethod ledger.PaymentMethod
	Notes         string
	RecordedBy    uuid.UUID
}

// RecordPaymentResult represents the outcome of a legacy payment
type RecordPaymentResult struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	AmountPaid  string    `json:"amount_paid"`
	Balance     string    `json:"balance"`
	BoxesFilled string    `json:"boxes_filled"`
	Status      string    `json:"status"`
}

// RecordPayment applies an installment to a legacy customer ledger inside
// one transaction, rolling it into the daily totals with a zero box count.
func (s *LegacyPaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "legacy_payment", "record_payment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCustomerID, req.CustomerID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		telemetry.RecordError(span, shared.ErrMissingTenantContext)
		return nil, shared.ErrMissingTenantContext
	}
	companyID, _ := tc.CompanyID()

	var result *RecordPaymentResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		customer, err := s.customerRepo.FindByIDForUpdate(txCtx, tc, req.CustomerID)
		if err != nil {
			return fmt.Errorf("failed to load customer: %w", err)
		}
		if customer == nil {
			return ledger.ErrCustomerNotFound
		}

		if err := customer.RecordPayment(req.Amount, req.PaymentDate); err != nil {
			return err
		}

		payment, err := ledger.NewPayment(customer, req.Amount, req.PaymentDate, req.PaymentMethod, req.Notes)
		if err != nil {
			return err
		}
		if err := s.paymentRepo.Save(txCtx, tc, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		if err := s.customerRepo.SaveWithLock(txCtx, tc, customer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}

		if err := s.dailyTotals.RecordCollection(txCtx, tc, customer.WorkerID, customer.BranchID, req.PaymentDate, req.Amount, 0); err != nil {
			return err
		}

		entry, err := audit.NewAuditLog(companyID, audit.ActionPaymentRecorded, "Payment", payment.ID, req.RecordedBy,
			nil,
			audit.Snapshot{
				"customer_id": customer.ID.String(),
				"amount":      req.Amount.String(),
				"balance":     customer.Balance().String(),
			}, req.Notes)
		if err != nil {
			return err
		}
		if err := s.auditRepo.Save(txCtx, tc, entry); err != nil {
			return fmt.Errorf("failed to save audit entry: %w", err)
		}

		result = &RecordPaymentResult{
			PaymentID:   payment.ID,
			AmountPaid:  customer.AmountPaid.String(),
			Balance:     customer.Balance().String(),
			BoxesFilled: customer.BoxesFilled.String(),
			Status:      string(customer.Status),
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.AddEvent(span, "legacy_payment_recorded", telemetry.SpanAttrPaymentID, result.PaymentID.String())
	return result, nil
}

// EvaluateDefaulters sweeps open ledgers whose last payment is older than
// the defaulting window and flags them. Returns how many customers changed
// status.
func (s *LegacyPaymentService) EvaluateDefaulters(ctx context.Context) (int, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "legacy_payment", "evaluate_defaulters")
	defer span.End()

	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		return 0, shared.ErrMissingTenantContext
	}

	now := time.Now()
	stale, err := s.customerRepo.FindStale(ctx, tc, now.Add(-ledger.DefaultingWindow))
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, fmt.Errorf("failed to load stale customers: %w", err)
	}

	flagged := 0
	for _, customer := range stale {
		if !customer.EvaluateStatus(now) {
			continue
		}
		if err := s.customerRepo.Save(ctx, tc, customer); err != nil {
			telemetry.RecordError(span, err)
			return flagged, fmt.Errorf("failed to save customer %s: %w", customer.ID, err)
		}
		flagged++
	}

	telemetry.AddEvent(span, "defaulters_evaluated", "flagged", flagged)
	return flagged, nil
}

// GetCustomer returns a customer with their payment history
func (s *LegacyPaymentService) GetCustomer(ctx context.Context, customerID uuid.UUID) (*ledger.Customer, []*ledger.Payment, error) {
	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		return nil, nil, shared.ErrMissingTenantContext
	}
	customer, err := s.customerRepo.FindByID(ctx, tc, customerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return nil, nil, ledger.ErrCustomerNotFound
	}
	payments, err := s.paymentRepo.FindByCustomer(ctx, tc, customerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return customer, payments, nil
}
