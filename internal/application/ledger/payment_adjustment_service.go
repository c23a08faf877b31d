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

// PaymentAdjustmentService reverses and adjusts box payments. Both
// operations are admin-only: the ledger is append-only for everyone else.
// A reversal tombstones the payment and rolls its boxes and totals back; an
// adjustment is a reversal plus a replacement payment linked to the
// original.
type PaymentAdjustmentService struct {
	txManager        shared.TransactionManager
	customerCardRepo ledger.CustomerCardRepository
	boxStateRepo     ledger.BoxStateRepository
	boxPaymentRepo   ledger.BoxPaymentRepository
	dailyTotals      DailyTotalRecorder
	auditRepo        audit.AuditLogRepository
}

// NewPaymentAdjustmentService creates a new PaymentAdjustmentService
func NewPaymentAdjustmentService(
	txManager shared.TransactionManager,
	customerCardRepo ledger.CustomerCardRepository,
	boxStateRepo ledger.BoxStateRepository,
	boxPaymentRepo ledger.BoxPaymentRepository,
	dailyTotals DailyTotalRecorder,
	auditRepo audit.AuditLogRepository,
) *PaymentAdjustmentService {
	return &PaymentAdjustmentService{
		txManager:        txManager,
		customerCardRepo: customerCardRepo,
		boxStateRepo:     boxStateRepo,
		boxPaymentRepo:   boxPaymentRepo,
		dailyTotals:      dailyTotals,
		auditRepo:        auditRepo,
	}
}

// ReversePaymentRequest represents a request to reverse a box payment
type ReversePaymentRequest struct {
	PaymentID  uuid.UUID
	ActorID    uuid.UUID
	ActorAdmin bool
	Notes      string
}

// ReversePaymentResult represents the outcome of a reversal
type ReversePaymentResult struct {
	PaymentID      uuid.UUID `json:"payment_id"`
	BoxesUnchecked int       `json:"boxes_unchecked"`
	AmountReversed string    `json:"amount_reversed"`
	CardStatus     string    `json:"card_status"`
}

// ReversePayment tombstones a payment, unchecks exactly the boxes it
// checked and backs it out of the daily totals for its original date.
func (s *PaymentAdjustmentService) ReversePayment(ctx context.Context, req ReversePaymentRequest) (*ReversePaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment_adjustment", "reverse_payment")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrPaymentID, req.PaymentID.String())

	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		telemetry.RecordError(span, shared.ErrMissingTenantContext)
		return nil, shared.ErrMissingTenantContext
	}
	if !req.ActorAdmin {
		telemetry.RecordError(span, shared.ErrUnauthorized)
		return nil, shared.ErrUnauthorized
	}
	companyID, _ := tc.CompanyID()

	var result *ReversePaymentResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		reversed, cc, err := s.reverseInTx(txCtx, tc, req.PaymentID, req.ActorID, req.Notes)
		if err != nil {
			return err
		}

		entry, err := audit.NewAuditLog(companyID, audit.ActionPaymentReversed, "BoxPayment", reversed.ID, req.ActorID,
			audit.Snapshot{
				"status":        string(ledger.BoxPaymentActive),
				"boxes_checked": reversed.BoxesChecked,
				"amount":        reversed.AmountPaid.String(),
			},
			audit.Snapshot{
				"status": string(ledger.BoxPaymentReversed),
			}, req.Notes)
		if err != nil {
			return err
		}
		if err := s.auditRepo.Save(txCtx, tc, entry); err != nil {
			return fmt.Errorf("failed to save audit entry: %w", err)
		}

		result = &ReversePaymentResult{
			PaymentID:      reversed.ID,
			BoxesUnchecked: reversed.BoxesChecked,
			AmountReversed: reversed.AmountPaid.String(),
			CardStatus:     string(cc.Status),
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.AddEvent(span, "payment_reversed", telemetry.SpanAttrBoxes, result.BoxesUnchecked)
	return result, nil
}

// reverseInTx performs the reversal mechanics inside an open transaction:
// lock the card, tombstone the payment, uncheck its boxes, roll back the
// card counters and the daily totals.
func (s *PaymentAdjustmentService) reverseInTx(txCtx context.Context, tc tenant.Context, paymentID, actorID uuid.UUID, notes string) (*ledger.BoxPayment, *ledger.CustomerCard, error) {
	payment, err := s.boxPaymentRepo.FindByID(txCtx, tc, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return nil, nil, ledger.ErrPaymentNotFound
	}
	if payment.IsReversed() {
		return nil, nil, ledger.ErrPaymentReversed
	}

	cc, err := s.customerCardRepo.FindByIDForUpdate(txCtx, tc, payment.CustomerCardID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load customer card: %w", err)
	}
	if cc == nil {
		return nil, nil, ledger.ErrCustomerCardNotFound
	}

	boxes, err := s.boxStateRepo.FindByPayment(txCtx, tc, payment.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payment boxes: %w", err)
	}
	if len(boxes) != payment.BoxesChecked {
		return nil, nil, &ledger.CorruptionError{
			CustomerCardID: cc.ID.String(),
			Detail:         fmt.Sprintf("payment checked %d boxes but %d rows reference it", payment.BoxesChecked, len(boxes)),
		}
	}
	for _, box := range boxes {
		if err := box.Uncheck(); err != nil {
			return nil, nil, err
		}
	}
	if err := s.boxStateRepo.SaveBatch(txCtx, tc, boxes); err != nil {
		return nil, nil, fmt.Errorf("failed to save box states: %w", err)
	}

	if err := cc.ApplyUncheck(payment.BoxesChecked, payment.AmountPaid); err != nil {
		return nil, nil, err
	}
	if err := s.customerCardRepo.SaveWithLock(txCtx, tc, cc); err != nil {
		return nil, nil, fmt.Errorf("failed to save customer card: %w", err)
	}

	if err := payment.MarkReversed(actorID, notes, time.Now()); err != nil {
		return nil, nil, err
	}
	if err := s.boxPaymentRepo.SaveWithLock(txCtx, tc, payment); err != nil {
		return nil, nil, fmt.Errorf("failed to save payment: %w", err)
	}

	if err := s.dailyTotals.ReverseCollection(txCtx, tc, payment.WorkerID, payment.BranchID, payment.PaymentDate, payment.AmountPaid, payment.BoxesChecked); err != nil {
		return nil, nil, err
	}
	return payment, cc, nil
}

// AdjustPaymentRequest represents a request to replace a payment with
// corrected terms.
type AdjustPaymentRequest struct {
	PaymentID     uuid.UUID
	NewAmount     valueobject.Money
	PaymentMethod ledger.PaymentMethod
	ActorID       uuid.UUID
	ActorAdmin    bool
	Notes         string
}

// AdjustPaymentResult represents the outcome of an adjustment
type AdjustPaymentResult struct {
	OriginalPaymentID uuid.UUID `json:"original_payment_id"`
	NewPaymentID      uuid.UUID `json:"new_payment_id"`
	BoxesChecked      int       `json:"boxes_checked"`
	AmountPaid        string    `json:"amount_paid"`
	CardStatus        string    `json:"card_status"`
}

// AdjustPayment reverses the original payment and records a replacement
// with the corrected amount, linked back to the original, in one
// transaction. The replacement keeps the original payment date so the
// daily totals move within the same day.
func (s *PaymentAdjustmentService) AdjustPayment(ctx context.Context, req AdjustPaymentRequest) (*AdjustPaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment_adjustment", "adjust_payment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPaymentID, req.PaymentID.String(),
		telemetry.SpanAttrAmount, req.NewAmount.String(),
	)

	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		telemetry.RecordError(span, shared.ErrMissingTenantContext)
		return nil, shared.ErrMissingTenantContext
	}
	if !req.ActorAdmin {
		telemetry.RecordError(span, shared.ErrUnauthorized)
		return nil, shared.ErrUnauthorized
	}
	if !req.NewAmount.IsPositive() {
		err := shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Adjusted amount must be positive")
		telemetry.RecordError(span, err)
		return nil, err
	}
	companyID, _ := tc.CompanyID()

	var result *AdjustPaymentResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		original, cc, err := s.reverseInTx(txCtx, tc, req.PaymentID, req.ActorID, req.Notes)
		if err != nil {
			return err
		}

		boxes, err := boxesForAmount(cc, req.NewAmount)
		if err != nil {
			return err
		}
		if err := cc.ApplyCheck(boxes, req.NewAmount); err != nil {
			return err
		}

		method := req.PaymentMethod
		if method == "" {
			method = original.PaymentMethod
		}
		replacement, err := ledger.NewBoxPayment(cc, original.WorkerID, boxes, req.NewAmount, original.PaymentDate, method, req.Notes)
		if err != nil {
			return err
		}
		replacement.LinkAdjustment(original.ID, req.ActorID, req.Notes, time.Now())
		if err := s.boxPaymentRepo.Save(txCtx, tc, replacement); err != nil {
			return fmt.Errorf("failed to save replacement payment: %w", err)
		}

		open, err := s.boxStateRepo.FindUnchecked(txCtx, tc, cc.ID, boxes)
		if err != nil {
			return fmt.Errorf("failed to load open boxes: %w", err)
		}
		if len(open) < boxes {
			return &ledger.CorruptionError{
				CustomerCardID: cc.ID.String(),
				Detail:         fmt.Sprintf("card counters allow %d boxes but only %d open rows exist", boxes, len(open)),
			}
		}
		for _, box := range open {
			if err := box.Check(replacement.ID, original.PaymentDate); err != nil {
				return err
			}
		}
		if err := s.boxStateRepo.SaveBatch(txCtx, tc, open); err != nil {
			return fmt.Errorf("failed to save box states: %w", err)
		}
		if err := s.customerCardRepo.SaveWithLock(txCtx, tc, cc); err != nil {
			return fmt.Errorf("failed to save customer card: %w", err)
		}

		if err := s.dailyTotals.RecordCollection(txCtx, tc, original.WorkerID, cc.BranchID, original.PaymentDate, req.NewAmount, boxes); err != nil {
			return err
		}

		entry, err := audit.NewAuditLog(companyID, audit.ActionPaymentAdjusted, "BoxPayment", replacement.ID, req.ActorID,
			audit.Snapshot{
				"payment_id":    original.ID.String(),
				"boxes_checked": original.BoxesChecked,
				"amount":        original.AmountPaid.String(),
			},
			audit.Snapshot{
				"payment_id":    replacement.ID.String(),
				"boxes_checked": boxes,
				"amount":        req.NewAmount.String(),
			}, req.Notes)
		if err != nil {
			return err
		}
		if err := s.auditRepo.Save(txCtx, tc, entry); err != nil {
			return fmt.Errorf("failed to save audit entry: %w", err)
		}

		result = &AdjustPaymentResult{
			OriginalPaymentID: original.ID,
			NewPaymentID:      replacement.ID,
			BoxesChecked:      boxes,
			AmountPaid:        req.NewAmount.String(),
			CardStatus:        string(cc.Status),
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.AddEvent(span, "payment_adjusted",
		telemetry.SpanAttrPaymentID, result.NewPaymentID.String(),
		telemetry.SpanAttrBoxes, result.BoxesChecked,
	)
	return result, nil
}
