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

// BoxPaymentService records payments against customer cards. A payment
// checks whole boxes only: the caller names the box count and the amount
// is priced from the card, with any client-supplied amount verified
// against it within a small rounding tolerance. Boxes are consumed
// lowest number first.
type BoxPaymentService struct {
	txManager        shared.TransactionManager
	customerCardRepo ledger.CustomerCardRepository
	boxStateRepo     ledger.BoxStateRepository
	boxPaymentRepo   ledger.BoxPaymentRepository
	dailyTotals      DailyTotalRecorder
	auditRepo        audit.AuditLogRepository
	idempotency      IdempotencyStore
}

// NewBoxPaymentService creates a new BoxPaymentService. The idempotency
// store may be nil, in which case retried requests create new payments.
func NewBoxPaymentService(
	txManager shared.TransactionManager,
	customerCardRepo ledger.CustomerCardRepository,
	boxStateRepo ledger.BoxStateRepository,
	boxPaymentRepo ledger.BoxPaymentRepository,
	dailyTotals DailyTotalRecorder,
	auditRepo audit.AuditLogRepository,
	idempotency IdempotencyStore,
) *BoxPaymentService {
	return &BoxPaymentService{
		txManager:        txManager,
		customerCardRepo: customerCardRepo,
		boxStateRepo:     boxStateRepo,
		boxPaymentRepo:   boxPaymentRepo,
		dailyTotals:      dailyTotals,
		auditRepo:        auditRepo,
		idempotency:      idempotency,
	}
}

// CheckBoxesRequest represents a payment against a customer card. The box
// count is the primary input; the amount follows from the card's box price.
// WorkerID is the worker who collected the payment and may differ from the
// worker the card is assigned to. Amount, when non-zero, is cross-checked
// against the derived amount.
type CheckBoxesRequest struct {
	CustomerCardID uuid.UUID
	WorkerID       uuid.UUID
	BoxesToCheck   int
	Amount         valueobject.Money
	PaymentDate    time.Time
	PaymentMethod  ledger.PaymentMethod
	Notes          string
	RecordedBy     uuid.UUID
	IdempotencyKey string
}

// CheckBoxesResult represents the outcome of a box payment
type CheckBoxesResult struct {
	PaymentID      uuid.UUID `json:"payment_id"`
	BoxesChecked   int       `json:"boxes_checked"`
	BoxNumbers     []int     `json:"box_numbers"`
	AmountPaid     string    `json:"amount_paid"`
	RemainingBoxes int       `json:"remaining_boxes"`
	CardStatus     string    `json:"card_status"`
	Duplicate      bool      `json:"duplicate,omitempty"`
}

// CheckBoxes records a payment: it row-locks the customer card, prices the
// requested boxes at the card's box price, checks the lowest-numbered open
// boxes and rolls the payment into the daily totals, all in one
// transaction.
func (s *BoxPaymentService) CheckBoxes(ctx context.Context, req CheckBoxesRequest) (*CheckBoxesResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "box_payment", "check_boxes")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCustomerCardID, req.CustomerCardID.String(),
		telemetry.SpanAttrBoxes, req.BoxesToCheck,
		telemetry.SpanAttrPaymentMethod, string(req.PaymentMethod),
	)

	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		telemetry.RecordError(span, shared.ErrMissingTenantContext)
		return nil, shared.ErrMissingTenantContext
	}
	companyID, _ := tc.CompanyID()

	if req.BoxesToCheck <= 0 {
		err := shared.NewDomainError("INVALID_BOX_COUNT", "Must check at least one box")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.idempotency != nil && req.IdempotencyKey != "" {
		if paymentID, found, err := s.idempotency.Get(ctx, companyID, req.IdempotencyKey); err == nil && found {
			return s.duplicateResult(ctx, tc, paymentID)
		}
	}

	var result *CheckBoxesResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		cc, err := s.customerCardRepo.FindByIDForUpdate(txCtx, tc, req.CustomerCardID)
		if err != nil {
			return fmt.Errorf("failed to load customer card: %w", err)
		}
		if cc == nil {
			return ledger.ErrCustomerCardNotFound
		}

		price, err := cc.BoxPrice()
		if err != nil {
			return err
		}
		boxes := req.BoxesToCheck
		amount := price.MultiplyByInt(int64(boxes))
		if !req.Amount.IsZero() {
			drift := req.Amount.Amount().Sub(amount.Amount()).Abs()
			if req.Amount.Currency() != amount.Currency() || drift.GreaterThan(ledger.AmountTolerance()) {
				return shared.NewDomainError("INVALID_PAYMENT_AMOUNT",
					fmt.Sprintf("Amount does not match %d boxes at %s per box", boxes, price.String()))
			}
		}
		workerID := req.WorkerID
		if workerID == uuid.Nil {
			workerID = cc.WorkerID
		}

		if err := cc.ApplyCheck(boxes, amount); err != nil {
			return err
		}

		payment, err := ledger.NewBoxPayment(cc, workerID, boxes, amount, req.PaymentDate, req.PaymentMethod, req.Notes)
		if err != nil {
			return err
		}
		if err := s.boxPaymentRepo.Save(txCtx, tc, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
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
		boxNumbers := make([]int, 0, boxes)
		for _, box := range open {
			if err := box.Check(payment.ID, req.PaymentDate); err != nil {
				return err
			}
			boxNumbers = append(boxNumbers, box.BoxNumber)
		}
		if err := s.boxStateRepo.SaveBatch(txCtx, tc, open); err != nil {
			return fmt.Errorf("failed to save box states: %w", err)
		}

		if err := s.customerCardRepo.SaveWithLock(txCtx, tc, cc); err != nil {
			return fmt.Errorf("failed to save customer card: %w", err)
		}

		if err := s.dailyTotals.RecordCollection(txCtx, tc, workerID, cc.BranchID, req.PaymentDate, amount, boxes); err != nil {
			return err
		}

		entry, err := audit.NewAuditLog(companyID, audit.ActionPaymentRecorded, "BoxPayment", payment.ID, req.RecordedBy,
			nil,
			audit.Snapshot{
				"customer_card_id": cc.ID.String(),
				"worker_id":        workerID.String(),
				"boxes_checked":    boxes,
				"amount":           amount.String(),
				"payment_method":   string(req.PaymentMethod),
			}, req.Notes)
		if err != nil {
			return err
		}
		if err := s.auditRepo.Save(txCtx, tc, entry); err != nil {
			return fmt.Errorf("failed to save audit entry: %w", err)
		}

		remaining, err := cc.RemainingBoxes()
		if err != nil {
			return err
		}
		result = &CheckBoxesResult{
			PaymentID:      payment.ID,
			BoxesChecked:   boxes,
			BoxNumbers:     boxNumbers,
			AmountPaid:     amount.String(),
			RemainingBoxes: remaining,
			CardStatus:     string(cc.Status),
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.idempotency != nil && req.IdempotencyKey != "" {
		if err := s.idempotency.Put(ctx, companyID, req.IdempotencyKey, result.PaymentID); err != nil {
			telemetry.AddEvent(span, "idempotency_store_failed", "error", err.Error())
		}
	}

	telemetry.AddEvent(span, "boxes_checked",
		telemetry.SpanAttrPaymentID, result.PaymentID.String(),
		telemetry.SpanAttrBoxes, result.BoxesChecked,
	)
	return result, nil
}

// duplicateResult rebuilds the result of an already-recorded payment for a
// retried idempotency key.
func (s *BoxPaymentService) duplicateResult(ctx context.Context, tc tenant.Context, paymentID uuid.UUID) (*CheckBoxesResult, error) {
	payment, err := s.boxPaymentRepo.FindByID(ctx, tc, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load original payment: %w", err)
	}
	if payment == nil {
		return nil, ledger.ErrPaymentNotFound
	}
	cc, err := s.customerCardRepo.FindByID(ctx, tc, payment.CustomerCardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer card: %w", err)
	}
	if cc == nil {
		return nil, ledger.ErrCustomerCardNotFound
	}
	remaining, err := cc.RemainingBoxes()
	if err != nil {
		return nil, err
	}
	boxes, err := s.boxStateRepo.FindByPayment(ctx, tc, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment boxes: %w", err)
	}
	boxNumbers := make([]int, 0, len(boxes))
	for _, b := range boxes {
		boxNumbers = append(boxNumbers, b.BoxNumber)
	}
	return &CheckBoxesResult{
		PaymentID:      payment.ID,
		BoxesChecked:   payment.BoxesChecked,
		BoxNumbers:     boxNumbers,
		AmountPaid:     payment.AmountPaid.String(),
		RemainingBoxes: remaining,
		CardStatus:     string(cc.Status),
		Duplicate:      true,
	}, nil
}

// GetCardDailySales sums one card's live payments for a calendar date. A
// date with no payments returns a zero row, not an error.
func (s *BoxPaymentService) GetCardDailySales(ctx context.Context, customerCardID uuid.UUID, at time.Time) (*ledger.CardDailySales, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "box_payment", "get_card_daily_sales")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrCustomerCardID, customerCardID.String())

	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		return nil, shared.ErrMissingTenantContext
	}
	cc, err := s.customerCardRepo.FindByID(ctx, tc, customerCardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer card: %w", err)
	}
	if cc == nil {
		return nil, ledger.ErrCustomerCardNotFound
	}
	sales, err := s.boxPaymentRepo.SumActiveByCardAndDate(ctx, tc, customerCardID, at)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum card payments: %w", err)
	}
	return sales, nil
}

// GetCustomerCard returns a customer card with its box states and payments
func (s *BoxPaymentService) GetCustomerCard(ctx context.Context, customerCardID uuid.UUID) (*ledger.CustomerCard, []*ledger.BoxState, []*ledger.BoxPayment, error) {
	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		return nil, nil, nil, shared.ErrMissingTenantContext
	}
	cc, err := s.customerCardRepo.FindByID(ctx, tc, customerCardID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load customer card: %w", err)
	}
	if cc == nil {
		return nil, nil, nil, ledger.ErrCustomerCardNotFound
	}
	boxes, err := s.boxStateRepo.FindByCustomerCard(ctx, tc, customerCardID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load box states: %w", err)
	}
	payments, err := s.boxPaymentRepo.FindByCustomerCard(ctx, tc, customerCardID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return cc, boxes, payments, nil
}

// boxesForAmount derives the whole-box count an amount pays for. Amounts
// that are not an integral multiple of the box price within the rounding
// tolerance are rejected.
func boxesForAmount(cc *ledger.CustomerCard, amount valueobject.Money) (int, error) {
	price, err := cc.BoxPrice()
	if err != nil {
		return 0, err
	}
	if !price.IsPositive() {
		return 0, &ledger.CorruptionError{
			CustomerCardID: cc.ID.String(),
			Detail:         "box price is not positive",
		}
	}
	quotient := amount.Amount().Div(price.Amount())
	boxes := int(quotient.Round(0).IntPart())
	if boxes <= 0 {
		return 0, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount is below the price of one box")
	}
	exact := price.MultiplyByInt(int64(boxes))
	drift := amount.Amount().Sub(exact.Amount()).Abs()
	if drift.GreaterThan(ledger.AmountTolerance()) {
		return 0, shared.NewDomainError("INVALID_PAYMENT_AMOUNT",
			fmt.Sprintf("Payment amount must be a whole number of boxes at %s per box", price.String()))
	}
	return boxes, nil
}
