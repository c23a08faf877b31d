package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanduq/backend/internal/domain/audit"
	"github.com/sanduq/backend/internal/domain/ledger"
	"github.com/sanduq/backend/internal/domain/organization"
	"github.com/sanduq/backend/internal/domain/shared"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/telemetry"
)

// CardAssignmentService assigns card templates to customers, creating the
// customer card and its full unchecked box set in one transaction.
type CardAssignmentService struct {
	txManager        shared.TransactionManager
	cardRepo         ledger.CardRepository
	branchRepo       organization.BranchRepository
	workerRepo       organization.WorkerRepository
	customerCardRepo ledger.CustomerCardRepository
	boxStateRepo     ledger.BoxStateRepository
	auditRepo        audit.AuditLogRepository
}

// NewCardAssignmentService creates a new CardAssignmentService
func NewCardAssignmentService(
	txManager shared.TransactionManager,
	cardRepo ledger.CardRepository,
	branchRepo organization.BranchRepository,
	workerRepo organization.WorkerRepository,
	customerCardRepo ledger.CustomerCardRepository,
	boxStateRepo ledger.BoxStateRepository,
	auditRepo audit.AuditLogRepository,
) *CardAssignmentService {
	return &CardAssignmentService{
		txManager:        txManager,
		cardRepo:         cardRepo,
		branchRepo:       branchRepo,
		workerRepo:       workerRepo,
		customerCardRepo: customerCardRepo,
		boxStateRepo:     boxStateRepo,
		auditRepo:        auditRepo,
	}
}

// AssignCardRequest represents a request to assign a card to a customer
type AssignCardRequest struct {
	CustomerID uuid.UUID
	CardID     uuid.UUID
	BranchID   uuid.UUID
	WorkerID   uuid.UUID
	AssignedBy uuid.UUID
}

// AssignCardResult represents the outcome of a card assignment
type AssignCardResult struct {
	CustomerCardID uuid.UUID `json:"customer_card_id"`
	TotalBoxes     int       `json:"total_boxes"`
	BoxPrice       string    `json:"box_price"`
	TotalAmount    string    `json:"total_amount"`
}

// AssignCard snapshots a card template onto a customer and creates one
// unchecked box row per box on the card.
func (s *CardAssignmentService) AssignCard(ctx context.Context, req AssignCardRequest) (*AssignCardResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "card_assignment", "assign_card")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCustomerID, req.CustomerID.String(),
		telemetry.SpanAttrCardID, req.CardID.String(),
		telemetry.SpanAttrWorkerID, req.WorkerID.String(),
	)

	tc, ok := tenant.From(ctx)
	if !ok || !tc.IsScoped() {
		telemetry.RecordError(span, shared.ErrMissingTenantContext)
		return nil, shared.ErrMissingTenantContext
	}
	companyID, _ := tc.CompanyID()

	var result *AssignCardResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		card, err := s.cardRepo.FindByID(txCtx, tc, req.CardID)
		if err != nil {
			return fmt.Errorf("failed to load card template: %w", err)
		}
		if card == nil {
			return ledger.ErrCardNotFound
		}

		branch, err := s.branchRepo.FindByID(txCtx, tc, req.BranchID)
		if err != nil {
			return fmt.Errorf("failed to load branch: %w", err)
		}
		if branch == nil {
			return organization.ErrBranchNotFound
		}
		if !branch.Active {
			return organization.ErrBranchInactive
		}

		worker, err := s.workerRepo.FindByID(txCtx, tc, req.WorkerID)
		if err != nil {
			return fmt.Errorf("failed to load worker: %w", err)
		}
		if worker == nil {
			return organization.ErrWorkerNotFound
		}
		if !worker.Active {
			return organization.ErrWorkerInactive
		}
		if worker.BranchID != branch.ID {
			return organization.ErrWorkerBranchMismatch
		}

		var assignedBy *uuid.UUID
		if req.AssignedBy != uuid.Nil {
			by := req.AssignedBy
			assignedBy = &by
		}
		cc, err := ledger.NewCustomerCard(companyID, req.CustomerID, card, req.BranchID, req.WorkerID, assignedBy)
		if err != nil {
			return err
		}
		if err := s.customerCardRepo.Save(txCtx, tc, cc); err != nil {
			return fmt.Errorf("failed to save customer card: %w", err)
		}

		boxes := ledger.NewBoxStates(companyID, cc.ID, cc.TotalBoxes)
		if err := s.boxStateRepo.CreateBatch(txCtx, tc, boxes); err != nil {
			return fmt.Errorf("failed to create box states: %w", err)
		}

		entry, err := audit.NewAuditLog(companyID, audit.ActionCardAssigned, "CustomerCard", cc.ID, req.AssignedBy,
			nil,
			audit.Snapshot{
				"customer_id":  cc.CustomerID.String(),
				"card_id":      cc.CardID.String(),
				"total_boxes":  cc.TotalBoxes,
				"total_amount": cc.TotalAmount.String(),
			}, "")
		if err != nil {
			return err
		}
		if err := s.auditRepo.Save(txCtx, tc, entry); err != nil {
			return fmt.Errorf("failed to save audit entry: %w", err)
		}

		price, err := cc.BoxPrice()
		if err != nil {
			return err
		}
		result = &AssignCardResult{
			CustomerCardID: cc.ID,
			TotalBoxes:     cc.TotalBoxes,
			BoxPrice:       price.String(),
			TotalAmount:    cc.TotalAmount.String(),
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.AddEvent(span, "card_assigned",
		telemetry.SpanAttrCustomerCardID, result.CustomerCardID.String(),
		telemetry.SpanAttrBoxes, result.TotalBoxes,
	)
	return result, nil
}
