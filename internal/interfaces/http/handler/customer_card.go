package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/sanduq/backend/internal/application/ledger"
	"github.com/sanduq/backend/internal/domain/ledger"
)

// CustomerCardHandler handles card assignment and box payment endpoints
type CustomerCardHandler struct {
	BaseHandler
	assignmentService *ledgerapp.CardAssignmentService
	paymentService    *ledgerapp.BoxPaymentService
}

// NewCustomerCardHandler creates a new CustomerCardHandler
func NewCustomerCardHandler(
	assignmentService *ledgerapp.CardAssignmentService,
	paymentService *ledgerapp.BoxPaymentService,
) *CustomerCardHandler {
	return &CustomerCardHandler{
		assignmentService: assignmentService,
		paymentService:    paymentService,
	}
}

// RegisterRoutes registers customer card routes
func (h *CustomerCardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cards/:id/assignments", h.Assign)
	cards := rg.Group("/customer-cards")
	{
		cards.GET("/:id", h.Get)
		cards.GET("/:id/boxes", h.GetBoxes)
		cards.GET("/:id/daily-sales", h.GetDailySales)
		cards.POST("/:id/payments", h.RecordPayment)
	}
}

// AssignCardRequest represents a request to assign a card template to a customer
type AssignCardRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	BranchID   string `json:"branch_id" binding:"required,uuid"`
	WorkerID   string `json:"worker_id" binding:"required,uuid"`
}

// RecordBoxPaymentRequest represents a payment against a customer card.
// The caller states how many boxes are being paid for; the amount is
// derived from the card's box price. When an amount is supplied it is
// cross-checked against the derived value. WorkerID identifies the
// collecting worker and defaults to the card's assigned worker.
type RecordBoxPaymentRequest struct {
	BoxesToCheck  int    `json:"boxes_to_check" binding:"required,min=1"`
	WorkerID      string `json:"worker_id" binding:"omitempty,uuid"`
	Amount        string `json:"amount" binding:"omitempty"`
	Currency      string `json:"currency" binding:"omitempty,len=3"`
	PaymentDate   string `json:"payment_date"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CASH MOBILE_MONEY BANK_TRANSFER"`
	Notes         string `json:"notes" binding:"max=500"`
}

// CustomerCardResponse is the read model for a customer card header
type CustomerCardResponse struct {
	ID              uuid.UUID  `json:"id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	CardID          uuid.UUID  `json:"card_id"`
	BranchID        uuid.UUID  `json:"branch_id"`
	WorkerID        uuid.UUID  `json:"worker_id"`
	TotalBoxes      int        `json:"total_boxes"`
	BoxesChecked    int        `json:"boxes_checked"`
	BoxPrice        string     `json:"box_price"`
	TotalAmount     string     `json:"total_amount"`
	AmountPaid      string     `json:"amount_paid"`
	AmountRemaining string     `json:"amount_remaining"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	AssignedDate    time.Time  `json:"assigned_date"`
	AssignedBy      *uuid.UUID `json:"assigned_by,omitempty"`
}

func toCustomerCardResponse(cc *ledger.CustomerCard) CustomerCardResponse {
	boxPrice := ""
	if price, err := cc.BoxPrice(); err == nil {
		boxPrice = price.Amount().String()
	}
	return CustomerCardResponse{
		ID:              cc.ID,
		CustomerID:      cc.CustomerID,
		CardID:          cc.CardID,
		BranchID:        cc.BranchID,
		WorkerID:        cc.WorkerID,
		TotalBoxes:      cc.TotalBoxes,
		BoxesChecked:    cc.BoxesChecked,
		BoxPrice:        boxPrice,
		TotalAmount:     cc.TotalAmount.Amount().String(),
		AmountPaid:      cc.AmountPaid.Amount().String(),
		AmountRemaining: cc.AmountRemaining.Amount().String(),
		Currency:        string(cc.TotalAmount.Currency()),
		Status:          string(cc.Status),
		AssignedDate:    cc.AssignedDate,
		AssignedBy:      cc.AssignedBy,
	}
}

// Assign assigns a card template to a customer and creates the box grid
func (h *CustomerCardHandler) Assign(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req AssignCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := ledgerapp.AssignCardRequest{
		CustomerID: uuid.MustParse(req.CustomerID),
		CardID:     cardID,
		BranchID:   uuid.MustParse(req.BranchID),
		WorkerID:   uuid.MustParse(req.WorkerID),
	}
	if actorID, err := getActorID(c); err == nil {
		appReq.AssignedBy = actorID
	}

	result, err := h.assignmentService.AssignCard(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// RecordPayment records a box payment against a customer card
func (h *CustomerCardHandler) RecordPayment(c *gin.Context) {
	customerCardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer card ID")
		return
	}

	var req RecordBoxPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := ledgerapp.CheckBoxesRequest{
		CustomerCardID: customerCardID,
		BoxesToCheck:   req.BoxesToCheck,
		PaymentMethod:  ledger.PaymentMethod(req.PaymentMethod),
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}
	if req.WorkerID != "" {
		appReq.WorkerID = uuid.MustParse(req.WorkerID)
	}
	if req.Amount != "" {
		amount, err := parseMoney(req.Amount, req.Currency)
		if err != nil {
			h.BadRequest(c, "Invalid payment amount")
			return
		}
		appReq.Amount = amount
	}
	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		h.BadRequest(c, "Invalid payment date")
		return
	}
	appReq.PaymentDate = paymentDate

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Missing X-Actor-ID header")
		return
	}
	appReq.RecordedBy = actorID

	result, err := h.paymentService.CheckBoxes(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Duplicate {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// Get returns a customer card header with its payment history
func (h *CustomerCardHandler) Get(c *gin.Context) {
	customerCardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer card ID")
		return
	}

	cc, _, payments, err := h.paymentService.GetCustomerCard(c.Request.Context(), customerCardID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"card":     toCustomerCardResponse(cc),
		"payments": payments,
	})
}

// GetDailySales returns one card's collection total for a calendar date
func (h *CustomerCardHandler) GetDailySales(c *gin.Context) {
	customerCardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer card ID")
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		h.BadRequest(c, "Invalid date; expected YYYY-MM-DD")
		return
	}

	sales, err := h.paymentService.GetCardDailySales(c.Request.Context(), customerCardID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// GetBoxes returns the full box grid of a customer card
func (h *CustomerCardHandler) GetBoxes(c *gin.Context) {
	customerCardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer card ID")
		return
	}

	cc, boxes, _, err := h.paymentService.GetCustomerCard(c.Request.Context(), customerCardID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"card":  toCustomerCardResponse(cc),
		"boxes": boxes,
	})
}
