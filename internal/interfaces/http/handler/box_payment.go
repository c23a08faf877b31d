package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/sanduq/backend/internal/application/ledger"
	"github.com/sanduq/backend/internal/domain/ledger"
)

// adminRole marks an actor allowed to touch payments outside the
// defaulting window
const adminRole = "admin"

// BoxPaymentHandler handles reversal and adjustment endpoints
type BoxPaymentHandler struct {
	BaseHandler
	adjustmentService *ledgerapp.PaymentAdjustmentService
}

// NewBoxPaymentHandler creates a new BoxPaymentHandler
func NewBoxPaymentHandler(adjustmentService *ledgerapp.PaymentAdjustmentService) *BoxPaymentHandler {
	return &BoxPaymentHandler{adjustmentService: adjustmentService}
}

// RegisterRoutes registers box payment routes
func (h *BoxPaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/box-payments")
	{
		payments.POST("/:id/reverse", h.Reverse)
		payments.POST("/:id/adjust", h.Adjust)
	}
}

// ReversePaymentRequest represents a request to reverse a box payment
type ReversePaymentRequest struct {
	Notes string `json:"notes" binding:"required,max=500"`
}

// AdjustPaymentRequest represents a request to adjust a box payment amount
type AdjustPaymentRequest struct {
	NewAmount     string `json:"new_amount" binding:"required"`
	Currency      string `json:"currency" binding:"omitempty,len=3"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CASH MOBILE_MONEY BANK_TRANSFER"`
	Notes         string `json:"notes" binding:"required,max=500"`
}

// Reverse tombstones a payment and unchecks the boxes it paid for
func (h *BoxPaymentHandler) Reverse(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req ReversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Missing X-Actor-ID header")
		return
	}

	result, err := h.adjustmentService.ReversePayment(c.Request.Context(), ledgerapp.ReversePaymentRequest{
		PaymentID:  paymentID,
		ActorID:    actorID,
		ActorAdmin: c.GetHeader("X-Actor-Role") == adminRole,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Adjust replaces a payment's amount by reversing it and recording a new one
func (h *BoxPaymentHandler) Adjust(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req AdjustPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	newAmount, err := parseMoney(req.NewAmount, req.Currency)
	if err != nil {
		h.BadRequest(c, "Invalid adjustment amount")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Missing X-Actor-ID header")
		return
	}

	result, err := h.adjustmentService.AdjustPayment(c.Request.Context(), ledgerapp.AdjustPaymentRequest{
		PaymentID:     paymentID,
		NewAmount:     newAmount,
		PaymentMethod: ledger.PaymentMethod(req.PaymentMethod),
		ActorID:       actorID,
		ActorAdmin:    c.GetHeader("X-Actor-Role") == adminRole,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
