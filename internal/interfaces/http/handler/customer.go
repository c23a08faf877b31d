package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/sanduq/backend/internal/application/ledger"
	"github.com/sanduq/backend/internal/domain/ledger"
)

// CustomerHandler handles the legacy per-customer ledger endpoints
type CustomerHandler struct {
	BaseHandler
	paymentService *ledgerapp.LegacyPaymentService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(paymentService *ledgerapp.LegacyPaymentService) *CustomerHandler {
	return &CustomerHandler{paymentService: paymentService}
}

// RegisterRoutes registers legacy customer ledger routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("/:id", h.Get)
		customers.POST("/:id/payments", h.RecordPayment)
	}
}

// RecordLegacyPaymentRequest represents an installment on a legacy ledger
type RecordLegacyPaymentRequest struct {
	Amount        string `json:"amount" binding:"required"`
	Currency      string `json:"currency" binding:"omitempty,len=3"`
	PaymentDate   string `json:"payment_date"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CASH MOBILE_MONEY BANK_TRANSFER"`
	Notes         string `json:"notes" binding:"max=500"`
}

// CustomerResponse is the read model for a legacy customer ledger
type CustomerResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone,omitempty"`
	BranchID        uuid.UUID  `json:"branch_id"`
	WorkerID        uuid.UUID  `json:"worker_id"`
	TotalBoxes      int        `json:"total_boxes"`
	BoxesFilled     string     `json:"boxes_filled"`
	PricePerBox     string     `json:"price_per_box"`
	TotalAmount     string     `json:"total_amount"`
	AmountPaid      string     `json:"amount_paid"`
	Balance         string     `json:"balance"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
}

func toCustomerResponse(customer *ledger.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              customer.ID,
		Name:            customer.Name,
		Phone:           customer.Phone,
		BranchID:        customer.BranchID,
		WorkerID:        customer.WorkerID,
		TotalBoxes:      customer.TotalBoxes,
		BoxesFilled:     customer.BoxesFilled.String(),
		PricePerBox:     customer.PricePerBox.Amount().String(),
		TotalAmount:     customer.TotalAmount.Amount().String(),
		AmountPaid:      customer.AmountPaid.Amount().String(),
		Balance:         customer.TotalAmount.Amount().Sub(customer.AmountPaid.Amount()).String(),
		Currency:        string(customer.TotalAmount.Currency()),
		Status:          string(customer.Status),
		LastPaymentDate: customer.LastPaymentDate,
	}
}

// RecordPayment applies an installment to a legacy customer ledger
func (h *CustomerHandler) RecordPayment(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req RecordLegacyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := parseMoney(req.Amount, req.Currency)
	if err != nil {
		h.BadRequest(c, "Invalid payment amount")
		return
	}
	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		h.BadRequest(c, "Invalid payment date")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Missing X-Actor-ID header")
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), ledgerapp.RecordPaymentRequest{
		CustomerID:    customerID,
		Amount:        amount,
		PaymentDate:   paymentDate,
		PaymentMethod: ledger.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
		RecordedBy:    actorID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns a legacy customer ledger with its installment history
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, payments, err := h.paymentService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"customer": toCustomerResponse(customer),
		"payments": payments,
	})
}
