package handler

import (
	"github.com/gin-gonic/gin"

	appbilling "github.com/aqari/backend/internal/application/billing"
	"github.com/aqari/backend/internal/domain/billing"
)

// InvoiceHandler handles invoice and payment endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *appbilling.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoiceRequest is the request body for issuing an invoice manually
type CreateInvoiceRequest struct {
	LeaseID       string  `json:"lease_id" binding:"required,uuid"`
	BillingPeriod string  `json:"billing_period" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	DueDate       string  `json:"due_date" binding:"required"`
	Description   string  `json:"description" binding:"max=500"`
	Notes         string  `json:"notes" binding:"max=2000"`
}

// UpdateInvoiceRequest is the request body for editing an invoice
type UpdateInvoiceRequest struct {
	Amount  *float64 `json:"amount" binding:"omitempty,gt=0"`
	Status  *string  `json:"status" binding:"omitempty,oneof=PENDING PARTIAL PAID OVERDUE CANCELLED"`
	DueDate *string  `json:"due_date"`
	Notes   *string  `json:"notes" binding:"omitempty,max=2000"`
}

// RecordPaymentRequest is the request body for applying a payment
type RecordPaymentRequest struct {
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate     string  `json:"payment_date"`
	Method          string  `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHECK CARD OTHER"`
	ReferenceNumber string  `json:"reference_number" binding:"max=100"`
	Notes           string  `json:"notes" binding:"max=2000"`
}

// Create issues an invoice outside the monthly sweep
func (h *InvoiceHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	leaseID, err := parseUUID(req.LeaseID)
	if err != nil {
		h.BadRequest(c, "Invalid lease ID")
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		h.BadRequest(c, "Due date must look like 2025-01-31")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), appbilling.CreateInvoiceRequest{
		OwnerID:       ownerID,
		LeaseID:       leaseID,
		BillingPeriod: req.BillingPeriod,
		Amount:        toDecimal(req.Amount),
		DueDate:       dueDate,
		Description:   req.Description,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// Get returns one invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// List returns the owner's invoices, optionally filtered by status
func (h *InvoiceHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var status *billing.InvoiceStatus
	if s := c.Query("status"); s != "" {
		invoiceStatus := billing.InvoiceStatus(s)
		status = &invoiceStatus
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), ownerID, status, parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// ListByLease returns all invoices issued under a lease
func (h *InvoiceHandler) ListByLease(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	leaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lease ID")
		return
	}

	invoices, err := h.invoiceService.ListByLease(c.Request.Context(), ownerID, leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// Update edits an invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := appbilling.UpdateInvoiceRequest{
		OwnerID:   ownerID,
		InvoiceID: invoiceID,
		Notes:     req.Notes,
	}
	if req.Amount != nil {
		appReq.Amount = toDecimalPtr(*req.Amount)
	}
	if req.Status != nil {
		status := billing.InvoiceStatus(*req.Status)
		appReq.Status = &status
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			h.BadRequest(c, "Due date must look like 2025-01-31")
			return
		}
		appReq.DueDate = &dueDate
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Cancel voids an unpaid invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// RecordPayment applies money to an invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := appbilling.RecordPaymentRequest{
		OwnerID:         ownerID,
		InvoiceID:       invoiceID,
		Amount:          toDecimal(req.Amount),
		Method:          billing.PaymentMethod(req.Method),
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}
	if req.PaymentDate != "" {
		paymentDate, err := parseDate(req.PaymentDate)
		if err != nil {
			h.BadRequest(c, "Payment date must look like 2025-01-31")
			return
		}
		appReq.PaymentDate = paymentDate
	}
	appReq.ReceivedBy = &ownerID

	payment, err := h.invoiceService.RecordPayment(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// ListPayments returns the payments recorded against an invoice
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}
