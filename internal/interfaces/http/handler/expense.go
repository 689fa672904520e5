package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appfinance "github.com/aqari/backend/internal/application/finance"
	"github.com/aqari/backend/internal/domain/finance"
)

// ExpenseHandler handles property expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *appfinance.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *appfinance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest is the request body for recording an expense
type CreateExpenseRequest struct {
	PropertyID    string  `json:"property_id" binding:"required,uuid"`
	Category      string  `json:"category" binding:"required,oneof=MAINTENANCE UTILITIES REPAIRS INSURANCE TAXES MANAGEMENT OTHER"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Date          string  `json:"date" binding:"required"`
	Description   string  `json:"description" binding:"required,max=500"`
	Vendor        string  `json:"vendor" binding:"max=200"`
	ReceiptNumber string  `json:"receipt_number" binding:"max=100"`
	Notes         string  `json:"notes" binding:"max=2000"`
}

// UpdateExpenseRequest is the request body for editing an expense
type UpdateExpenseRequest struct {
	Category      *string  `json:"category" binding:"omitempty,oneof=MAINTENANCE UTILITIES REPAIRS INSURANCE TAXES MANAGEMENT OTHER"`
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"`
	Date          *string  `json:"date"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	Vendor        *string  `json:"vendor" binding:"omitempty,max=200"`
	ReceiptNumber *string  `json:"receipt_number" binding:"omitempty,max=100"`
	Notes         *string  `json:"notes" binding:"omitempty,max=2000"`
}

// Create records an expense against a property
func (h *ExpenseHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	propertyID, err := parseUUID(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Date must look like 2025-01-31")
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), appfinance.CreateExpenseRequest{
		OwnerID:       ownerID,
		PropertyID:    propertyID,
		Category:      finance.ExpenseCategory(req.Category),
		Amount:        toDecimal(req.Amount),
		Date:          date,
		Description:   req.Description,
		Vendor:        req.Vendor,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
		CreatedBy:     &ownerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// Get returns one expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	expenseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), ownerID, expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// List returns the owner's expenses with optional property and date filters
func (h *ExpenseHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var propertyID *uuid.UUID
	if p := c.Query("property_id"); p != "" {
		parsed, err := parseUUID(p)
		if err != nil {
			h.BadRequest(c, "Invalid property ID")
			return
		}
		propertyID = &parsed
	}

	var from, to *time.Time
	if f := c.Query("from"); f != "" {
		parsed, err := parseDate(f)
		if err != nil {
			h.BadRequest(c, "From date must look like 2025-01-31")
			return
		}
		from = &parsed
	}
	if t := c.Query("to"); t != "" {
		parsed, err := parseDate(t)
		if err != nil {
			h.BadRequest(c, "To date must look like 2025-01-31")
			return
		}
		to = &parsed
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), ownerID, propertyID, from, to, parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

// Update edits an expense record
func (h *ExpenseHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	expenseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := appfinance.UpdateExpenseRequest{
		OwnerID:       ownerID,
		ExpenseID:     expenseID,
		Description:   req.Description,
		Vendor:        req.Vendor,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
	}
	if req.Category != nil {
		category := finance.ExpenseCategory(*req.Category)
		appReq.Category = &category
	}
	if req.Amount != nil {
		appReq.Amount = toDecimalPtr(*req.Amount)
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			h.BadRequest(c, "Date must look like 2025-01-31")
			return
		}
		appReq.Date = &date
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete removes an expense record
func (h *ExpenseHandler) Delete(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	expenseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), ownerID, expenseID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
