package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appleasing "github.com/aqari/backend/internal/application/leasing"
	"github.com/aqari/backend/internal/domain/leasing"
)

// LeaseHandler handles lease contract endpoints
type LeaseHandler struct {
	BaseHandler
	leaseService *appleasing.LeaseService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(leaseService *appleasing.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService}
}

// CreateLeaseRequest is the request body for a new lease contract
type CreateLeaseRequest struct {
	UnitID           string  `json:"unit_id" binding:"required,uuid"`
	TenantID         string  `json:"tenant_id" binding:"required,uuid"`
	StartDate        string  `json:"start_date" binding:"required"`
	EndDate          string  `json:"end_date" binding:"required"`
	MonthlyRent      float64 `json:"monthly_rent" binding:"required,gt=0"`
	SecurityDeposit  float64 `json:"security_deposit" binding:"omitempty,min=0"`
	PaymentFrequency string  `json:"payment_frequency" binding:"omitempty,oneof=MONTHLY QUARTERLY SEMI_ANNUAL ANNUAL"`
	PaymentDay       int     `json:"payment_day" binding:"omitempty,min=1,max=28"`
	Notes            string  `json:"notes" binding:"max=2000"`
}

// ChangeLeaseStatusRequest is the request body for a status transition
type ChangeLeaseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING ACTIVE EXPIRED TERMINATED"`
}

// RenewLeaseRequest is the request body for extending a lease
type RenewLeaseRequest struct {
	NewEndDate string   `json:"new_end_date" binding:"required"`
	NewRent    *float64 `json:"new_rent" binding:"omitempty,gt=0"`
}

// parseDate parses a date in 2006-01-02 form
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Create creates and activates a lease, occupies the unit and issues the
// first invoice
func (h *LeaseHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unitID, err := parseUUID(req.UnitID)
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}
	tenantID, err := parseUUID(req.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.BadRequest(c, "Start date must look like 2025-01-31")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		h.BadRequest(c, "End date must look like 2025-01-31")
		return
	}

	lease, err := h.leaseService.CreateLease(c.Request.Context(), appleasing.CreateLeaseRequest{
		OwnerID:          ownerID,
		UnitID:           unitID,
		TenantID:         tenantID,
		StartDate:        startDate,
		EndDate:          endDate,
		MonthlyRent:      toDecimal(req.MonthlyRent),
		SecurityDeposit:  toDecimal(req.SecurityDeposit),
		PaymentFrequency: leasing.PaymentFrequency(req.PaymentFrequency),
		PaymentDay:       req.PaymentDay,
		Notes:            req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, lease)
}

// Get returns one lease
func (h *LeaseHandler) Get(c *gin.Context) {
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

	lease, err := h.leaseService.GetLease(c.Request.Context(), ownerID, leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lease)
}

// List returns the owner's leases, optionally filtered by status
func (h *LeaseHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var status *leasing.LeaseStatus
	if s := c.Query("status"); s != "" {
		leaseStatus := leasing.LeaseStatus(s)
		status = &leaseStatus
	}

	leases, err := h.leaseService.ListLeases(c.Request.Context(), ownerID, status, parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leases)
}

// ChangeStatus applies a manual lease status transition
func (h *LeaseHandler) ChangeStatus(c *gin.Context) {
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

	var req ChangeLeaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lease, err := h.leaseService.ChangeStatus(c.Request.Context(), ownerID, leaseID, leasing.LeaseStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lease)
}

// Terminate ends a lease early and vacates its unit
func (h *LeaseHandler) Terminate(c *gin.Context) {
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

	lease, err := h.leaseService.Terminate(c.Request.Context(), ownerID, leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lease)
}

// Renew extends a lease to a new end date, optionally at a new rent
func (h *LeaseHandler) Renew(c *gin.Context) {
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

	var req RenewLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	newEndDate, err := parseDate(req.NewEndDate)
	if err != nil {
		h.BadRequest(c, "New end date must look like 2025-01-31")
		return
	}

	appReq := appleasing.RenewLeaseRequest{
		OwnerID:    ownerID,
		LeaseID:    leaseID,
		NewEndDate: newEndDate,
	}
	if req.NewRent != nil {
		appReq.NewRent = toDecimalPtr(*req.NewRent)
	}

	lease, err := h.leaseService.Renew(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lease)
}

// Expiring returns leases ending within the requested number of days
func (h *LeaseHandler) Expiring(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	days := 30
	if d := c.Query("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed < 1 || parsed > 365 {
			h.BadRequest(c, "Days must be between 1 and 365")
			return
		}
		days = parsed
	}

	leases, err := h.leaseService.GetExpiring(c.Request.Context(), ownerID, days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leases)
}
