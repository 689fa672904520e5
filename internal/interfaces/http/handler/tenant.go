package handler

import (
	"github.com/gin-gonic/gin"

	appportfolio "github.com/aqari/backend/internal/application/portfolio"
)

// TenantHandler handles tenant record endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *appportfolio.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *appportfolio.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// CreateTenantRequest is the request body for registering a tenant
type CreateTenantRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Phone       string `json:"phone" binding:"required,max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	IDNumber    string `json:"id_number" binding:"max=50"`
	IDType      string `json:"id_type" binding:"max=50"`
	Nationality string `json:"nationality" binding:"max=100"`
	Occupation  string `json:"occupation" binding:"max=200"`
	Notes       string `json:"notes" binding:"max=2000"`
}

// UpdateTenantRequest is the request body for editing a tenant
type UpdateTenantRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	IDNumber    *string `json:"id_number" binding:"omitempty,max=50"`
	IDType      *string `json:"id_type" binding:"omitempty,max=50"`
	Nationality *string `json:"nationality" binding:"omitempty,max=100"`
	Occupation  *string `json:"occupation" binding:"omitempty,max=200"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
}

// Create registers a new tenant
func (h *TenantHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), appportfolio.CreateTenantRequest{
		OwnerID:     ownerID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		IDNumber:    req.IDNumber,
		IDType:      req.IDType,
		Nationality: req.Nationality,
		Occupation:  req.Occupation,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tenant)
}

// Get returns one tenant
func (h *TenantHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tenantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), ownerID, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// List returns the owner's tenants, searchable by name, phone or email
func (h *TenantHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := parseFilter(c)
	tenants, err := h.tenantService.ListTenants(c.Request.Context(), ownerID, filter.Search, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenants)
}

// Update edits a tenant
func (h *TenantHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tenantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), appportfolio.UpdateTenantRequest{
		OwnerID:     ownerID,
		TenantID:    tenantID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		IDNumber:    req.IDNumber,
		IDType:      req.IDType,
		Nationality: req.Nationality,
		Occupation:  req.Occupation,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// Deactivate retires a tenant record
func (h *TenantHandler) Deactivate(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tenantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.tenantService.DeactivateTenant(c.Request.Context(), ownerID, tenantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
