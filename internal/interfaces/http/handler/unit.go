package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appportfolio "github.com/aqari/backend/internal/application/portfolio"
	"github.com/aqari/backend/internal/domain/portfolio"
)

// UnitHandler handles unit endpoints
type UnitHandler struct {
	BaseHandler
	unitService *appportfolio.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *appportfolio.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// CreateUnitRequest is the request body for registering a unit
type CreateUnitRequest struct {
	PropertyID  string  `json:"property_id" binding:"required,uuid"`
	UnitNumber  string  `json:"unit_number" binding:"required,min=1,max=50"`
	Floor       *int    `json:"floor"`
	Bedrooms    *int    `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms   *int    `json:"bathrooms" binding:"omitempty,min=0"`
	Area        float64 `json:"area" binding:"omitempty,gt=0"`
	MonthlyRent float64 `json:"monthly_rent" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=2000"`
}

// UpdateUnitRequest is the request body for editing a unit
type UpdateUnitRequest struct {
	UnitNumber  *string  `json:"unit_number" binding:"omitempty,min=1,max=50"`
	Floor       *int     `json:"floor"`
	Bedrooms    *int     `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms   *int     `json:"bathrooms" binding:"omitempty,min=0"`
	Area        *float64 `json:"area" binding:"omitempty,gt=0"`
	MonthlyRent *float64 `json:"monthly_rent" binding:"omitempty,gt=0"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
}

// SetMaintenanceRequest toggles a unit's maintenance state
type SetMaintenanceRequest struct {
	UnderMaintenance bool `json:"under_maintenance"`
}

// Create registers a new vacant unit
func (h *UnitHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	propertyID, err := parseUUID(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	unit, err := h.unitService.CreateUnit(c.Request.Context(), appportfolio.CreateUnitRequest{
		OwnerID:     ownerID,
		PropertyID:  propertyID,
		UnitNumber:  req.UnitNumber,
		Floor:       req.Floor,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Area:        decimal.NewFromFloat(req.Area),
		MonthlyRent: decimal.NewFromFloat(req.MonthlyRent),
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, unit)
}

// Get returns one unit
func (h *UnitHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	unitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	unit, err := h.unitService.GetUnit(c.Request.Context(), ownerID, unitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// List returns the owner's units, optionally filtered by status
func (h *UnitHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var status *portfolio.UnitStatus
	if s := c.Query("status"); s != "" {
		unitStatus := portfolio.UnitStatus(s)
		status = &unitStatus
	}

	units, err := h.unitService.ListUnits(c.Request.Context(), ownerID, status, parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, units)
}

// Update edits a unit's descriptive fields and advertised rent
func (h *UnitHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	unitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	var req UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := appportfolio.UpdateUnitRequest{
		OwnerID:     ownerID,
		UnitID:      unitID,
		UnitNumber:  req.UnitNumber,
		Floor:       req.Floor,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Description: req.Description,
	}
	if req.Area != nil {
		appReq.Area = toDecimalPtr(*req.Area)
	}
	if req.MonthlyRent != nil {
		appReq.MonthlyRent = toDecimalPtr(*req.MonthlyRent)
	}

	unit, err := h.unitService.UpdateUnit(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// SetMaintenance moves a unit in or out of maintenance
func (h *UnitHandler) SetMaintenance(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	unitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	var req SetMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unit, err := h.unitService.SetMaintenance(c.Request.Context(), ownerID, unitID, req.UnderMaintenance)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}
