package handler

import (
	"github.com/gin-gonic/gin"

	appportfolio "github.com/aqari/backend/internal/application/portfolio"
	"github.com/aqari/backend/internal/domain/portfolio"
)

// PropertyHandler handles property endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *appportfolio.PropertyService
	unitService     *appportfolio.UnitService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *appportfolio.PropertyService, unitService *appportfolio.UnitService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		unitService:     unitService,
	}
}

// CreatePropertyRequest is the request body for registering a property
type CreatePropertyRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Address     string `json:"address" binding:"required,max=500"`
	City        string `json:"city" binding:"max=100"`
	Type        string `json:"type" binding:"required,oneof=RESIDENTIAL COMMERCIAL MIXED"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdatePropertyRequest is the request body for editing a property
type UpdatePropertyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	Type        *string `json:"type" binding:"omitempty,oneof=RESIDENTIAL COMMERCIAL MIXED"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// Create registers a new property
func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), appportfolio.CreatePropertyRequest{
		OwnerID:     ownerID,
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Type:        portfolio.PropertyType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, property)
}

// Get returns one property
func (h *PropertyHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	property, err := h.propertyService.GetProperty(c.Request.Context(), ownerID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, property)
}

// List returns the owner's properties
func (h *PropertyHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	properties, err := h.propertyService.ListProperties(c.Request.Context(), ownerID, parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, properties)
}

// ListUnits returns the units under a property
func (h *PropertyHandler) ListUnits(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	units, err := h.unitService.ListUnitsByProperty(c.Request.Context(), ownerID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, units)
}

// Update edits a property
func (h *PropertyHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := appportfolio.UpdatePropertyRequest{
		OwnerID:     ownerID,
		PropertyID:  propertyID,
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Description: req.Description,
	}
	if req.Type != nil {
		propertyType := portfolio.PropertyType(*req.Type)
		appReq.Type = &propertyType
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, property)
}

// Deactivate retires a property from the portfolio
func (h *PropertyHandler) Deactivate(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	if err := h.propertyService.DeactivateProperty(c.Request.Context(), ownerID, propertyID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
