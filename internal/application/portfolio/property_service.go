package portfolio

import (
	"context"

	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// PropertyService handles property CRUD
type PropertyService struct {
	propertyRepo portfolio.PropertyRepository
	unitRepo     portfolio.UnitRepository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo portfolio.PropertyRepository, unitRepo portfolio.UnitRepository) *PropertyService {
	return &PropertyService{propertyRepo: propertyRepo, unitRepo: unitRepo}
}

// CreatePropertyRequest carries a new property
type CreatePropertyRequest struct {
	OwnerID     uuid.UUID
	Name        string
	Address     string
	City        string
	Type        portfolio.PropertyType
	Description string
}

// CreateProperty registers a new property
func (s *PropertyService) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*portfolio.Property, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "property", "create")
	defer span.End()

	property, err := portfolio.NewProperty(req.OwnerID, req.Name, req.Address, req.City, req.Type)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	property.Description = req.Description

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return property, nil
}

// GetProperty returns one property scoped to its owner
func (s *PropertyService) GetProperty(ctx context.Context, ownerID, propertyID uuid.UUID) (*portfolio.Property, error) {
	property, err := s.propertyRepo.FindByIDForOwner(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}
	return property, nil
}

// ListProperties returns the owner's properties
func (s *PropertyService) ListProperties(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*portfolio.Property, error) {
	return s.propertyRepo.FindAllForOwner(ctx, ownerID, filter)
}

// UpdatePropertyRequest carries a property edit. Nil fields are left alone.
type UpdatePropertyRequest struct {
	OwnerID     uuid.UUID
	PropertyID  uuid.UUID
	Name        *string
	Address     *string
	City        *string
	Type        *portfolio.PropertyType
	Description *string
}

// UpdateProperty edits a property
func (s *PropertyService) UpdateProperty(ctx context.Context, req UpdatePropertyRequest) (*portfolio.Property, error) {
	property, err := s.GetProperty(ctx, req.OwnerID, req.PropertyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
		}
		property.Name = *req.Name
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type is not valid")
		}
		property.Type = *req.Type
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	property.IncrementVersion()

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// DeactivateProperty soft-deletes a property. Refused while any of its units
// is occupied.
func (s *PropertyService) DeactivateProperty(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	property, err := s.GetProperty(ctx, ownerID, propertyID)
	if err != nil {
		return err
	}

	units, err := s.unitRepo.FindByProperty(ctx, ownerID, propertyID)
	if err != nil {
		return err
	}
	for _, unit := range units {
		if unit.IsOccupied() {
			return shared.NewDomainError("INVALID_STATE", "Cannot deactivate a property with occupied units")
		}
	}

	property.Deactivate()
	return s.propertyRepo.Save(ctx, property)
}
