package portfolio

import (
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PropertyType classifies a property
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "RESIDENTIAL"
	PropertyTypeCommercial  PropertyType = "COMMERCIAL"
	PropertyTypeMixed       PropertyType = "MIXED"
)

// IsValid checks if the property type is valid
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeMixed:
		return true
	}
	return false
}

// Property represents a building or compound that contains rentable units
type Property struct {
	shared.OwnedAggregateRoot
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	City        string       `json:"city"`
	Type        PropertyType `json:"type"`
	TotalUnits  int          `json:"total_units"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"is_active"`
}

// NewProperty creates a new property
func NewProperty(ownerID uuid.UUID, name, address, city string, propertyType PropertyType) (*Property, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if address == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Property address cannot be empty")
	}
	if city == "" {
		return nil, shared.NewDomainError("INVALID_CITY", "Property city cannot be empty")
	}
	if propertyType == "" {
		propertyType = PropertyTypeResidential
	}
	if !propertyType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type is not valid")
	}

	return &Property{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Address:            address,
		City:               city,
		Type:               propertyType,
		IsActive:           true,
	}, nil
}

// Deactivate soft-deletes the property
func (p *Property) Deactivate() {
	p.IsActive = false
	p.IncrementVersion()
}
