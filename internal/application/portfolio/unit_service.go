package portfolio

import (
	"context"

	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitService handles unit CRUD. Occupancy status is owned by the lease
// lifecycle; the only status this service writes is MAINTENANCE.
type UnitService struct {
	unitRepo     portfolio.UnitRepository
	propertyRepo portfolio.PropertyRepository
	txManager    shared.TransactionManager
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo portfolio.UnitRepository, propertyRepo portfolio.PropertyRepository, txManager shared.TransactionManager) *UnitService {
	return &UnitService{unitRepo: unitRepo, propertyRepo: propertyRepo, txManager: txManager}
}

// CreateUnitRequest carries a new unit
type CreateUnitRequest struct {
	OwnerID     uuid.UUID
	PropertyID  uuid.UUID
	UnitNumber  string
	Floor       *int
	Bedrooms    *int
	Bathrooms   *int
	Area        decimal.Decimal
	MonthlyRent decimal.Decimal
	Description string
}

// CreateUnit registers a new vacant unit under a property
func (s *UnitService) CreateUnit(ctx context.Context, req CreateUnitRequest) (*portfolio.Unit, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "unit", "create")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPropertyID, req.PropertyID.String())

	property, err := s.propertyRepo.FindByIDForOwner(ctx, req.OwnerID, req.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if property == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	unit, err := portfolio.NewUnit(req.OwnerID, req.PropertyID, req.UnitNumber, valueobject.NewMoneyEGP(req.MonthlyRent))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	unit.Floor = req.Floor
	unit.Bedrooms = req.Bedrooms
	unit.Bathrooms = req.Bathrooms
	unit.Area = req.Area
	unit.Description = req.Description

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return unit, nil
}

// GetUnit returns one unit scoped to its owner
func (s *UnitService) GetUnit(ctx context.Context, ownerID, unitID uuid.UUID) (*portfolio.Unit, error) {
	unit, err := s.unitRepo.FindByIDForOwner(ctx, ownerID, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Unit not found")
	}
	return unit, nil
}

// ListUnits returns units for an owner, optionally filtered by status
func (s *UnitService) ListUnits(ctx context.Context, ownerID uuid.UUID, status *portfolio.UnitStatus, filter shared.Filter) ([]*portfolio.Unit, error) {
	if status != nil {
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unit status is not valid")
		}
		return s.unitRepo.FindByStatus(ctx, ownerID, *status, filter)
	}
	return s.unitRepo.FindAllForOwner(ctx, ownerID, filter)
}

// ListUnitsByProperty returns all units of one property
func (s *UnitService) ListUnitsByProperty(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*portfolio.Unit, error) {
	return s.unitRepo.FindByProperty(ctx, ownerID, propertyID)
}

// UpdateUnitRequest carries a unit edit. Nil fields are left alone.
// Status is deliberately absent; occupancy moves only through leases.
type UpdateUnitRequest struct {
	OwnerID     uuid.UUID
	UnitID      uuid.UUID
	UnitNumber  *string
	Floor       *int
	Bedrooms    *int
	Bathrooms   *int
	Area        *decimal.Decimal
	MonthlyRent *decimal.Decimal
	Description *string
}

// UpdateUnit edits a unit's descriptive fields and advertised rent
func (s *UnitService) UpdateUnit(ctx context.Context, req UpdateUnitRequest) (*portfolio.Unit, error) {
	unit, err := s.GetUnit(ctx, req.OwnerID, req.UnitID)
	if err != nil {
		return nil, err
	}

	if req.UnitNumber != nil {
		if *req.UnitNumber == "" {
			return nil, shared.NewDomainError("INVALID_UNIT_NUMBER", "Unit number cannot be empty")
		}
		unit.UnitNumber = *req.UnitNumber
	}
	if req.Floor != nil {
		unit.Floor = req.Floor
	}
	if req.Bedrooms != nil {
		unit.Bedrooms = req.Bedrooms
	}
	if req.Bathrooms != nil {
		unit.Bathrooms = req.Bathrooms
	}
	if req.Area != nil {
		unit.Area = *req.Area
	}
	if req.MonthlyRent != nil {
		rent := valueobject.NewMoneyEGP(*req.MonthlyRent)
		if rent.IsNegative() {
			return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
		}
		unit.MonthlyRent = rent.Amount()
	}
	if req.Description != nil {
		unit.Description = *req.Description
	}
	unit.IncrementVersion()

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// SetMaintenance moves a unit in or out of maintenance. Entering maintenance
// locks the unit row because the check races with lease activation.
func (s *UnitService) SetMaintenance(ctx context.Context, ownerID, unitID uuid.UUID, underMaintenance bool) (*portfolio.Unit, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "unit", "set_maintenance")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrUnitID, unitID.String())

	var unit *portfolio.Unit
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		unit, err = s.unitRepo.FindByIDForUpdate(ctx, ownerID, unitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return shared.NewDomainError("NOT_FOUND", "Unit not found")
		}

		if underMaintenance {
			if err := unit.MarkUnderMaintenance(); err != nil {
				return err
			}
		} else {
			if !unit.IsOccupied() {
				unit.MarkVacant()
			}
		}
		return s.unitRepo.Save(ctx, unit)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return unit, nil
}
