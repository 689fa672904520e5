package portfolio

import (
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitStatus represents the occupancy state of a unit
type UnitStatus string

const (
	UnitStatusVacant      UnitStatus = "VACANT"
	UnitStatusOccupied    UnitStatus = "OCCUPIED"
	UnitStatusMaintenance UnitStatus = "MAINTENANCE"
)

// IsValid checks if the status is a valid UnitStatus
func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitStatusVacant, UnitStatusOccupied, UnitStatusMaintenance:
		return true
	}
	return false
}

// String returns the string representation of UnitStatus
func (s UnitStatus) String() string {
	return string(s)
}

// Unit represents a single rentable unit inside a property.
// Its occupancy status is derived from its leases: OCCUPIED exactly when an
// active lease references it. Only the lease lifecycle service flips the
// status; HTTP handlers never write it directly.
type Unit struct {
	shared.OwnedAggregateRoot
	PropertyID  uuid.UUID       `json:"property_id"`
	UnitNumber  string          `json:"unit_number"`
	Floor       *int            `json:"floor,omitempty"`
	Bedrooms    *int            `json:"bedrooms,omitempty"`
	Bathrooms   *int            `json:"bathrooms,omitempty"`
	Area        decimal.Decimal `json:"area"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Status      UnitStatus      `json:"status"`
	Description string          `json:"description,omitempty"`
	IsActive    bool            `json:"is_active"`
}

// NewUnit creates a new vacant unit
func NewUnit(ownerID, propertyID uuid.UUID, unitNumber string, monthlyRent valueobject.Money) (*Unit, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if unitNumber == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_NUMBER", "Unit number cannot be empty")
	}
	if monthlyRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
	}

	return &Unit{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		PropertyID:         propertyID,
		UnitNumber:         unitNumber,
		MonthlyRent:        monthlyRent.Amount(),
		Status:             UnitStatusVacant,
		IsActive:           true,
	}, nil
}

// MarkOccupied records that an active lease now covers the unit
func (u *Unit) MarkOccupied() {
	if u.Status == UnitStatusOccupied {
		return
	}
	previous := u.Status
	u.Status = UnitStatusOccupied
	u.IncrementVersion()
	u.AddDomainEvent(NewUnitOccupancyChangedEvent(u, previous))
}

// MarkVacant records that no active lease covers the unit anymore.
// The caller (the lease lifecycle service) is responsible for verifying that
// no other active lease remains before vacating.
func (u *Unit) MarkVacant() {
	if u.Status == UnitStatusVacant {
		return
	}
	previous := u.Status
	u.Status = UnitStatusVacant
	u.IncrementVersion()
	u.AddDomainEvent(NewUnitOccupancyChangedEvent(u, previous))
}

// MarkUnderMaintenance takes the unit out of the rentable pool.
// Not allowed while an active lease occupies it.
func (u *Unit) MarkUnderMaintenance() error {
	if u.Status == UnitStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Cannot put an occupied unit under maintenance")
	}
	previous := u.Status
	u.Status = UnitStatusMaintenance
	u.IncrementVersion()
	u.AddDomainEvent(NewUnitOccupancyChangedEvent(u, previous))
	return nil
}

// IsOccupied returns true if the unit currently has an active lease
func (u *Unit) IsOccupied() bool {
	return u.Status == UnitStatusOccupied
}

// IsVacant returns true if the unit has no active lease
func (u *Unit) IsVacant() bool {
	return u.Status == UnitStatusVacant
}

// GetMonthlyRentMoney returns the advertised rent as Money
func (u *Unit) GetMonthlyRentMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(u.MonthlyRent)
}
