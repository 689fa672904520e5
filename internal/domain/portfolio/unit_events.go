package portfolio

import (
	"github.com/aqari/backend/internal/domain/shared"
)

// Event types for the portfolio domain
const (
	EventTypeUnitOccupancyChanged = "unit.occupancy_changed"
)

// UnitOccupancyChangedEvent is emitted when a unit's occupancy status flips
type UnitOccupancyChangedEvent struct {
	shared.BaseDomainEvent
	PropertyID     string     `json:"property_id"`
	UnitNumber     string     `json:"unit_number"`
	PreviousStatus UnitStatus `json:"previous_status"`
	NewStatus      UnitStatus `json:"new_status"`
}

// NewUnitOccupancyChangedEvent creates a new occupancy change event
func NewUnitOccupancyChangedEvent(u *Unit, previous UnitStatus) *UnitOccupancyChangedEvent {
	return &UnitOccupancyChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitOccupancyChanged, "Unit", u.ID, u.OwnerID),
		PropertyID:      u.PropertyID.String(),
		UnitNumber:      u.UnitNumber,
		PreviousStatus:  previous,
		NewStatus:       u.Status,
	}
}
