package leasing

import (
	"time"

	"github.com/aqari/backend/internal/domain/shared"
)

// Event types for the leasing domain
const (
	EventTypeLeaseActivated = "lease.activated"
	EventTypeLeaseEnded     = "lease.ended"
	EventTypeLeaseRenewed   = "lease.renewed"
)

// LeaseActivatedEvent is emitted when a lease becomes the active contract for its unit
type LeaseActivatedEvent struct {
	shared.BaseDomainEvent
	UnitID   string    `json:"unit_id"`
	TenantID string    `json:"tenant_id"`
	EndDate  time.Time `json:"end_date"`
}

// NewLeaseActivatedEvent creates a new lease activated event
func NewLeaseActivatedEvent(l *Lease) *LeaseActivatedEvent {
	return &LeaseActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeaseActivated, "Lease", l.ID, l.OwnerID),
		UnitID:          l.UnitID.String(),
		TenantID:        l.TenantID.String(),
		EndDate:         l.EndDate,
	}
}

// LeaseEndedEvent is emitted when a lease terminates or expires
type LeaseEndedEvent struct {
	shared.BaseDomainEvent
	UnitID         string      `json:"unit_id"`
	PreviousStatus LeaseStatus `json:"previous_status"`
	NewStatus      LeaseStatus `json:"new_status"`
}

// NewLeaseEndedEvent creates a new lease ended event
func NewLeaseEndedEvent(l *Lease, previous LeaseStatus) *LeaseEndedEvent {
	return &LeaseEndedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeaseEnded, "Lease", l.ID, l.OwnerID),
		UnitID:          l.UnitID.String(),
		PreviousStatus:  previous,
		NewStatus:       l.Status,
	}
}

// LeaseRenewedEvent is emitted when a lease is extended to a new end date
type LeaseRenewedEvent struct {
	shared.BaseDomainEvent
	UnitID     string    `json:"unit_id"`
	NewEndDate time.Time `json:"new_end_date"`
}

// NewLeaseRenewedEvent creates a new lease renewed event
func NewLeaseRenewedEvent(l *Lease) *LeaseRenewedEvent {
	return &LeaseRenewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeaseRenewed, "Lease", l.ID, l.OwnerID),
		UnitID:          l.UnitID.String(),
		NewEndDate:      l.EndDate,
	}
}
