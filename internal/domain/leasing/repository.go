package leasing

import (
	"context"
	"time"

	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeaseRepository defines the persistence interface for leases
type LeaseRepository interface {
	shared.OwnedRepository[*Lease]
	// FindActiveByUnit returns the active lease for a unit, or nil when the
	// unit is free. excludeLeaseID skips one lease, used when re-validating a
	// status change against the lease's own row.
	FindActiveByUnit(ctx context.Context, ownerID, unitID uuid.UUID, excludeLeaseID *uuid.UUID) (*Lease, error)
	FindByUnit(ctx context.Context, ownerID, unitID uuid.UUID) ([]*Lease, error)
	FindByTenant(ctx context.Context, ownerID, tenantID uuid.UUID) ([]*Lease, error)
	FindByStatus(ctx context.Context, ownerID uuid.UUID, status LeaseStatus, filter shared.Filter) ([]*Lease, error)
	// FindActivePastEndDate returns active leases whose end date is before the
	// given day, across all owners. Used by the expiry sweep.
	FindActivePastEndDate(ctx context.Context, today time.Time) ([]*Lease, error)
	// FindActiveWithPaymentDay returns active leases whose payment day equals
	// the given day of month, across all owners. Used by invoice generation.
	FindActiveWithPaymentDay(ctx context.Context, day int) ([]*Lease, error)
	// FindExpiringBetween returns active leases ending inside [from, to)
	FindExpiringBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*Lease, error)
	CountByStatus(ctx context.Context, ownerID uuid.UUID, status LeaseStatus) (int64, error)
}
