package portfolio

import (
	"context"

	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PropertyRepository defines the persistence interface for properties
type PropertyRepository interface {
	shared.OwnedRepository[*Property]
	FindByCity(ctx context.Context, ownerID uuid.UUID, city string) ([]*Property, error)
}

// UnitRepository defines the persistence interface for units
type UnitRepository interface {
	shared.OwnedRepository[*Unit]
	// FindByIDForUpdate loads the unit under a row lock so that concurrent
	// lease transitions against the same unit serialize. Must run inside a
	// transaction.
	FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*Unit, error)
	FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*Unit, error)
	FindByStatus(ctx context.Context, ownerID uuid.UUID, status UnitStatus, filter shared.Filter) ([]*Unit, error)
	CountByStatus(ctx context.Context, ownerID uuid.UUID, status UnitStatus) (int64, error)
	Count(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// TenantRepository defines the persistence interface for tenants
type TenantRepository interface {
	shared.OwnedRepository[*Tenant]
	SearchByName(ctx context.Context, ownerID uuid.UUID, query string, filter shared.Filter) ([]*Tenant, error)
	Count(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
