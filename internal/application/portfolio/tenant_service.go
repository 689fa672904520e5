package portfolio

import (
	"context"

	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantService handles tenant CRUD
type TenantService struct {
	tenantRepo portfolio.TenantRepository
	leaseRepo  leasing.LeaseRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo portfolio.TenantRepository, leaseRepo leasing.LeaseRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo, leaseRepo: leaseRepo}
}

// CreateTenantRequest carries a new tenant
type CreateTenantRequest struct {
	OwnerID     uuid.UUID
	Name        string
	Phone       string
	Email       string
	IDNumber    string
	IDType      string
	Nationality string
	Occupation  string
	Notes       string
}

// CreateTenant registers a new tenant
func (s *TenantService) CreateTenant(ctx context.Context, req CreateTenantRequest) (*portfolio.Tenant, error) {
	tenant, err := portfolio.NewTenant(req.OwnerID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	tenant.Email = req.Email
	tenant.IDNumber = req.IDNumber
	tenant.IDType = req.IDType
	tenant.Nationality = req.Nationality
	tenant.Occupation = req.Occupation
	tenant.Notes = req.Notes

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// GetTenant returns one tenant scoped to its owner
func (s *TenantService) GetTenant(ctx context.Context, ownerID, tenantID uuid.UUID) (*portfolio.Tenant, error) {
	tenant, err := s.tenantRepo.FindByIDForOwner(ctx, ownerID, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}
	return tenant, nil
}

// ListTenants returns the owner's tenants, optionally searched by name
func (s *TenantService) ListTenants(ctx context.Context, ownerID uuid.UUID, search string, filter shared.Filter) ([]*portfolio.Tenant, error) {
	if search != "" {
		return s.tenantRepo.SearchByName(ctx, ownerID, search, filter)
	}
	return s.tenantRepo.FindAllForOwner(ctx, ownerID, filter)
}

// UpdateTenantRequest carries a tenant edit. Nil fields are left alone.
type UpdateTenantRequest struct {
	OwnerID     uuid.UUID
	TenantID    uuid.UUID
	Name        *string
	Phone       *string
	Email       *string
	IDNumber    *string
	IDType      *string
	Nationality *string
	Occupation  *string
	Notes       *string
}

// UpdateTenant edits a tenant
func (s *TenantService) UpdateTenant(ctx context.Context, req UpdateTenantRequest) (*portfolio.Tenant, error) {
	tenant, err := s.GetTenant(ctx, req.OwnerID, req.TenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
		}
		tenant.Name = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			return nil, shared.NewDomainError("INVALID_PHONE", "Tenant phone cannot be empty")
		}
		tenant.Phone = *req.Phone
	}
	if req.Email != nil {
		tenant.Email = *req.Email
	}
	if req.IDNumber != nil {
		tenant.IDNumber = *req.IDNumber
	}
	if req.IDType != nil {
		tenant.IDType = *req.IDType
	}
	if req.Nationality != nil {
		tenant.Nationality = *req.Nationality
	}
	if req.Occupation != nil {
		tenant.Occupation = *req.Occupation
	}
	if req.Notes != nil {
		tenant.Notes = *req.Notes
	}
	tenant.IncrementVersion()

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// DeactivateTenant soft-deletes a tenant. Refused while the tenant holds an
// active lease.
func (s *TenantService) DeactivateTenant(ctx context.Context, ownerID, tenantID uuid.UUID) error {
	tenant, err := s.GetTenant(ctx, ownerID, tenantID)
	if err != nil {
		return err
	}

	leases, err := s.leaseRepo.FindByTenant(ctx, ownerID, tenantID)
	if err != nil {
		return err
	}
	for _, lease := range leases {
		if lease.IsActive() {
			return shared.NewDomainError("INVALID_STATE", "Cannot deactivate a tenant with an active lease")
		}
	}

	tenant.Deactivate()
	return s.tenantRepo.Save(ctx, tenant)
}
