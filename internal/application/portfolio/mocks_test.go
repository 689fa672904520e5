package portfolio

import (
	"context"
	"time"

	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ==========================================
// Mock Property Repository
// ==========================================

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*portfolio.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *portfolio.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Property, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*portfolio.Property, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]*portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByCity(ctx context.Context, ownerID uuid.UUID, city string) ([]*portfolio.Property, error) {
	args := m.Called(ctx, ownerID, city)
	return args.Get(0).([]*portfolio.Property), args.Error(1)
}

// ==========================================
// Mock Unit Repository
// ==========================================

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*portfolio.Unit, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *portfolio.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUnitRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, propertyID)
	return args.Get(0).([]*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status portfolio.UnitStatus, filter shared.Filter) ([]*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, status, filter)
	return args.Get(0).([]*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID, status portfolio.UnitStatus) (int64, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) Count(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// ==========================================
// Mock Tenant Repository
// ==========================================

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*portfolio.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*portfolio.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *portfolio.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Tenant, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*portfolio.Tenant, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]*portfolio.Tenant), args.Error(1)
}

func (m *MockTenantRepository) SearchByName(ctx context.Context, ownerID uuid.UUID, query string, filter shared.Filter) ([]*portfolio.Tenant, error) {
	args := m.Called(ctx, ownerID, query, filter)
	return args.Get(0).([]*portfolio.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Count(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// ==========================================
// Mock Lease Repository
// ==========================================

type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*leasing.Lease, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Save(ctx context.Context, lease *leasing.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveByUnit(ctx context.Context, ownerID, unitID uuid.UUID, excludeLeaseID *uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, unitID, excludeLeaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByUnit(ctx context.Context, ownerID, unitID uuid.UUID) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, unitID)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByTenant(ctx context.Context, ownerID, tenantID uuid.UUID) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, tenantID)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status leasing.LeaseStatus, filter shared.Filter) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, status, filter)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActivePastEndDate(ctx context.Context, today time.Time) ([]*leasing.Lease, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveWithPaymentDay(ctx context.Context, day int) ([]*leasing.Lease, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindExpiringBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID, status leasing.LeaseStatus) (int64, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int64), args.Error(1)
}
