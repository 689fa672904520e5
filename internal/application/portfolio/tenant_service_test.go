package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTenantService() (*TenantService, *MockTenantRepository, *MockLeaseRepository) {
	tenantRepo := new(MockTenantRepository)
	leaseRepo := new(MockLeaseRepository)
	return NewTenantService(tenantRepo, leaseRepo), tenantRepo, leaseRepo
}

func newTestTenant(t *testing.T) *portfolio.Tenant {
	t.Helper()
	tenant, err := portfolio.NewTenant(testOwnerID, "Ahmed Samir", "+201001234567")
	require.NoError(t, err)
	return tenant
}

func TestTenantService_CreateTenant(t *testing.T) {
	svc, tenantRepo, _ := newTenantService()

	tenantRepo.On("Save", mock.Anything, mock.AnythingOfType("*portfolio.Tenant")).Return(nil)

	tenant, err := svc.CreateTenant(context.Background(), CreateTenantRequest{
		OwnerID: testOwnerID,
		Name:    "Ahmed Samir",
		Phone:   "+201001234567",
		Email:   "ahmed@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "ahmed@example.com", tenant.Email)
	assert.True(t, tenant.IsActive)
}

func TestTenantService_CreateTenant_MissingPhone(t *testing.T) {
	svc, _, _ := newTenantService()

	_, err := svc.CreateTenant(context.Background(), CreateTenantRequest{
		OwnerID: testOwnerID,
		Name:    "Ahmed Samir",
	})
	require.Error(t, err)
}

func TestTenantService_ListTenants_Search(t *testing.T) {
	svc, tenantRepo, _ := newTenantService()

	filter := shared.DefaultFilter()
	expected := []*portfolio.Tenant{newTestTenant(t)}
	tenantRepo.On("SearchByName", mock.Anything, testOwnerID, "ahmed", filter).Return(expected, nil)

	tenants, err := svc.ListTenants(context.Background(), testOwnerID, "ahmed", filter)
	require.NoError(t, err)
	assert.Len(t, tenants, 1)
	tenantRepo.AssertNotCalled(t, "FindAllForOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestTenantService_DeactivateTenant(t *testing.T) {
	svc, tenantRepo, leaseRepo := newTenantService()

	tenant := newTestTenant(t)
	tenantRepo.On("FindByIDForOwner", mock.Anything, testOwnerID, tenant.ID).Return(tenant, nil)
	leaseRepo.On("FindByTenant", mock.Anything, testOwnerID, tenant.ID).Return([]*leasing.Lease{}, nil)
	tenantRepo.On("Save", mock.Anything, tenant).Return(nil)

	err := svc.DeactivateTenant(context.Background(), testOwnerID, tenant.ID)
	require.NoError(t, err)
	assert.False(t, tenant.IsActive)
}

func TestTenantService_DeactivateTenant_ActiveLease(t *testing.T) {
	svc, tenantRepo, leaseRepo := newTenantService()

	tenant := newTestTenant(t)
	lease, err := leasing.NewLease(
		testOwnerID, uuid.New(), tenant.ID,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		valueobject.NewMoneyEGPFromFloat(5000),
		valueobject.NewMoneyEGPFromFloat(10000),
		leasing.PaymentFrequencyMonthly, 5,
	)
	require.NoError(t, err)
	require.NoError(t, lease.Activate())

	tenantRepo.On("FindByIDForOwner", mock.Anything, testOwnerID, tenant.ID).Return(tenant, nil)
	leaseRepo.On("FindByTenant", mock.Anything, testOwnerID, tenant.ID).Return([]*leasing.Lease{lease}, nil)

	err = svc.DeactivateTenant(context.Background(), testOwnerID, tenant.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.True(t, tenant.IsActive)
}
