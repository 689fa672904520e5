package portfolio

import (
	"context"
	"testing"

	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUnitService() (*UnitService, *MockUnitRepository, *MockPropertyRepository) {
	unitRepo := new(MockUnitRepository)
	propertyRepo := new(MockPropertyRepository)
	svc := NewUnitService(unitRepo, propertyRepo, shared.NoopTransactionManager{})
	return svc, unitRepo, propertyRepo
}

func TestUnitService_CreateUnit(t *testing.T) {
	svc, unitRepo, propertyRepo := newUnitService()

	property := newTestProperty(t)
	propertyRepo.On("FindByIDForOwner", mock.Anything, testOwnerID, property.ID).Return(property, nil)
	unitRepo.On("Save", mock.Anything, mock.AnythingOfType("*portfolio.Unit")).Return(nil)

	floor := 3
	unit, err := svc.CreateUnit(context.Background(), CreateUnitRequest{
		OwnerID:     testOwnerID,
		PropertyID:  property.ID,
		UnitNumber:  "3A",
		Floor:       &floor,
		MonthlyRent: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	assert.Equal(t, portfolio.UnitStatusVacant, unit.Status)
	assert.Equal(t, 3, *unit.Floor)
	assert.True(t, unit.MonthlyRent.Equal(decimal.NewFromInt(5000)))
	unitRepo.AssertExpectations(t)
}

func TestUnitService_CreateUnit_PropertyNotFound(t *testing.T) {
	svc, unitRepo, propertyRepo := newUnitService()

	missing := uuid.New()
	propertyRepo.On("FindByIDForOwner", mock.Anything, testOwnerID, missing).Return(nil, nil)

	_, err := svc.CreateUnit(context.Background(), CreateUnitRequest{
		OwnerID:     testOwnerID,
		PropertyID:  missing,
		UnitNumber:  "3A",
		MonthlyRent: decimal.NewFromInt(5000),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	unitRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUnitService_UpdateUnit_Rent(t *testing.T) {
	svc, unitRepo, _ := newUnitService()

	unit := newTestUnit(t, uuid.New())
	unitRepo.On("FindByIDForOwner", mock.Anything, testOwnerID, unit.ID).Return(unit, nil)
	unitRepo.On("Save", mock.Anything, unit).Return(nil)

	rent := decimal.NewFromInt(6500)
	updated, err := svc.UpdateUnit(context.Background(), UpdateUnitRequest{
		OwnerID:     testOwnerID,
		UnitID:      unit.ID,
		MonthlyRent: &rent,
	})
	require.NoError(t, err)
	assert.True(t, updated.MonthlyRent.Equal(rent))
}

func TestUnitService_SetMaintenance(t *testing.T) {
	svc, unitRepo, _ := newUnitService()

	unit := newTestUnit(t, uuid.New())
	unitRepo.On("FindByIDForUpdate", mock.Anything, testOwnerID, unit.ID).Return(unit, nil)
	unitRepo.On("Save", mock.Anything, unit).Return(nil)

	updated, err := svc.SetMaintenance(context.Background(), testOwnerID, unit.ID, true)
	require.NoError(t, err)
	assert.Equal(t, portfolio.UnitStatusMaintenance, updated.Status)
}

func TestUnitService_SetMaintenance_OccupiedUnit(t *testing.T) {
	svc, unitRepo, _ := newUnitService()

	unit := newTestUnit(t, uuid.New())
	unit.MarkOccupied()
	unitRepo.On("FindByIDForUpdate", mock.Anything, testOwnerID, unit.ID).Return(unit, nil)

	_, err := svc.SetMaintenance(context.Background(), testOwnerID, unit.ID, true)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	unitRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUnitService_SetMaintenance_BackToVacant(t *testing.T) {
	svc, unitRepo, _ := newUnitService()

	unit := newTestUnit(t, uuid.New())
	require.NoError(t, unit.MarkUnderMaintenance())
	unitRepo.On("FindByIDForUpdate", mock.Anything, testOwnerID, unit.ID).Return(unit, nil)
	unitRepo.On("Save", mock.Anything, unit).Return(nil)

	updated, err := svc.SetMaintenance(context.Background(), testOwnerID, unit.ID, false)
	require.NoError(t, err)
	assert.Equal(t, portfolio.UnitStatusVacant, updated.Status)
}

func TestUnitService_ListUnits_InvalidStatus(t *testing.T) {
	svc, _, _ := newUnitService()

	bad := portfolio.UnitStatus("LOST")
	_, err := svc.ListUnits(context.Background(), testOwnerID, &bad, shared.DefaultFilter())
	require.Error(t, err)
}
