package portfolio

import (
	"testing"

	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnit(t *testing.T) {
	ownerID := uuid.New()
	propertyID := uuid.New()
	rent := valueobject.NewMoneyEGPFromFloat(5000)

	tests := []struct {
		name       string
		propertyID uuid.UUID
		unitNumber string
		rent       valueobject.Money
		wantErr    bool
	}{
		{
			name:       "valid unit",
			propertyID: propertyID,
			unitNumber: "A-101",
			rent:       rent,
			wantErr:    false,
		},
		{
			name:       "missing property",
			propertyID: uuid.Nil,
			unitNumber: "A-101",
			rent:       rent,
			wantErr:    true,
		},
		{
			name:       "empty unit number",
			propertyID: propertyID,
			unitNumber: "",
			rent:       rent,
			wantErr:    true,
		},
		{
			name:       "negative rent",
			propertyID: propertyID,
			unitNumber: "A-101",
			rent:       valueobject.NewMoneyEGPFromFloat(-1),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := NewUnit(ownerID, tt.propertyID, tt.unitNumber, tt.rent)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, UnitStatusVacant, unit.Status)
			assert.Equal(t, ownerID, unit.OwnerID)
			assert.True(t, unit.IsActive)
			assert.True(t, unit.IsVacant())
		})
	}
}

func TestUnit_OccupancyTransitions(t *testing.T) {
	unit, err := NewUnit(uuid.New(), uuid.New(), "B-202", valueobject.NewMoneyEGPFromFloat(7500))
	require.NoError(t, err)

	unit.MarkOccupied()
	assert.True(t, unit.IsOccupied())
	assert.Len(t, unit.GetDomainEvents(), 1)

	// idempotent, no second event
	unit.MarkOccupied()
	assert.Len(t, unit.GetDomainEvents(), 1)

	unit.MarkVacant()
	assert.True(t, unit.IsVacant())
	assert.Len(t, unit.GetDomainEvents(), 2)

	unit.MarkVacant()
	assert.Len(t, unit.GetDomainEvents(), 2)
}

func TestUnit_MarkUnderMaintenance(t *testing.T) {
	unit, err := NewUnit(uuid.New(), uuid.New(), "C-303", valueobject.NewMoneyEGPFromFloat(6000))
	require.NoError(t, err)

	require.NoError(t, unit.MarkUnderMaintenance())
	assert.Equal(t, UnitStatusMaintenance, unit.Status)

	unit.MarkOccupied()
	err = unit.MarkUnderMaintenance()
	assert.Error(t, err)
	assert.Equal(t, UnitStatusOccupied, unit.Status)
}

func TestUnitStatus_IsValid(t *testing.T) {
	assert.True(t, UnitStatusVacant.IsValid())
	assert.True(t, UnitStatusOccupied.IsValid())
	assert.True(t, UnitStatusMaintenance.IsValid())
	assert.False(t, UnitStatus("DEMOLISHED").IsValid())
}

func TestNewProperty(t *testing.T) {
	ownerID := uuid.New()

	p, err := NewProperty(ownerID, "Nile Towers", "12 Corniche St", "Cairo", PropertyTypeResidential)
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, PropertyTypeResidential, p.Type)

	// defaults to residential when the type is omitted
	p, err = NewProperty(ownerID, "Nile Towers", "12 Corniche St", "Cairo", "")
	require.NoError(t, err)
	assert.Equal(t, PropertyTypeResidential, p.Type)

	_, err = NewProperty(ownerID, "", "12 Corniche St", "Cairo", PropertyTypeResidential)
	assert.Error(t, err)

	_, err = NewProperty(ownerID, "Nile Towers", "12 Corniche St", "Cairo", PropertyType("CASTLE"))
	assert.Error(t, err)
}

func TestNewTenant(t *testing.T) {
	tenant, err := NewTenant(uuid.New(), "Ahmed Hassan", "+201001234567")
	require.NoError(t, err)
	assert.True(t, tenant.IsActive)

	_, err = NewTenant(uuid.New(), "", "+201001234567")
	assert.Error(t, err)

	_, err = NewTenant(uuid.New(), "Ahmed Hassan", "")
	assert.Error(t, err)
}
