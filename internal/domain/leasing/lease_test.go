package leasing

import (
	"testing"
	"time"

	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLease(t *testing.T) *Lease {
	t.Helper()
	lease, err := NewLease(
		uuid.New(), uuid.New(), uuid.New(),
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local),
		valueobject.NewMoneyEGPFromFloat(5000),
		valueobject.NewMoneyEGPFromFloat(10000),
		PaymentFrequencyMonthly,
		5,
	)
	require.NoError(t, err)
	return lease
}

func TestNewLease(t *testing.T) {
	ownerID := uuid.New()
	unitID := uuid.New()
	tenantID := uuid.New()
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)
	rent := valueobject.NewMoneyEGPFromFloat(5000)
	deposit := valueobject.NewMoneyEGPFromFloat(10000)

	tests := []struct {
		name       string
		unitID     uuid.UUID
		tenantID   uuid.UUID
		start      time.Time
		end        time.Time
		rent       valueobject.Money
		deposit    valueobject.Money
		frequency  PaymentFrequency
		paymentDay int
		wantErr    bool
	}{
		{"valid lease", unitID, tenantID, start, end, rent, deposit, PaymentFrequencyMonthly, 5, false},
		{"missing unit", uuid.Nil, tenantID, start, end, rent, deposit, PaymentFrequencyMonthly, 5, true},
		{"missing tenant", unitID, uuid.Nil, start, end, rent, deposit, PaymentFrequencyMonthly, 5, true},
		{"end before start", unitID, tenantID, end, start, rent, deposit, PaymentFrequencyMonthly, 5, true},
		{"end equals start", unitID, tenantID, start, start, rent, deposit, PaymentFrequencyMonthly, 5, true},
		{"zero rent", unitID, tenantID, start, end, valueobject.ZeroEGP(), deposit, PaymentFrequencyMonthly, 5, true},
		{"negative deposit", unitID, tenantID, start, end, rent, valueobject.NewMoneyEGPFromFloat(-1), PaymentFrequencyMonthly, 5, true},
		{"payment day too low", unitID, tenantID, start, end, rent, deposit, PaymentFrequencyMonthly, 0, true},
		{"payment day too high", unitID, tenantID, start, end, rent, deposit, PaymentFrequencyMonthly, 29, true},
		{"bad frequency", unitID, tenantID, start, end, rent, deposit, PaymentFrequency("WEEKLY"), 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lease, err := NewLease(ownerID, tt.unitID, tt.tenantID, tt.start, tt.end, tt.rent, tt.deposit, tt.frequency, tt.paymentDay)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, LeaseStatusPending, lease.Status)
			assert.Equal(t, ownerID, lease.OwnerID)
		})
	}
}

func TestNewLease_DefaultFrequency(t *testing.T) {
	lease, err := NewLease(
		uuid.New(), uuid.New(), uuid.New(),
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local),
		valueobject.NewMoneyEGPFromFloat(5000),
		valueobject.ZeroEGP(),
		"",
		1,
	)
	require.NoError(t, err)
	assert.Equal(t, PaymentFrequencyMonthly, lease.PaymentFrequency)
}

func TestLease_Activate(t *testing.T) {
	lease := newTestLease(t)

	require.NoError(t, lease.Activate())
	assert.True(t, lease.IsActive())
	assert.Len(t, lease.GetDomainEvents(), 1)

	// idempotent
	require.NoError(t, lease.Activate())
	assert.Len(t, lease.GetDomainEvents(), 1)

	require.NoError(t, lease.Terminate())
	err := lease.Activate()
	assert.Error(t, err)
}

func TestLease_Terminate(t *testing.T) {
	lease := newTestLease(t)
	require.NoError(t, lease.Activate())

	require.NoError(t, lease.Terminate())
	assert.Equal(t, LeaseStatusTerminated, lease.Status)
	assert.True(t, lease.Status.IsTerminal())

	err := lease.Terminate()
	assert.Error(t, err)
}

func TestLease_TerminatePending(t *testing.T) {
	// a lease that never went active can still be terminated
	lease := newTestLease(t)
	require.NoError(t, lease.Terminate())
	assert.Equal(t, LeaseStatusTerminated, lease.Status)
}

func TestLease_Expire(t *testing.T) {
	lease := newTestLease(t)

	err := lease.Expire()
	assert.Error(t, err, "pending lease cannot expire")

	require.NoError(t, lease.Activate())
	require.NoError(t, lease.Expire())
	assert.Equal(t, LeaseStatusExpired, lease.Status)
}

func TestLease_Renew(t *testing.T) {
	lease := newTestLease(t)
	require.NoError(t, lease.Activate())
	require.NoError(t, lease.Expire())

	newEnd := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.Local)
	newRent := valueobject.NewMoneyEGPFromFloat(5500)

	require.NoError(t, lease.Renew(newEnd, &newRent))
	assert.Equal(t, LeaseStatusActive, lease.Status)
	assert.Equal(t, newEnd, lease.EndDate)
	assert.True(t, lease.GetMonthlyRentMoney().Equals(newRent))
}

func TestLease_Renew_KeepsRentWhenOmitted(t *testing.T) {
	lease := newTestLease(t)
	originalRent := lease.GetMonthlyRentMoney()

	newEnd := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.Local)
	require.NoError(t, lease.Renew(newEnd, nil))
	assert.True(t, lease.GetMonthlyRentMoney().Equals(originalRent))
}

func TestLease_Renew_RejectsEarlierEndDate(t *testing.T) {
	lease := newTestLease(t)

	err := lease.Renew(lease.EndDate, nil)
	assert.Error(t, err)

	err = lease.Renew(lease.EndDate.AddDate(0, -1, 0), nil)
	assert.Error(t, err)
}

func TestLease_IsPastEndDate(t *testing.T) {
	lease := newTestLease(t)

	assert.False(t, lease.IsPastEndDate(lease.EndDate))
	assert.True(t, lease.IsPastEndDate(lease.EndDate.AddDate(0, 0, 1)))
}

func TestLease_FirstInvoiceDueDate(t *testing.T) {
	lease := newTestLease(t)
	// start Jan 1, payment day 5
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.Local), lease.FirstInvoiceDueDate())
}
