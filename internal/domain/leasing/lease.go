package leasing

import (
	"time"

	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaseStatus represents the lifecycle state of a lease contract
type LeaseStatus string

const (
	LeaseStatusPending    LeaseStatus = "PENDING"
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusExpired    LeaseStatus = "EXPIRED"
	LeaseStatusTerminated LeaseStatus = "TERMINATED"
)

// IsValid checks if the status is a valid LeaseStatus
func (s LeaseStatus) IsValid() bool {
	switch s {
	case LeaseStatusPending, LeaseStatusActive, LeaseStatusExpired, LeaseStatusTerminated:
		return true
	}
	return false
}

// IsTerminal returns true if the lease can no longer occupy a unit
func (s LeaseStatus) IsTerminal() bool {
	return s == LeaseStatusExpired || s == LeaseStatusTerminated
}

// String returns the string representation of LeaseStatus
func (s LeaseStatus) String() string {
	return string(s)
}

// PaymentFrequency is how often rent falls due under a lease
type PaymentFrequency string

const (
	PaymentFrequencyMonthly    PaymentFrequency = "MONTHLY"
	PaymentFrequencyQuarterly  PaymentFrequency = "QUARTERLY"
	PaymentFrequencySemiAnnual PaymentFrequency = "SEMI_ANNUAL"
	PaymentFrequencyAnnual     PaymentFrequency = "ANNUAL"
)

// IsValid checks if the frequency is a valid PaymentFrequency
func (f PaymentFrequency) IsValid() bool {
	switch f {
	case PaymentFrequencyMonthly, PaymentFrequencyQuarterly, PaymentFrequencySemiAnnual, PaymentFrequencyAnnual:
		return true
	}
	return false
}

// Lease is a rental contract binding one tenant to one unit for a date range.
// At most one ACTIVE lease may exist per unit at any time; that invariant is
// enforced by the lease lifecycle service under a unit row lock, not here.
type Lease struct {
	shared.OwnedAggregateRoot
	UnitID           uuid.UUID        `json:"unit_id"`
	TenantID         uuid.UUID        `json:"tenant_id"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	MonthlyRent      decimal.Decimal  `json:"monthly_rent"`
	SecurityDeposit  decimal.Decimal  `json:"security_deposit"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency"`
	PaymentDay       int              `json:"payment_day"`
	Status           LeaseStatus      `json:"status"`
	Notes            string           `json:"notes,omitempty"`
}

// NewLease creates a lease in PENDING state. Activation happens through the
// lifecycle service so the unit occupancy flip and the first invoice ride in
// the same transaction.
func NewLease(
	ownerID, unitID, tenantID uuid.UUID,
	startDate, endDate time.Time,
	monthlyRent, securityDeposit valueobject.Money,
	frequency PaymentFrequency,
	paymentDay int,
) (*Lease, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_DATES", "Lease end date must be after start date")
	}
	if !monthlyRent.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent must be positive")
	}
	if securityDeposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Security deposit cannot be negative")
	}
	if frequency == "" {
		frequency = PaymentFrequencyMonthly
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREQUENCY", "Payment frequency is not valid")
	}
	if paymentDay < 1 || paymentDay > 28 {
		return nil, shared.NewDomainError("INVALID_PAYMENT_DAY", "Payment day must be between 1 and 28")
	}

	return &Lease{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		UnitID:             unitID,
		TenantID:           tenantID,
		StartDate:          startDate,
		EndDate:            endDate,
		MonthlyRent:        monthlyRent.Amount(),
		SecurityDeposit:    securityDeposit.Amount(),
		PaymentFrequency:   frequency,
		PaymentDay:         paymentDay,
		Status:             LeaseStatusPending,
	}, nil
}

// IsActive returns true if the lease currently occupies its unit
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// Activate moves the lease into ACTIVE state
func (l *Lease) Activate() error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate a terminated or expired lease")
	}
	if l.Status == LeaseStatusActive {
		return nil
	}
	l.Status = LeaseStatusActive
	l.IncrementVersion()
	l.AddDomainEvent(NewLeaseActivatedEvent(l))
	return nil
}

// Terminate ends the lease early regardless of its current state
func (l *Lease) Terminate() error {
	if l.Status == LeaseStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Lease is already terminated")
	}
	previous := l.Status
	l.Status = LeaseStatusTerminated
	l.IncrementVersion()
	l.AddDomainEvent(NewLeaseEndedEvent(l, previous))
	return nil
}

// Expire marks the lease as having run past its end date
func (l *Lease) Expire() error {
	if l.Status != LeaseStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only an active lease can expire")
	}
	previous := l.Status
	l.Status = LeaseStatusExpired
	l.IncrementVersion()
	l.AddDomainEvent(NewLeaseEndedEvent(l, previous))
	return nil
}

// Renew extends the lease to a new end date and reactivates it. An optional
// new rent takes effect for invoices issued after the renewal.
func (l *Lease) Renew(newEndDate time.Time, newRent *valueobject.Money) error {
	if !newEndDate.After(l.EndDate) {
		return shared.NewDomainError("INVALID_DATES", "Renewal end date must be after the current end date")
	}
	if newRent != nil {
		if !newRent.IsPositive() {
			return shared.NewDomainError("INVALID_RENT", "Monthly rent must be positive")
		}
		l.MonthlyRent = newRent.Amount()
	}
	l.EndDate = newEndDate
	l.Status = LeaseStatusActive
	l.IncrementVersion()
	l.AddDomainEvent(NewLeaseRenewedEvent(l))
	return nil
}

// IsPastEndDate reports whether the lease has outlived its contract period
func (l *Lease) IsPastEndDate(today time.Time) bool {
	return l.EndDate.Before(today)
}

// GetMonthlyRentMoney returns the contracted rent as Money
func (l *Lease) GetMonthlyRentMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(l.MonthlyRent)
}

// GetSecurityDepositMoney returns the deposit as Money
func (l *Lease) GetSecurityDepositMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(l.SecurityDeposit)
}

// FirstInvoiceDueDate is the due date of the invoice issued at activation:
// the payment day of the starting month, or the start date itself when the
// payment day has already passed in that month.
func (l *Lease) FirstInvoiceDueDate() time.Time {
	return valueobject.FirstDueDate(l.StartDate, l.PaymentDay)
}
