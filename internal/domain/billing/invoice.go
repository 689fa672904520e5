package billing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CanApplyPayment returns true if payments may still be recorded
func (s InvoiceStatus) CanApplyPayment() bool {
	return s != InvoiceStatusPaid && s != InvoiceStatusCancelled
}

// IsOutstanding returns true if the invoice still counts toward receivables
func (s InvoiceStatus) IsOutstanding() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPartial || s == InvoiceStatusOverdue
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// DeriveStatus computes the status an invoice should carry from its amounts
// and due date alone. CANCELLED is sticky and never derived; callers must not
// pass a cancelled invoice through here.
func DeriveStatus(amount, paid decimal.Decimal, dueDate, today time.Time) InvoiceStatus {
	if paid.GreaterThanOrEqual(amount) {
		return InvoiceStatusPaid
	}
	if paid.IsPositive() {
		return InvoiceStatusPartial
	}
	if dueDate.Before(today) {
		return InvoiceStatusOverdue
	}
	return InvoiceStatusPending
}

// Invoice is a dated demand for rent under a lease. PaidAmount only grows
// through ApplyPayment; a payment never pushes it past Amount, though an
// amount edit may later lower Amount below money already collected.
type Invoice struct {
	shared.OwnedAggregateRoot
	LeaseID       uuid.UUID       `json:"lease_id"`
	InvoiceNumber string          `json:"invoice_number"`
	BillingPeriod string          `json:"billing_period"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        InvoiceStatus   `json:"status"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
	Description   string          `json:"description,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// NewInvoice creates a pending invoice for a lease and billing period
func NewInvoice(ownerID, leaseID uuid.UUID, period valueobject.Period, amount valueobject.Money, dueDate time.Time) (*Invoice, error) {
	if leaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LEASE", "Lease ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}

	return &Invoice{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		LeaseID:            leaseID,
		InvoiceNumber:      GenerateInvoiceNumber(),
		BillingPeriod:      period.String(),
		Amount:             amount.Amount(),
		PaidAmount:         decimal.Zero,
		DueDate:            dueDate,
		Status:             InvoiceStatusPending,
	}, nil
}

// GenerateInvoiceNumber produces a candidate invoice number. Uniqueness is
// ultimately enforced by the database constraint; the repository retries once
// on collision.
func GenerateInvoiceNumber() string {
	return fmt.Sprintf("INV-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

// RemainingAmount is how much is still owed on the invoice
func (i *Invoice) RemainingAmount() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// IsPastDue reports whether the invoice is unpaid past its due date,
// regardless of whether the overdue sweep has reclassified it yet
func (i *Invoice) IsPastDue(today time.Time) bool {
	return i.Status.IsOutstanding() && i.DueDate.Before(today)
}

// DaysOverdue returns whole days elapsed since the due date, zero when the
// invoice is settled, cancelled or not yet due
func (i *Invoice) DaysOverdue(today time.Time) int {
	if !i.IsPastDue(today) {
		return 0
	}
	return int(today.Sub(i.DueDate).Hours() / 24)
}

// GetAmountMoney returns the invoice total as Money
func (i *Invoice) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(i.Amount)
}

// GetPaidAmountMoney returns the amount already collected as Money
func (i *Invoice) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(i.PaidAmount)
}

// ApplyPayment records a payment against the invoice. The payment must be
// positive and must not exceed the remaining amount.
func (i *Invoice) ApplyPayment(amount valueobject.Money, paidAt time.Time) error {
	if !i.Status.CanApplyPayment() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot record a payment on a %s invoice", i.Status))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(i.RemainingAmount()) {
		return shared.ErrOverpayment
	}

	i.PaidAmount = i.PaidAmount.Add(amount.Amount())
	i.Status = DeriveStatus(i.Amount, i.PaidAmount, i.DueDate, paidAt)
	if i.Status == InvoiceStatusPaid {
		t := paidAt
		i.PaidDate = &t
	}
	i.IncrementVersion()
	i.AddDomainEvent(NewPaymentAppliedEvent(i, amount))
	return nil
}

// UpdateAmount changes the invoice total and recomputes the status from the
// amounts alone. Lowering the total to or below what was already collected
// settles the invoice as PAID. Overdue detection is left to the nightly
// sweep, so a pending result here stays PENDING even past the due date.
func (i *Invoice) UpdateAmount(amount valueobject.Money) error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled invoice")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}

	i.Amount = amount.Amount()
	switch {
	case i.PaidAmount.GreaterThanOrEqual(i.Amount):
		i.Status = InvoiceStatusPaid
	case i.PaidAmount.IsPositive():
		i.Status = InvoiceStatusPartial
	default:
		i.Status = InvoiceStatusPending
	}
	i.IncrementVersion()
	return nil
}

// OverrideStatus sets the status verbatim. Used by the update endpoint when a
// caller corrects the status without touching the amount.
func (i *Invoice) OverrideStatus(status InvoiceStatus) error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled invoice")
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invoice status is not valid")
	}
	i.Status = status
	i.IncrementVersion()
	return nil
}

// Cancel voids the invoice. Refused once money has been collected against it.
func (i *Invoice) Cancel() error {
	if i.PaidAmount.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel an invoice that has recorded payments")
	}
	if i.Status == InvoiceStatusCancelled {
		return nil
	}
	i.Status = InvoiceStatusCancelled
	i.IncrementVersion()
	i.AddDomainEvent(NewInvoiceCancelledEvent(i))
	return nil
}

// MarkOverdue flips a pending invoice past its due date to OVERDUE
func (i *Invoice) MarkOverdue(today time.Time) error {
	if i.Status != InvoiceStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only a pending invoice can become overdue")
	}
	if !i.DueDate.Before(today) {
		return shared.NewDomainError("INVALID_STATE", "Invoice is not past its due date")
	}
	i.Status = InvoiceStatusOverdue
	i.IncrementVersion()
	i.AddDomainEvent(NewInvoiceOverdueEvent(i))
	return nil
}
