package billing

import (
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
)

// Event types for the billing domain
const (
	EventTypeInvoiceIssued    = "invoice.issued"
	EventTypePaymentApplied   = "invoice.payment_applied"
	EventTypeInvoiceCancelled = "invoice.cancelled"
	EventTypeInvoiceOverdue   = "invoice.overdue"
)

// InvoiceIssuedEvent is emitted when a new invoice is created for a lease
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	LeaseID       string `json:"lease_id"`
	InvoiceNumber string `json:"invoice_number"`
	BillingPeriod string `json:"billing_period"`
	Amount        string `json:"amount"`
}

// NewInvoiceIssuedEvent creates a new invoice issued event
func NewInvoiceIssuedEvent(i *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, "Invoice", i.ID, i.OwnerID),
		LeaseID:         i.LeaseID.String(),
		InvoiceNumber:   i.InvoiceNumber,
		BillingPeriod:   i.BillingPeriod,
		Amount:          i.Amount.String(),
	}
}

// PaymentAppliedEvent is emitted when money is recorded against an invoice
type PaymentAppliedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string        `json:"invoice_number"`
	PaymentAmount string        `json:"payment_amount"`
	PaidAmount    string        `json:"paid_amount"`
	NewStatus     InvoiceStatus `json:"new_status"`
}

// NewPaymentAppliedEvent creates a new payment applied event
func NewPaymentAppliedEvent(i *Invoice, payment valueobject.Money) *PaymentAppliedEvent {
	return &PaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentApplied, "Invoice", i.ID, i.OwnerID),
		InvoiceNumber:   i.InvoiceNumber,
		PaymentAmount:   payment.Amount().String(),
		PaidAmount:      i.PaidAmount.String(),
		NewStatus:       i.Status,
	}
}

// InvoiceCancelledEvent is emitted when an unpaid invoice is voided
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
}

// NewInvoiceCancelledEvent creates a new invoice cancelled event
func NewInvoiceCancelledEvent(i *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, "Invoice", i.ID, i.OwnerID),
		InvoiceNumber:   i.InvoiceNumber,
	}
}

// InvoiceOverdueEvent is emitted when the nightly sweep flags an unpaid invoice
type InvoiceOverdueEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
	Remaining     string `json:"remaining"`
}

// NewInvoiceOverdueEvent creates a new invoice overdue event
func NewInvoiceOverdueEvent(i *Invoice) *InvoiceOverdueEvent {
	return &InvoiceOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceOverdue, "Invoice", i.ID, i.OwnerID),
		InvoiceNumber:   i.InvoiceNumber,
		Remaining:       i.RemainingAmount().String(),
	}
}
