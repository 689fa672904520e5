package billing

import (
	"time"

	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheck        PaymentMethod = "CHECK"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

// Payment is an immutable record of money received against an invoice.
// Corrections happen by voiding and re-recording, never by editing.
type Payment struct {
	shared.OwnedAggregateRoot
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	Method          PaymentMethod   `json:"method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	ReceivedBy      *uuid.UUID      `json:"received_by,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// NewPayment creates a payment record. The invoice-side bookkeeping happens
// through Invoice.ApplyPayment in the same transaction.
func NewPayment(ownerID, invoiceID uuid.UUID, amount valueobject.Money, paymentDate time.Time, method PaymentMethod) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if method == "" {
		method = PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not valid")
	}

	return &Payment{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		InvoiceID:          invoiceID,
		Amount:             amount.Amount(),
		PaymentDate:        paymentDate,
		Method:             method,
	}, nil
}

// GetAmountMoney returns the paid amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(p.Amount)
}
