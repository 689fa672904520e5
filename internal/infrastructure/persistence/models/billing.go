package models

import (
	"time"

	"github.com/aqari/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for invoices.
// The unique index on (lease_id, billing_period) is what makes the recurring
// invoice sweep idempotent under concurrent runs.
type InvoiceModel struct {
	OwnedAggregateModel
	LeaseID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_lease_period"`
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	BillingPeriod string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_invoices_lease_period"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DueDate       time.Time       `gorm:"not null;index"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	PaidDate      *time.Time      `gorm:""`
	Description   string          `gorm:"type:text"`
	Notes         string          `gorm:"type:text"`
}

// TableName specifies the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	invoice := &billing.Invoice{
		LeaseID:       m.LeaseID,
		InvoiceNumber: m.InvoiceNumber,
		BillingPeriod: m.BillingPeriod,
		Amount:        m.Amount,
		PaidAmount:    m.PaidAmount,
		DueDate:       m.DueDate,
		Status:        billing.InvoiceStatus(m.Status),
		PaidDate:      m.PaidDate,
		Description:   m.Description,
		Notes:         m.Notes,
	}
	m.PopulateOwnedAggregateRoot(&invoice.OwnedAggregateRoot)
	return invoice
}

// InvoiceModelFromDomain converts a domain Invoice to the model
func InvoiceModelFromDomain(i *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		LeaseID:       i.LeaseID,
		InvoiceNumber: i.InvoiceNumber,
		BillingPeriod: i.BillingPeriod,
		Amount:        i.Amount,
		PaidAmount:    i.PaidAmount,
		DueDate:       i.DueDate,
		Status:        string(i.Status),
		PaidDate:      i.PaidDate,
		Description:   i.Description,
		Notes:         i.Notes,
	}
	m.FromDomainOwnedAggregateRoot(i.OwnedAggregateRoot)
	return m
}

// PaymentModel is the persistence model for payments
type PaymentModel struct {
	OwnedAggregateModel
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentDate     time.Time       `gorm:"not null;index"`
	Method          string          `gorm:"type:varchar(20);not null"`
	ReferenceNumber string          `gorm:"type:varchar(100)"`
	ReceivedBy      *uuid.UUID      `gorm:"type:uuid"`
	Notes           string          `gorm:"type:text"`
}

// TableName specifies the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	payment := &billing.Payment{
		InvoiceID:       m.InvoiceID,
		Amount:          m.Amount,
		PaymentDate:     m.PaymentDate,
		Method:          billing.PaymentMethod(m.Method),
		ReferenceNumber: m.ReferenceNumber,
		ReceivedBy:      m.ReceivedBy,
		Notes:           m.Notes,
	}
	m.PopulateOwnedAggregateRoot(&payment.OwnedAggregateRoot)
	return payment
}

// PaymentModelFromDomain converts a domain Payment to the model
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		Method:          string(p.Method),
		ReferenceNumber: p.ReferenceNumber,
		ReceivedBy:      p.ReceivedBy,
		Notes:           p.Notes,
	}
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	return m
}
