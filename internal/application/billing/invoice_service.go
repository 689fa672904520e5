package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/aqari/backend/internal/domain/billing"
	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceService handles invoice issuance, edits and payment application.
// Payment application locks the invoice row so concurrent payments against
// the same invoice serialize and the paid amount can never exceed the total.
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	leaseRepo   leasing.LeaseRepository
	txManager   shared.TransactionManager
	clock       shared.Clock
	publisher   shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	leaseRepo leasing.LeaseRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		leaseRepo:   leaseRepo,
		txManager:   txManager,
		clock:       clock,
	}
}

// SetEventPublisher attaches a publisher for invoice lifecycle events.
// Without one, events are staged on the aggregate and dropped.
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// publishEvents drains the aggregate's staged events after a successful
// commit. Publish failures are the publisher's problem, never the caller's.
func (s *InvoiceService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.publisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}

// CreateInvoiceRequest carries the data for a manually issued invoice
type CreateInvoiceRequest struct {
	OwnerID       uuid.UUID
	LeaseID       uuid.UUID
	BillingPeriod string
	Amount        decimal.Decimal
	DueDate       time.Time
	Description   string
	Notes         string
}

// CreateInvoice issues an invoice outside the monthly sweep, for example a
// catch-up charge. One invoice per lease and billing period.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*billing.Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrLeaseID, req.LeaseID.String(),
		telemetry.SpanAttrBillingPeriod, req.BillingPeriod,
	)

	period, err := valueobject.ParsePeriod(req.BillingPeriod)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Billing period must look like 2025-01")
	}

	var invoice *billing.Invoice
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		lease, err := s.leaseRepo.FindByIDForOwner(ctx, req.OwnerID, req.LeaseID)
		if err != nil {
			return err
		}
		if lease == nil {
			return shared.NewDomainError("NOT_FOUND", "Lease not found")
		}

		exists, err := s.invoiceRepo.ExistsForLeaseAndPeriod(ctx, req.LeaseID, period.String())
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "An invoice already covers this billing period")
		}

		invoice, err = billing.NewInvoice(req.OwnerID, req.LeaseID, period,
			valueobject.NewMoneyEGP(req.Amount), req.DueDate)
		if err != nil {
			return err
		}
		invoice.Description = req.Description
		invoice.Notes = req.Notes
		invoice.AddDomainEvent(billing.NewInvoiceIssuedEvent(invoice))
		return s.invoiceRepo.Save(ctx, invoice)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, invoice)
	return invoice, nil
}

// GetInvoice returns one invoice scoped to its owner
func (s *InvoiceService) GetInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (*billing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return invoice, nil
}

// ListInvoices returns invoices for an owner, optionally filtered by status
func (s *InvoiceService) ListInvoices(ctx context.Context, ownerID uuid.UUID, status *billing.InvoiceStatus, filter shared.Filter) ([]*billing.Invoice, error) {
	if status != nil {
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Invoice status is not valid")
		}
		return s.invoiceRepo.FindByStatus(ctx, ownerID, *status, filter)
	}
	return s.invoiceRepo.FindAllForOwner(ctx, ownerID, filter)
}

// ListByLease returns all invoices issued under a lease
func (s *InvoiceService) ListByLease(ctx context.Context, ownerID, leaseID uuid.UUID) ([]*billing.Invoice, error) {
	return s.invoiceRepo.FindByLease(ctx, ownerID, leaseID)
}

// UpdateInvoiceRequest carries an invoice edit. Nil fields are left alone.
type UpdateInvoiceRequest struct {
	OwnerID   uuid.UUID
	InvoiceID uuid.UUID
	Amount    *decimal.Decimal
	Status    *billing.InvoiceStatus
	DueDate   *time.Time
	Notes     *string
}

// UpdateInvoice edits an invoice. Changing the amount recomputes the status
// from the amounts; a status sent without an amount change is applied
// verbatim. Cancelled invoices cannot be edited.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, req UpdateInvoiceRequest) (*billing.Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceID, req.InvoiceID.String())

	var invoice *billing.Invoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.FindByIDForUpdate(ctx, req.OwnerID, req.InvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}

		if req.DueDate != nil {
			if invoice.Status == billing.InvoiceStatusCancelled {
				return shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled invoice")
			}
			invoice.DueDate = *req.DueDate
		}
		if req.Notes != nil {
			if invoice.Status == billing.InvoiceStatusCancelled {
				return shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled invoice")
			}
			invoice.Notes = *req.Notes
		}

		if req.Amount != nil {
			if err := invoice.UpdateAmount(valueobject.NewMoneyEGP(*req.Amount)); err != nil {
				return err
			}
		} else if req.Status != nil {
			if err := invoice.OverrideStatus(*req.Status); err != nil {
				return err
			}
		}

		return s.invoiceRepo.Save(ctx, invoice)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return invoice, nil
}

// CancelInvoice voids an invoice that has no payments recorded against it
func (s *InvoiceService) CancelInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (*billing.Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "cancel")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceID, invoiceID.String())

	var invoice *billing.Invoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.FindByIDForUpdate(ctx, ownerID, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}
		if err := invoice.Cancel(); err != nil {
			return err
		}
		return s.invoiceRepo.Save(ctx, invoice)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, invoice)
	return invoice, nil
}

// RecordPaymentRequest carries a payment against an invoice
type RecordPaymentRequest struct {
	OwnerID         uuid.UUID
	InvoiceID       uuid.UUID
	Amount          decimal.Decimal
	PaymentDate     time.Time
	Method          billing.PaymentMethod
	ReferenceNumber string
	Notes           string
	ReceivedBy      *uuid.UUID
}

// RecordPayment applies money to an invoice and stores the payment record in
// the same transaction. The invoice row lock makes concurrent payments
// against one invoice serialize, so the sum of payments never exceeds the
// invoice amount.
func (s *InvoiceService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*billing.Payment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "record_payment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, req.InvoiceID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = s.clock.Today()
	}

	var payment *billing.Payment
	var invoice *billing.Invoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.FindByIDForUpdate(ctx, req.OwnerID, req.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to lock invoice: %w", err)
		}
		if invoice == nil {
			return shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}

		amount := valueobject.NewMoneyEGP(req.Amount)
		if err := invoice.ApplyPayment(amount, paymentDate); err != nil {
			return err
		}

		payment, err = billing.NewPayment(req.OwnerID, invoice.ID, amount, paymentDate, req.Method)
		if err != nil {
			return err
		}
		payment.ReferenceNumber = req.ReferenceNumber
		payment.Notes = req.Notes
		payment.ReceivedBy = req.ReceivedBy

		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		return s.invoiceRepo.Save(ctx, invoice)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, invoice)
	return payment, nil
}

// ListPayments returns the payments recorded against an invoice
func (s *InvoiceService) ListPayments(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]*billing.Payment, error) {
	return s.paymentRepo.FindByInvoice(ctx, ownerID, invoiceID)
}
