package billing

import (
	"context"
	"fmt"

	"github.com/aqari/backend/internal/domain/billing"
	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SweepService runs the recurring billing jobs: monthly invoice generation,
// overdue flagging and lease expiry. Each record is processed in its own
// transaction, so one bad row never blocks the rest of the sweep, and every
// sweep is idempotent and safe to rerun after a crash.
type SweepService struct {
	leaseRepo   leasing.LeaseRepository
	invoiceRepo billing.InvoiceRepository
	unitRepo    portfolio.UnitRepository
	txManager   shared.TransactionManager
	clock       shared.Clock
	logger      *zap.Logger
	publisher   shared.EventPublisher
}

// NewSweepService creates a new SweepService
func NewSweepService(
	leaseRepo leasing.LeaseRepository,
	invoiceRepo billing.InvoiceRepository,
	unitRepo portfolio.UnitRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
	logger *zap.Logger,
) *SweepService {
	return &SweepService{
		leaseRepo:   leaseRepo,
		invoiceRepo: invoiceRepo,
		unitRepo:    unitRepo,
		txManager:   txManager,
		clock:       clock,
		logger:      logger,
	}
}

// SetEventPublisher attaches a publisher for events raised during sweeps
func (s *SweepService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

func (s *SweepService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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

// SweepResult summarizes one sweep run
type SweepResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// GenerateMonthlyInvoices issues a rent invoice for every active lease whose
// payment day is today and that has no invoice for the current billing
// period yet. The unique (lease, billing period) index catches the race
// between two overlapping runs, so the duplicate check is a fast path, not
// the guarantee.
func (s *SweepService) GenerateMonthlyInvoices(ctx context.Context) (SweepResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "billing_sweep", "generate_invoices")
	defer span.End()

	today := s.clock.Today()
	period := valueobject.PeriodOf(today)
	var result SweepResult

	leases, err := s.leaseRepo.FindActiveWithPaymentDay(ctx, today.Day())
	if err != nil {
		telemetry.RecordError(span, err)
		return result, fmt.Errorf("failed to list leases due today: %w", err)
	}

	for _, lease := range leases {
		lease := lease
		var invoice *billing.Invoice
		err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
			exists, err := s.invoiceRepo.ExistsForLeaseAndPeriod(ctx, lease.ID, period.String())
			if err != nil {
				return err
			}
			if exists {
				result.Skipped++
				return nil
			}

			invoice, err = billing.NewInvoice(lease.OwnerID, lease.ID, period,
				lease.GetMonthlyRentMoney(), period.DueDateFor(lease.PaymentDay))
			if err != nil {
				return err
			}
			invoice.Description = fmt.Sprintf("Rent for %s", period.String())
			invoice.AddDomainEvent(billing.NewInvoiceIssuedEvent(invoice))
			if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
				return err
			}
			result.Processed++
			return nil
		})
		if err != nil {
			result.Failed++
			s.logger.Error("Invoice generation failed for lease",
				zap.String("lease_id", lease.ID.String()),
				zap.String("period", period.String()),
				zap.Error(err),
			)
			continue
		}
		if invoice != nil {
			s.publishEvents(ctx, invoice)
		}
	}

	s.logger.Info("Monthly invoice sweep finished",
		zap.String("period", period.String()),
		zap.Int("generated", result.Processed),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// MarkOverdueInvoices flips PENDING invoices past their due date to OVERDUE
func (s *SweepService) MarkOverdueInvoices(ctx context.Context) (SweepResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "billing_sweep", "mark_overdue")
	defer span.End()

	today := s.clock.Today()
	var result SweepResult

	invoices, err := s.invoiceRepo.FindPendingPastDue(ctx, today)
	if err != nil {
		telemetry.RecordError(span, err)
		return result, fmt.Errorf("failed to list past-due invoices: %w", err)
	}

	for _, invoice := range invoices {
		invoice := invoice
		err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := invoice.MarkOverdue(today); err != nil {
				return err
			}
			return s.invoiceRepo.Save(ctx, invoice)
		})
		if err != nil {
			result.Failed++
			s.logger.Error("Overdue flagging failed for invoice",
				zap.String("invoice_id", invoice.ID.String()),
				zap.Error(err),
			)
			continue
		}
		s.publishEvents(ctx, invoice)
		result.Processed++
	}

	if result.Processed > 0 || result.Failed > 0 {
		s.logger.Info("Overdue sweep finished",
			zap.Int("flagged", result.Processed),
			zap.Int("failed", result.Failed),
		)
	}
	return result, nil
}

// ExpireLeases moves active leases past their end date to EXPIRED and
// vacates their units when no other active lease covers them
func (s *SweepService) ExpireLeases(ctx context.Context) (SweepResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "billing_sweep", "expire_leases")
	defer span.End()

	today := s.clock.Today()
	var result SweepResult

	leases, err := s.leaseRepo.FindActivePastEndDate(ctx, today)
	if err != nil {
		telemetry.RecordError(span, err)
		return result, fmt.Errorf("failed to list expired leases: %w", err)
	}

	for _, lease := range leases {
		lease := lease
		err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
			unit, err := s.unitRepo.FindByIDForUpdate(ctx, lease.OwnerID, lease.UnitID)
			if err != nil {
				return err
			}
			if err := lease.Expire(); err != nil {
				return err
			}
			if err := s.leaseRepo.Save(ctx, lease); err != nil {
				return err
			}
			if unit == nil {
				return nil
			}
			other, err := s.leaseRepo.FindActiveByUnit(ctx, lease.OwnerID, lease.UnitID, &lease.ID)
			if err != nil {
				return err
			}
			if other == nil {
				unit.MarkVacant()
				return s.unitRepo.Save(ctx, unit)
			}
			return nil
		})
		if err != nil {
			result.Failed++
			s.logger.Error("Lease expiry failed",
				zap.String("lease_id", lease.ID.String()),
				zap.Error(err),
			)
			continue
		}
		s.publishEvents(ctx, lease)
		result.Processed++
	}

	if result.Processed > 0 || result.Failed > 0 {
		s.logger.Info("Lease expiry sweep finished",
			zap.Int("expired", result.Processed),
			zap.Int("failed", result.Failed),
		)
	}
	return result, nil
}
