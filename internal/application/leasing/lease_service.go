package leasing

import (
	"context"
	"fmt"
	"time"

	"github.com/aqari/backend/internal/domain/billing"
	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaseService drives the lease lifecycle. Every transition that touches
// occupancy runs inside one transaction holding a row lock on the unit, so
// two concurrent requests against the same unit serialize and the
// one-active-lease-per-unit invariant holds.
type LeaseService struct {
	leaseRepo   leasing.LeaseRepository
	unitRepo    portfolio.UnitRepository
	tenantRepo  portfolio.TenantRepository
	invoiceRepo billing.InvoiceRepository
	txManager   shared.TransactionManager
	clock       shared.Clock
	publisher   shared.EventPublisher
}

// NewLeaseService creates a new LeaseService
func NewLeaseService(
	leaseRepo leasing.LeaseRepository,
	unitRepo portfolio.UnitRepository,
	tenantRepo portfolio.TenantRepository,
	invoiceRepo billing.InvoiceRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
) *LeaseService {
	return &LeaseService{
		leaseRepo:   leaseRepo,
		unitRepo:    unitRepo,
		tenantRepo:  tenantRepo,
		invoiceRepo: invoiceRepo,
		txManager:   txManager,
		clock:       clock,
	}
}

// SetEventPublisher attaches a publisher for lease lifecycle events.
// Without one, events are staged on the aggregate and dropped.
func (s *LeaseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

func (s *LeaseService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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

// CreateLeaseRequest carries the data for a new lease contract
type CreateLeaseRequest struct {
	OwnerID          uuid.UUID
	UnitID           uuid.UUID
	TenantID         uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	MonthlyRent      decimal.Decimal
	SecurityDeposit  decimal.Decimal
	PaymentFrequency leasing.PaymentFrequency
	PaymentDay       int
	Notes            string
}

// CreateLease creates and immediately activates a lease, occupies the unit
// and issues the first rent invoice, all in one transaction.
func (s *LeaseService) CreateLease(ctx context.Context, req CreateLeaseRequest) (*leasing.Lease, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lease", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrUnitID, req.UnitID.String(),
		telemetry.SpanAttrTenantID, req.TenantID.String(),
	)

	var lease *leasing.Lease
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		unit, err := s.unitRepo.FindByIDForUpdate(ctx, req.OwnerID, req.UnitID)
		if err != nil {
			return fmt.Errorf("failed to lock unit: %w", err)
		}
		if unit == nil {
			return shared.NewDomainError("NOT_FOUND", "Unit not found")
		}
		if unit.IsOccupied() {
			return shared.ErrUnitOccupied
		}

		tenant, err := s.tenantRepo.FindByIDForOwner(ctx, req.OwnerID, req.TenantID)
		if err != nil {
			return fmt.Errorf("failed to get tenant: %w", err)
		}
		if tenant == nil {
			return shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}

		active, err := s.leaseRepo.FindActiveByUnit(ctx, req.OwnerID, req.UnitID, nil)
		if err != nil {
			return fmt.Errorf("failed to check active lease: %w", err)
		}
		if active != nil {
			return shared.ErrUnitOccupied
		}

		lease, err = leasing.NewLease(
			req.OwnerID, req.UnitID, req.TenantID,
			req.StartDate, req.EndDate,
			valueobject.NewMoneyEGP(req.MonthlyRent),
			valueobject.NewMoneyEGP(req.SecurityDeposit),
			req.PaymentFrequency, req.PaymentDay,
		)
		if err != nil {
			return err
		}
		lease.Notes = req.Notes
		if err := lease.Activate(); err != nil {
			return err
		}
		if err := s.leaseRepo.Save(ctx, lease); err != nil {
			return fmt.Errorf("failed to save lease: %w", err)
		}

		unit.MarkOccupied()
		if err := s.unitRepo.Save(ctx, unit); err != nil {
			return fmt.Errorf("failed to save unit: %w", err)
		}

		invoice, err := billing.NewInvoice(
			req.OwnerID, lease.ID,
			valueobject.PeriodOf(lease.StartDate),
			lease.GetMonthlyRentMoney(),
			lease.FirstInvoiceDueDate(),
		)
		if err != nil {
			return err
		}
		invoice.Description = fmt.Sprintf("Rent for %s", invoice.BillingPeriod)
		if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save first invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrLeaseID, lease.ID.String())
	s.publishEvents(ctx, lease)
	return lease, nil
}

// GetLease returns one lease scoped to its owner
func (s *LeaseService) GetLease(ctx context.Context, ownerID, leaseID uuid.UUID) (*leasing.Lease, error) {
	lease, err := s.leaseRepo.FindByIDForOwner(ctx, ownerID, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Lease not found")
	}
	return lease, nil
}

// ListLeases returns leases for an owner, optionally filtered by status
func (s *LeaseService) ListLeases(ctx context.Context, ownerID uuid.UUID, status *leasing.LeaseStatus, filter shared.Filter) ([]*leasing.Lease, error) {
	if status != nil {
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Lease status is not valid")
		}
		return s.leaseRepo.FindByStatus(ctx, ownerID, *status, filter)
	}
	return s.leaseRepo.FindAllForOwner(ctx, ownerID, filter)
}

// ChangeStatus moves a lease to an explicit status. Going ACTIVE re-validates
// the unit against other active leases; leaving ACTIVE vacates the unit only
// when no other active lease still covers it.
func (s *LeaseService) ChangeStatus(ctx context.Context, ownerID, leaseID uuid.UUID, newStatus leasing.LeaseStatus) (*leasing.Lease, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lease", "change_status")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrLeaseID, leaseID.String(),
		telemetry.SpanAttrStatus, string(newStatus),
	)

	if !newStatus.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Lease status is not valid")
	}

	var lease *leasing.Lease
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		lease, err = s.leaseRepo.FindByIDForOwner(ctx, ownerID, leaseID)
		if err != nil {
			return err
		}
		if lease == nil {
			return shared.NewDomainError("NOT_FOUND", "Lease not found")
		}
		if lease.Status == newStatus {
			return nil
		}

		unit, err := s.unitRepo.FindByIDForUpdate(ctx, ownerID, lease.UnitID)
		if err != nil {
			return fmt.Errorf("failed to lock unit: %w", err)
		}
		if unit == nil {
			return shared.NewDomainError("NOT_FOUND", "Unit not found")
		}

		switch newStatus {
		case leasing.LeaseStatusActive:
			other, err := s.leaseRepo.FindActiveByUnit(ctx, ownerID, lease.UnitID, &lease.ID)
			if err != nil {
				return err
			}
			if other != nil {
				return shared.ErrUnitOccupied
			}
			if err := lease.Activate(); err != nil {
				return err
			}
			unit.MarkOccupied()

		case leasing.LeaseStatusTerminated, leasing.LeaseStatusExpired:
			if newStatus == leasing.LeaseStatusTerminated {
				if err := lease.Terminate(); err != nil {
					return err
				}
			} else {
				if err := lease.Expire(); err != nil {
					return err
				}
			}
			other, err := s.leaseRepo.FindActiveByUnit(ctx, ownerID, lease.UnitID, &lease.ID)
			if err != nil {
				return err
			}
			if other == nil {
				unit.MarkVacant()
			}

		default:
			return shared.NewDomainError("INVALID_STATE", "Cannot move a lease back to PENDING")
		}

		if err := s.leaseRepo.Save(ctx, lease); err != nil {
			return err
		}
		return s.unitRepo.Save(ctx, unit)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, lease)
	return lease, nil
}

// Terminate ends a lease early and always vacates its unit
func (s *LeaseService) Terminate(ctx context.Context, ownerID, leaseID uuid.UUID) (*leasing.Lease, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lease", "terminate")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrLeaseID, leaseID.String())

	var lease *leasing.Lease
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		lease, err = s.leaseRepo.FindByIDForOwner(ctx, ownerID, leaseID)
		if err != nil {
			return err
		}
		if lease == nil {
			return shared.NewDomainError("NOT_FOUND", "Lease not found")
		}

		unit, err := s.unitRepo.FindByIDForUpdate(ctx, ownerID, lease.UnitID)
		if err != nil {
			return fmt.Errorf("failed to lock unit: %w", err)
		}
		if unit == nil {
			return shared.NewDomainError("NOT_FOUND", "Unit not found")
		}

		if err := lease.Terminate(); err != nil {
			return err
		}
		unit.MarkVacant()

		if err := s.leaseRepo.Save(ctx, lease); err != nil {
			return err
		}
		return s.unitRepo.Save(ctx, unit)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, lease)
	return lease, nil
}

// RenewLeaseRequest carries the data for extending a lease
type RenewLeaseRequest struct {
	OwnerID    uuid.UUID
	LeaseID    uuid.UUID
	NewEndDate time.Time
	NewRent    *decimal.Decimal
}

// Renew extends a lease to a new end date and reactivates it, re-occupying
// the unit. The new rent, when given, applies to invoices issued afterwards.
func (s *LeaseService) Renew(ctx context.Context, req RenewLeaseRequest) (*leasing.Lease, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lease", "renew")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrLeaseID, req.LeaseID.String())

	var lease *leasing.Lease
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		lease, err = s.leaseRepo.FindByIDForOwner(ctx, req.OwnerID, req.LeaseID)
		if err != nil {
			return err
		}
		if lease == nil {
			return shared.NewDomainError("NOT_FOUND", "Lease not found")
		}

		unit, err := s.unitRepo.FindByIDForUpdate(ctx, req.OwnerID, lease.UnitID)
		if err != nil {
			return fmt.Errorf("failed to lock unit: %w", err)
		}
		if unit == nil {
			return shared.NewDomainError("NOT_FOUND", "Unit not found")
		}

		// renewal puts the lease back in ACTIVE, so the unit must not be
		// claimed by a different active lease in the meantime
		other, err := s.leaseRepo.FindActiveByUnit(ctx, req.OwnerID, lease.UnitID, &lease.ID)
		if err != nil {
			return err
		}
		if other != nil {
			return shared.ErrUnitOccupied
		}

		var newRent *valueobject.Money
		if req.NewRent != nil {
			m := valueobject.NewMoneyEGP(*req.NewRent)
			newRent = &m
		}
		if err := lease.Renew(req.NewEndDate, newRent); err != nil {
			return err
		}
		unit.MarkOccupied()

		if err := s.leaseRepo.Save(ctx, lease); err != nil {
			return err
		}
		return s.unitRepo.Save(ctx, unit)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, lease)
	return lease, nil
}

// GetExpiring returns active leases ending within the next n days
func (s *LeaseService) GetExpiring(ctx context.Context, ownerID uuid.UUID, days int) ([]*leasing.Lease, error) {
	if days <= 0 {
		days = 30
	}
	today := s.clock.Today()
	return s.leaseRepo.FindExpiringBetween(ctx, ownerID, today, today.AddDate(0, 0, days))
}
