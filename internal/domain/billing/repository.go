package billing

import (
	"context"
	"time"

	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the persistence interface for invoices
type InvoiceRepository interface {
	shared.OwnedRepository[*Invoice]
	// FindByIDForUpdate loads the invoice under a row lock so that concurrent
	// payments against the same invoice serialize. Must run inside a
	// transaction.
	FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*Invoice, error)
	FindByLease(ctx context.Context, ownerID, leaseID uuid.UUID) ([]*Invoice, error)
	FindByStatus(ctx context.Context, ownerID uuid.UUID, status InvoiceStatus, filter shared.Filter) ([]*Invoice, error)
	// ExistsForLeaseAndPeriod checks whether an invoice already covers the
	// billing period. Backed by a unique index on (lease_id, billing_period),
	// which makes the generation sweep idempotent even under races.
	ExistsForLeaseAndPeriod(ctx context.Context, leaseID uuid.UUID, period string) (bool, error)
	// FindPendingPastDue returns PENDING invoices due before the given day,
	// across all owners. Used by the overdue sweep.
	FindPendingPastDue(ctx context.Context, today time.Time) ([]*Invoice, error)
	// FindDueBetween returns an owner's non-cancelled invoices with a due
	// date inside [from, to). Used by the period financial summary.
	FindDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*Invoice, error)
	// FindPastDueOutstanding returns an owner's unpaid invoices due before
	// the given day, whether or not the sweep has flipped them to OVERDUE
	FindPastDueOutstanding(ctx context.Context, ownerID uuid.UUID, today time.Time, filter shared.Filter) ([]*Invoice, error)
	SumOutstanding(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error)
	SumPaidBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, ownerID uuid.UUID, status InvoiceStatus) (int64, error)
}

// PropertyRevenue is collected rent rolled up to the property that earned it
type PropertyRevenue struct {
	PropertyID uuid.UUID
	Total      decimal.Decimal
}

// PaymentRepository defines the persistence interface for payment records
type PaymentRepository interface {
	shared.OwnedRepository[*Payment]
	FindByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]*Payment, error)
	FindRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*Payment, error)
	SumBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	// SumByPropertyBetween rolls payments up through invoice, lease and unit
	// to the owning property.
	SumByPropertyBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]PropertyRevenue, error)
}
