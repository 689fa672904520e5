package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/aqari/backend/internal/domain/billing"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// outstandingStatuses are the invoice statuses that still carry a balance
var outstandingStatuses = []string{
	string(billing.InvoiceStatusPending),
	string(billing.InvoiceStatusPartial),
	string(billing.InvoiceStatusOverdue),
}

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds an invoice by ID within an owner's portfolio.
// Returns nil without error when no matching row exists.
func (r *GormInvoiceRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.conn(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads the invoice under a FOR UPDATE row lock so that
// concurrent payments against the same invoice serialize
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Invoice, error) {
	query := applyListFilter(r.conn(ctx).Model(&models.InvoiceModel{}), filter, InvoiceSortFields, "due_date DESC")
	return r.collect(query)
}

// FindAllForOwner finds all invoices for an owner
func (r *GormInvoiceRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*billing.Invoice, error) {
	query := r.conn(ctx).Model(&models.InvoiceModel{}).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyListFilter(query, filter, InvoiceSortFields, "due_date DESC")
	return r.collect(query)
}

// FindByLease finds all invoices issued against a lease
func (r *GormInvoiceRepository) FindByLease(ctx context.Context, ownerID, leaseID uuid.UUID) ([]*billing.Invoice, error) {
	query := r.conn(ctx).Model(&models.InvoiceModel{}).
		Where("owner_id = ? AND lease_id = ?", ownerID, leaseID).
		Order("billing_period DESC")
	return r.collect(query)
}

// FindByStatus finds an owner's invoices in a given status
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status billing.InvoiceStatus, filter shared.Filter) ([]*billing.Invoice, error) {
	query := r.conn(ctx).Model(&models.InvoiceModel{}).
		Where("owner_id = ? AND status = ?", ownerID, status)
	query = applyListFilter(query, filter, InvoiceSortFields, "due_date DESC")
	return r.collect(query)
}

// ExistsForLeaseAndPeriod reports whether an invoice already covers the
// billing period for the lease
func (r *GormInvoiceRepository) ExistsForLeaseAndPeriod(ctx context.Context, leaseID uuid.UUID, period string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&models.InvoiceModel{}).
		Where("lease_id = ? AND billing_period = ?", leaseID, period).
		Count(&count).Error
	return count > 0, err
}

// FindPendingPastDue returns PENDING invoices due before the given day,
// across all owners
func (r *GormInvoiceRepository) FindPendingPastDue(ctx context.Context, today time.Time) ([]*billing.Invoice, error) {
	query := r.conn(ctx).Model(&models.InvoiceModel{}).
		Where("status = ? AND due_date < ?", billing.InvoiceStatusPending, today).
		Order("due_date ASC")
	return r.collect(query)
}

// FindDueBetween returns an owner's non-cancelled invoices due inside [from, to)
func (r *GormInvoiceRepository) FindDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*billing.Invoice, error) {
	query := r.conn(ctx).Model(&models.InvoiceModel{}).
		Where("owner_id = ? AND due_date >= ? AND due_date < ? AND status <> ?",
			ownerID, from, to, billing.InvoiceStatusCancelled).
		Order("due_date ASC")
	return r.collect(query)
}

// FindPastDueOutstanding returns an owner's unpaid invoices due before the
// given day. Includes PENDING and PARTIAL rows the sweep has not reached yet.
func (r *GormInvoiceRepository) FindPastDueOutstanding(ctx context.Context, ownerID uuid.UUID, today time.Time, filter shared.Filter) ([]*billing.Invoice, error) {
	query := r.conn(ctx).Model(&models.InvoiceModel{}).
		Where("owner_id = ? AND status IN ? AND due_date < ?", ownerID, outstandingStatuses, today)
	query = applyListFilter(query, filter, InvoiceSortFields, "due_date ASC")
	return r.collect(query)
}

// SumOutstanding sums the unpaid remainder of every invoice that still
// carries a balance
func (r *GormInvoiceRepository) SumOutstanding(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	return r.sum(r.conn(ctx).Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(amount - paid_amount), 0)").
		Where("owner_id = ? AND status IN ?", ownerID, outstandingStatuses))
}

// SumPaidBetween sums amounts collected on invoices paid off inside [from, to)
func (r *GormInvoiceRepository) SumPaidBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(r.conn(ctx).Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(paid_amount), 0)").
		Where("owner_id = ? AND paid_date >= ? AND paid_date < ?", ownerID, from, to))
}

// CountByStatus counts an owner's invoices in a given status
func (r *GormInvoiceRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID, status billing.InvoiceStatus) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.InvoiceModel{}).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Count(&count).Error
	return count, err
}

// Save creates or updates an invoice. Invoice numbers are random tokens, so
// a unique-index collision gets one regeneration before surfacing as a
// conflict the handler maps to 409.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	err := r.conn(ctx).Save(models.InvoiceModelFromDomain(invoice)).Error
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	invoice.InvoiceNumber = billing.GenerateInvoiceNumber()
	err = r.conn(ctx).Save(models.InvoiceModelFromDomain(invoice)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError("CONFLICT", "Invoice number collision could not be resolved")
	}
	return err
}

// Delete deletes an invoice
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormInvoiceRepository) sum(query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *GormInvoiceRepository) collect(query *gorm.DB) ([]*billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]*billing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToDomain()
	}
	return invoices, nil
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
