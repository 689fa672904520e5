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
)

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a payment by ID within an owner's portfolio.
// Returns nil without error when no matching row exists.
func (r *GormPaymentRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
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

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Payment, error) {
	query := applyListFilter(r.conn(ctx).Model(&models.PaymentModel{}), filter, PaymentSortFields, "payment_date DESC")
	return r.collect(query)
}

// FindAllForOwner finds all payments for an owner
func (r *GormPaymentRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*billing.Payment, error) {
	query := r.conn(ctx).Model(&models.PaymentModel{}).Where("owner_id = ?", ownerID)
	query = applyListFilter(query, filter, PaymentSortFields, "payment_date DESC")
	return r.collect(query)
}

// FindByInvoice finds all payments applied to an invoice
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]*billing.Payment, error) {
	query := r.conn(ctx).Model(&models.PaymentModel{}).
		Where("owner_id = ? AND invoice_id = ?", ownerID, invoiceID).
		Order("payment_date ASC")
	return r.collect(query)
}

// FindRecent returns the owner's most recent payments, newest first
func (r *GormPaymentRepository) FindRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*billing.Payment, error) {
	query := r.conn(ctx).Model(&models.PaymentModel{}).
		Where("owner_id = ?", ownerID).
		Order("payment_date DESC").
		Limit(limit)
	return r.collect(query)
}

// SumBetween sums payments received inside [from, to)
func (r *GormPaymentRepository) SumBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.conn(ctx).Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("owner_id = ? AND payment_date >= ? AND payment_date < ?", ownerID, from, to).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumByPropertyBetween rolls payments received inside [from, to) up through
// invoice, lease and unit to the property that earned them
func (r *GormPaymentRepository) SumByPropertyBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]billing.PropertyRevenue, error) {
	var rows []struct {
		PropertyID uuid.UUID
		Total      decimal.Decimal
	}
	err := r.conn(ctx).Model(&models.PaymentModel{}).
		Select("units.property_id AS property_id, COALESCE(SUM(payments.amount), 0) AS total").
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Joins("JOIN leases ON leases.id = invoices.lease_id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Where("payments.owner_id = ? AND payments.payment_date >= ? AND payments.payment_date < ?", ownerID, from, to).
		Group("units.property_id").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	revenues := make([]billing.PropertyRevenue, len(rows))
	for i, row := range rows {
		revenues[i] = billing.PropertyRevenue{PropertyID: row.PropertyID, Total: row.Total}
	}
	return revenues, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.conn(ctx).Save(model).Error
}

// Delete deletes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPaymentRepository) collect(query *gorm.DB) ([]*billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]*billing.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments, nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
