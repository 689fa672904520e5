package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeaseRepository implements leasing.LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

func (r *GormLeaseRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a lease by its ID
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Lease, error) {
	var model models.LeaseModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a lease by ID within an owner's portfolio.
// Returns nil without error when no matching row exists.
func (r *GormLeaseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*leasing.Lease, error) {
	var model models.LeaseModel
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

// FindActiveByUnit returns the active lease for a unit, or nil when the unit
// is free. excludeLeaseID skips one lease, used when re-validating a status
// change against the lease's own row.
func (r *GormLeaseRepository) FindActiveByUnit(ctx context.Context, ownerID, unitID uuid.UUID, excludeLeaseID *uuid.UUID) (*leasing.Lease, error) {
	query := r.conn(ctx).
		Where("owner_id = ? AND unit_id = ? AND status = ?", ownerID, unitID, leasing.LeaseStatusActive)
	if excludeLeaseID != nil {
		query = query.Where("id <> ?", *excludeLeaseID)
	}

	var model models.LeaseModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all leases matching the filter
func (r *GormLeaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*leasing.Lease, error) {
	query := applyListFilter(r.conn(ctx).Model(&models.LeaseModel{}), filter, LeaseSortFields, "created_at DESC")
	return r.collect(query)
}

// FindAllForOwner finds all leases for an owner
func (r *GormLeaseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*leasing.Lease, error) {
	query := r.conn(ctx).Model(&models.LeaseModel{}).Where("owner_id = ?", ownerID)
	query = applyListFilter(query, filter, LeaseSortFields, "created_at DESC")
	return r.collect(query)
}

// FindByUnit finds all leases ever written against a unit
func (r *GormLeaseRepository) FindByUnit(ctx context.Context, ownerID, unitID uuid.UUID) ([]*leasing.Lease, error) {
	query := r.conn(ctx).Model(&models.LeaseModel{}).
		Where("owner_id = ? AND unit_id = ?", ownerID, unitID).
		Order("start_date DESC")
	return r.collect(query)
}

// FindByTenant finds all leases held by a tenant
func (r *GormLeaseRepository) FindByTenant(ctx context.Context, ownerID, tenantID uuid.UUID) ([]*leasing.Lease, error) {
	query := r.conn(ctx).Model(&models.LeaseModel{}).
		Where("owner_id = ? AND tenant_id = ?", ownerID, tenantID).
		Order("start_date DESC")
	return r.collect(query)
}

// FindByStatus finds an owner's leases in a given status
func (r *GormLeaseRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status leasing.LeaseStatus, filter shared.Filter) ([]*leasing.Lease, error) {
	query := r.conn(ctx).Model(&models.LeaseModel{}).
		Where("owner_id = ? AND status = ?", ownerID, status)
	query = applyListFilter(query, filter, LeaseSortFields, "created_at DESC")
	return r.collect(query)
}

// FindActivePastEndDate returns active leases whose end date is before the
// given day, across all owners. Used by the expiry sweep.
func (r *GormLeaseRepository) FindActivePastEndDate(ctx context.Context, today time.Time) ([]*leasing.Lease, error) {
	query := r.conn(ctx).Model(&models.LeaseModel{}).
		Where("status = ? AND end_date < ?", leasing.LeaseStatusActive, today).
		Order("end_date ASC")
	return r.collect(query)
}

// FindActiveWithPaymentDay returns active leases whose payment day equals the
// given day of month, across all owners. Used by invoice generation.
func (r *GormLeaseRepository) FindActiveWithPaymentDay(ctx context.Context, day int) ([]*leasing.Lease, error) {
	query := r.conn(ctx).Model(&models.LeaseModel{}).
		Where("status = ? AND payment_day = ?", leasing.LeaseStatusActive, day).
		Order("created_at ASC")
	return r.collect(query)
}

// FindExpiringBetween returns active leases ending inside [from, to)
func (r *GormLeaseRepository) FindExpiringBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*leasing.Lease, error) {
	query := r.conn(ctx).Model(&models.LeaseModel{}).
		Where("owner_id = ? AND status = ? AND end_date >= ? AND end_date < ?",
			ownerID, leasing.LeaseStatusActive, from, to).
		Order("end_date ASC")
	return r.collect(query)
}

// CountByStatus counts an owner's leases in a given status
func (r *GormLeaseRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID, status leasing.LeaseStatus) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.LeaseModel{}).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Count(&count).Error
	return count, err
}

// Save creates or updates a lease
func (r *GormLeaseRepository) Save(ctx context.Context, lease *leasing.Lease) error {
	model := models.LeaseModelFromDomain(lease)
	return r.conn(ctx).Save(model).Error
}

// Delete deletes a lease
func (r *GormLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.LeaseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormLeaseRepository) collect(query *gorm.DB) ([]*leasing.Lease, error) {
	var leaseModels []models.LeaseModel
	if err := query.Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	leases := make([]*leasing.Lease, len(leaseModels))
	for i := range leaseModels {
		leases[i] = leaseModels[i].ToDomain()
	}
	return leases, nil
}

// Ensure GormLeaseRepository implements LeaseRepository
var _ leasing.LeaseRepository = (*GormLeaseRepository)(nil)
