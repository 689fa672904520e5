package persistence

import (
	"context"
	"errors"

	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUnitRepository implements portfolio.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

func (r *GormUnitRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a unit by its ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Unit, error) {
	var model models.UnitModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a unit by ID within an owner's portfolio.
// Returns nil without error when no matching row exists.
func (r *GormUnitRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Unit, error) {
	var model models.UnitModel
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

// FindByIDForUpdate loads the unit under a FOR UPDATE row lock. Concurrent
// lease transitions against the same unit block here until the first
// transaction commits.
func (r *GormUnitRepository) FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Unit, error) {
	var model models.UnitModel
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

// FindAll finds all units matching the filter
func (r *GormUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*portfolio.Unit, error) {
	query := applyListFilter(r.conn(ctx).Model(&models.UnitModel{}), filter, UnitSortFields, "created_at DESC")
	return r.collect(query)
}

// FindAllForOwner finds all units for an owner
func (r *GormUnitRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*portfolio.Unit, error) {
	query := r.conn(ctx).Model(&models.UnitModel{}).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		query = query.Where("unit_number ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyListFilter(query, filter, UnitSortFields, "created_at DESC")
	return r.collect(query)
}

// FindByProperty finds all units of one property
func (r *GormUnitRepository) FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*portfolio.Unit, error) {
	query := r.conn(ctx).Model(&models.UnitModel{}).
		Where("owner_id = ? AND property_id = ?", ownerID, propertyID).
		Order("unit_number ASC")
	return r.collect(query)
}

// FindByStatus finds an owner's units in a given occupancy status
func (r *GormUnitRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status portfolio.UnitStatus, filter shared.Filter) ([]*portfolio.Unit, error) {
	query := r.conn(ctx).Model(&models.UnitModel{}).
		Where("owner_id = ? AND status = ?", ownerID, status)
	query = applyListFilter(query, filter, UnitSortFields, "created_at DESC")
	return r.collect(query)
}

// CountByStatus counts an owner's units in a given occupancy status
func (r *GormUnitRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID, status portfolio.UnitStatus) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.UnitModel{}).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Count(&count).Error
	return count, err
}

// Count counts all of an owner's units
func (r *GormUnitRepository) Count(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.UnitModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *portfolio.Unit) error {
	model := models.UnitModelFromDomain(unit)
	return r.conn(ctx).Save(model).Error
}

// Delete deletes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.UnitModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormUnitRepository) collect(query *gorm.DB) ([]*portfolio.Unit, error) {
	var unitModels []models.UnitModel
	if err := query.Find(&unitModels).Error; err != nil {
		return nil, err
	}
	units := make([]*portfolio.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = unitModels[i].ToDomain()
	}
	return units, nil
}

// Ensure GormUnitRepository implements UnitRepository
var _ portfolio.UnitRepository = (*GormUnitRepository)(nil)
