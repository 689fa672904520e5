package persistence

import (
	"context"
	"errors"

	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPropertyRepository implements portfolio.PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

func (r *GormPropertyRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Property, error) {
	var model models.PropertyModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a property by ID within an owner's portfolio.
// Returns nil without error when no matching row exists.
func (r *GormPropertyRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Property, error) {
	var model models.PropertyModel
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

// FindAll finds all properties matching the filter
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*portfolio.Property, error) {
	query := applyListFilter(r.conn(ctx).Model(&models.PropertyModel{}), filter, PropertySortFields, "created_at DESC")
	return r.collect(query)
}

// FindAllForOwner finds all properties for an owner
func (r *GormPropertyRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*portfolio.Property, error) {
	query := r.conn(ctx).Model(&models.PropertyModel{}).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ? OR city ILIKE ?", pattern, pattern, pattern)
	}
	query = applyListFilter(query, filter, PropertySortFields, "created_at DESC")
	return r.collect(query)
}

// FindByCity finds an owner's properties in a city
func (r *GormPropertyRepository) FindByCity(ctx context.Context, ownerID uuid.UUID, city string) ([]*portfolio.Property, error) {
	query := r.conn(ctx).Model(&models.PropertyModel{}).
		Where("owner_id = ? AND city = ?", ownerID, city).
		Order("name ASC")
	return r.collect(query)
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, property *portfolio.Property) error {
	model := models.PropertyModelFromDomain(property)
	return r.conn(ctx).Save(model).Error
}

// Delete deletes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPropertyRepository) collect(query *gorm.DB) ([]*portfolio.Property, error) {
	var propertyModels []models.PropertyModel
	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	properties := make([]*portfolio.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = propertyModels[i].ToDomain()
	}
	return properties, nil
}

// Ensure GormPropertyRepository implements PropertyRepository
var _ portfolio.PropertyRepository = (*GormPropertyRepository)(nil)
