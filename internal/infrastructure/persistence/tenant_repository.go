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

// GormTenantRepository implements portfolio.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

func (r *GormTenantRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Tenant, error) {
	var model models.TenantModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a tenant by ID within an owner's portfolio.
// Returns nil without error when no matching row exists.
func (r *GormTenantRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Tenant, error) {
	var model models.TenantModel
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

// FindAll finds all tenants matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*portfolio.Tenant, error) {
	query := applyListFilter(r.conn(ctx).Model(&models.TenantModel{}), filter, TenantSortFields, "created_at DESC")
	return r.collect(query)
}

// FindAllForOwner finds all tenants for an owner
func (r *GormTenantRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*portfolio.Tenant, error) {
	query := r.conn(ctx).Model(&models.TenantModel{}).Where("owner_id = ?", ownerID)
	query = applyListFilter(query, filter, TenantSortFields, "created_at DESC")
	return r.collect(query)
}

// SearchByName finds an owner's tenants whose name, phone or email matches
func (r *GormTenantRepository) SearchByName(ctx context.Context, ownerID uuid.UUID, search string, filter shared.Filter) ([]*portfolio.Tenant, error) {
	pattern := "%" + search + "%"
	query := r.conn(ctx).Model(&models.TenantModel{}).
		Where("owner_id = ?", ownerID).
		Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	query = applyListFilter(query, filter, TenantSortFields, "name ASC")
	return r.collect(query)
}

// Count counts all of an owner's tenants
func (r *GormTenantRepository) Count(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.TenantModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *portfolio.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	return r.conn(ctx).Save(model).Error
}

// Delete deletes a tenant
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.TenantModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTenantRepository) collect(query *gorm.DB) ([]*portfolio.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	tenants := make([]*portfolio.Tenant, len(tenantModels))
	for i := range tenantModels {
		tenants[i] = tenantModels[i].ToDomain()
	}
	return tenants, nil
}

// Ensure GormTenantRepository implements TenantRepository
var _ portfolio.TenantRepository = (*GormTenantRepository)(nil)
