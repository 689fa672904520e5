package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/aqari/backend/internal/domain/finance"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.conn(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds an expense by ID within an owner's portfolio.
// Returns nil without error when no matching row exists.
func (r *GormExpenseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
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

// FindAll finds all expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.Expense, error) {
	query := applyListFilter(r.conn(ctx).Model(&models.ExpenseModel{}), filter, ExpenseSortFields, "date DESC")
	return r.collect(query)
}

// FindAllForOwner finds all expenses for an owner
func (r *GormExpenseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*finance.Expense, error) {
	query := r.conn(ctx).Model(&models.ExpenseModel{}).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR vendor ILIKE ?", pattern, pattern)
	}
	query = applyListFilter(query, filter, ExpenseSortFields, "date DESC")
	return r.collect(query)
}

// FindByProperty finds all expenses booked against one property
func (r *GormExpenseRepository) FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) ([]*finance.Expense, error) {
	query := r.conn(ctx).Model(&models.ExpenseModel{}).
		Where("owner_id = ? AND property_id = ?", ownerID, propertyID)
	query = applyListFilter(query, filter, ExpenseSortFields, "date DESC")
	return r.collect(query)
}

// FindBetween finds an owner's expenses dated inside [from, to)
func (r *GormExpenseRepository) FindBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time, filter shared.Filter) ([]*finance.Expense, error) {
	query := r.conn(ctx).Model(&models.ExpenseModel{}).
		Where("owner_id = ? AND date >= ? AND date < ?", ownerID, from, to)
	query = applyListFilter(query, filter, ExpenseSortFields, "date DESC")
	return r.collect(query)
}

// SumBetween sums an owner's expenses dated inside [from, to)
func (r *GormExpenseRepository) SumBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(r.conn(ctx).Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("owner_id = ? AND date >= ? AND date < ?", ownerID, from, to))
}

// SumByPropertyBetween sums one property's expenses dated inside [from, to)
func (r *GormExpenseRepository) SumByPropertyBetween(ctx context.Context, ownerID, propertyID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(r.conn(ctx).Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("owner_id = ? AND property_id = ? AND date >= ? AND date < ?", ownerID, propertyID, from, to))
}

// SumByCategoryBetween breaks an owner's expenses inside [from, to) down by
// category, largest first
func (r *GormExpenseRepository) SumByCategoryBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]finance.CategoryTotal, error) {
	var rows []struct {
		Category string
		Total    decimal.Decimal
	}
	err := r.conn(ctx).Model(&models.ExpenseModel{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("owner_id = ? AND date >= ? AND date < ?", ownerID, from, to).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]finance.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = finance.CategoryTotal{
			Category: finance.ExpenseCategory(row.Category),
			Total:    row.Total,
		}
	}
	return totals, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.conn(ctx).Save(model).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormExpenseRepository) sum(query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *GormExpenseRepository) collect(query *gorm.DB) ([]*finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]*finance.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToDomain()
	}
	return expenses, nil
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
