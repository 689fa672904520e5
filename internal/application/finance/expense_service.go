package finance

import (
	"context"
	"time"

	"github.com/aqari/backend/internal/domain/finance"
	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService handles operating expense records
type ExpenseService struct {
	expenseRepo  finance.ExpenseRepository
	propertyRepo portfolio.PropertyRepository
	clock        shared.Clock
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, propertyRepo portfolio.PropertyRepository, clock shared.Clock) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, propertyRepo: propertyRepo, clock: clock}
}

// CreateExpenseRequest carries a new expense
type CreateExpenseRequest struct {
	OwnerID       uuid.UUID
	PropertyID    uuid.UUID
	Category      finance.ExpenseCategory
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	Vendor        string
	ReceiptNumber string
	Notes         string
	CreatedBy     *uuid.UUID
}

// CreateExpense records an expense against a property
func (s *ExpenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*finance.Expense, error) {
	property, err := s.propertyRepo.FindByIDForOwner(ctx, req.OwnerID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	date := req.Date
	if date.IsZero() {
		date = s.clock.Today()
	}

	expense, err := finance.NewExpense(req.OwnerID, req.PropertyID, req.Category,
		valueobject.NewMoneyEGP(req.Amount), date, req.Description)
	if err != nil {
		return nil, err
	}
	expense.Vendor = req.Vendor
	expense.ReceiptNumber = req.ReceiptNumber
	expense.Notes = req.Notes
	expense.CreatedBy = req.CreatedBy

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense returns one expense scoped to its owner
func (s *ExpenseService) GetExpense(ctx context.Context, ownerID, expenseID uuid.UUID) (*finance.Expense, error) {
	expense, err := s.expenseRepo.FindByIDForOwner(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	return expense, nil
}

// ListExpenses returns expenses, optionally narrowed to a property or range
func (s *ExpenseService) ListExpenses(ctx context.Context, ownerID uuid.UUID, propertyID *uuid.UUID, from, to *time.Time, filter shared.Filter) ([]*finance.Expense, error) {
	if propertyID != nil {
		return s.expenseRepo.FindByProperty(ctx, ownerID, *propertyID, filter)
	}
	if from != nil && to != nil {
		return s.expenseRepo.FindBetween(ctx, ownerID, *from, *to, filter)
	}
	return s.expenseRepo.FindAllForOwner(ctx, ownerID, filter)
}

// UpdateExpenseRequest carries an expense edit. Nil fields are left alone.
type UpdateExpenseRequest struct {
	OwnerID       uuid.UUID
	ExpenseID     uuid.UUID
	Category      *finance.ExpenseCategory
	Amount        *decimal.Decimal
	Date          *time.Time
	Description   *string
	Vendor        *string
	ReceiptNumber *string
	Notes         *string
}

// UpdateExpense edits an expense record
func (s *ExpenseService) UpdateExpense(ctx context.Context, req UpdateExpenseRequest) (*finance.Expense, error) {
	expense, err := s.GetExpense(ctx, req.OwnerID, req.ExpenseID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
		}
		expense.Category = *req.Category
	}
	if req.Amount != nil {
		amount := valueobject.NewMoneyEGP(*req.Amount)
		if !amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
		}
		expense.Amount = amount.Amount()
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
		}
		expense.Description = *req.Description
	}
	if req.Vendor != nil {
		expense.Vendor = *req.Vendor
	}
	if req.ReceiptNumber != nil {
		expense.ReceiptNumber = *req.ReceiptNumber
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}
	expense.IncrementVersion()

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense record
func (s *ExpenseService) DeleteExpense(ctx context.Context, ownerID, expenseID uuid.UUID) error {
	expense, err := s.GetExpense(ctx, ownerID, expenseID)
	if err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, expense.ID)
}
