package finance

import (
	"time"

	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an operating expense
type ExpenseCategory string

const (
	ExpenseCategoryMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseCategoryUtilities   ExpenseCategory = "UTILITIES"
	ExpenseCategoryRepairs     ExpenseCategory = "REPAIRS"
	ExpenseCategoryInsurance   ExpenseCategory = "INSURANCE"
	ExpenseCategoryTaxes       ExpenseCategory = "TAXES"
	ExpenseCategoryManagement  ExpenseCategory = "MANAGEMENT"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryMaintenance, ExpenseCategoryUtilities, ExpenseCategoryRepairs,
		ExpenseCategoryInsurance, ExpenseCategoryTaxes, ExpenseCategoryManagement, ExpenseCategoryOther:
		return true
	}
	return false
}

// AllExpenseCategories lists every category, in reporting order
func AllExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryMaintenance,
		ExpenseCategoryUtilities,
		ExpenseCategoryRepairs,
		ExpenseCategoryInsurance,
		ExpenseCategoryTaxes,
		ExpenseCategoryManagement,
		ExpenseCategoryOther,
	}
}

// Expense is money spent running a property
type Expense struct {
	shared.OwnedAggregateRoot
	PropertyID    uuid.UUID       `json:"property_id"`
	Category      ExpenseCategory `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Vendor        string          `json:"vendor,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     *uuid.UUID      `json:"created_by,omitempty"`
}

// NewExpense records a new expense against a property
func NewExpense(ownerID, propertyID uuid.UUID, category ExpenseCategory, amount valueobject.Money, date time.Time, description string) (*Expense, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if category == "" {
		category = ExpenseCategoryOther
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}

	return &Expense{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		PropertyID:         propertyID,
		Category:           category,
		Amount:             amount.Amount(),
		Date:               date,
		Description:        description,
	}, nil
}

// GetAmountMoney returns the spent amount as Money
func (e *Expense) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(e.Amount)
}
