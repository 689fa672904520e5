package finance

import (
	"context"
	"time"

	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryTotal is one slice of the expense breakdown report
type CategoryTotal struct {
	Category ExpenseCategory
	Total    decimal.Decimal
}

// ExpenseRepository defines the persistence interface for expenses
type ExpenseRepository interface {
	shared.OwnedRepository[*Expense]
	FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) ([]*Expense, error)
	FindBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time, filter shared.Filter) ([]*Expense, error)
	SumBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	SumByPropertyBetween(ctx context.Context, ownerID, propertyID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	SumByCategoryBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]CategoryTotal, error)
}
