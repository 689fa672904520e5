package models

import (
	"time"

	"github.com/aqari/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for operating expenses
type ExpenseModel struct {
	OwnedAggregateModel
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category      string          `gorm:"type:varchar(20);not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date          time.Time       `gorm:"not null;index"`
	Description   string          `gorm:"type:text;not null"`
	Vendor        string          `gorm:"type:varchar(200)"`
	ReceiptNumber string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:text"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid"`
}

// TableName specifies the table name for ExpenseModel
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the model to a domain Expense
func (m *ExpenseModel) ToDomain() *finance.Expense {
	expense := &finance.Expense{
		PropertyID:    m.PropertyID,
		Category:      finance.ExpenseCategory(m.Category),
		Amount:        m.Amount,
		Date:          m.Date,
		Description:   m.Description,
		Vendor:        m.Vendor,
		ReceiptNumber: m.ReceiptNumber,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
	}
	m.PopulateOwnedAggregateRoot(&expense.OwnedAggregateRoot)
	return expense
}

// ExpenseModelFromDomain converts a domain Expense to the model
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{
		PropertyID:    e.PropertyID,
		Category:      string(e.Category),
		Amount:        e.Amount,
		Date:          e.Date,
		Description:   e.Description,
		Vendor:        e.Vendor,
		ReceiptNumber: e.ReceiptNumber,
		Notes:         e.Notes,
		CreatedBy:     e.CreatedBy,
	}
	m.FromDomainOwnedAggregateRoot(e.OwnedAggregateRoot)
	return m
}
