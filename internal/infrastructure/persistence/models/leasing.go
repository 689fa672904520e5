package models

import (
	"time"

	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaseModel is the persistence model for leases
type LeaseModel struct {
	OwnedAggregateModel
	UnitID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	StartDate        time.Time       `gorm:"not null"`
	EndDate          time.Time       `gorm:"not null;index"`
	MonthlyRent      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SecurityDeposit  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentFrequency string          `gorm:"type:varchar(20);not null"`
	PaymentDay       int             `gorm:"not null;index"`
	Status           string          `gorm:"type:varchar(20);not null;index"`
	Notes            string          `gorm:"type:text"`
}

// TableName specifies the table name for LeaseModel
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the model to a domain Lease
func (m *LeaseModel) ToDomain() *leasing.Lease {
	lease := &leasing.Lease{
		UnitID:           m.UnitID,
		TenantID:         m.TenantID,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		MonthlyRent:      m.MonthlyRent,
		SecurityDeposit:  m.SecurityDeposit,
		PaymentFrequency: leasing.PaymentFrequency(m.PaymentFrequency),
		PaymentDay:       m.PaymentDay,
		Status:           leasing.LeaseStatus(m.Status),
		Notes:            m.Notes,
	}
	m.PopulateOwnedAggregateRoot(&lease.OwnedAggregateRoot)
	return lease
}

// LeaseModelFromDomain converts a domain Lease to the model
func LeaseModelFromDomain(l *leasing.Lease) *LeaseModel {
	m := &LeaseModel{
		UnitID:           l.UnitID,
		TenantID:         l.TenantID,
		StartDate:        l.StartDate,
		EndDate:          l.EndDate,
		MonthlyRent:      l.MonthlyRent,
		SecurityDeposit:  l.SecurityDeposit,
		PaymentFrequency: string(l.PaymentFrequency),
		PaymentDay:       l.PaymentDay,
		Status:           string(l.Status),
		Notes:            l.Notes,
	}
	m.FromDomainOwnedAggregateRoot(l.OwnedAggregateRoot)
	return m
}
