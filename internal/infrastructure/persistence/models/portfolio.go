package models

import (
	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for properties
type PropertyModel struct {
	OwnedAggregateModel
	Name        string `gorm:"type:varchar(200);not null"`
	Address     string `gorm:"type:varchar(500);not null"`
	City        string `gorm:"type:varchar(100);not null;index"`
	Type        string `gorm:"type:varchar(20);not null"`
	TotalUnits  int    `gorm:"not null;default:0"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true;index"`
}

// TableName specifies the table name for PropertyModel
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the model to a domain Property
func (m *PropertyModel) ToDomain() *portfolio.Property {
	property := &portfolio.Property{
		Name:        m.Name,
		Address:     m.Address,
		City:        m.City,
		Type:        portfolio.PropertyType(m.Type),
		TotalUnits:  m.TotalUnits,
		Description: m.Description,
		IsActive:    m.IsActive,
	}
	m.PopulateOwnedAggregateRoot(&property.OwnedAggregateRoot)
	return property
}

// PropertyModelFromDomain converts a domain Property to the model
func PropertyModelFromDomain(p *portfolio.Property) *PropertyModel {
	m := &PropertyModel{
		Name:        p.Name,
		Address:     p.Address,
		City:        p.City,
		Type:        string(p.Type),
		TotalUnits:  p.TotalUnits,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	return m
}

// UnitModel is the persistence model for units
type UnitModel struct {
	OwnedAggregateModel
	PropertyID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_units_property_number"`
	UnitNumber  string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_units_property_number"`
	Floor       *int            `gorm:""`
	Bedrooms    *int            `gorm:""`
	Bathrooms   *int            `gorm:""`
	Area        decimal.Decimal `gorm:"type:decimal(12,2)"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;index"`
	Description string          `gorm:"type:text"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName specifies the table name for UnitModel
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the model to a domain Unit
func (m *UnitModel) ToDomain() *portfolio.Unit {
	unit := &portfolio.Unit{
		PropertyID:  m.PropertyID,
		UnitNumber:  m.UnitNumber,
		Floor:       m.Floor,
		Bedrooms:    m.Bedrooms,
		Bathrooms:   m.Bathrooms,
		Area:        m.Area,
		MonthlyRent: m.MonthlyRent,
		Status:      portfolio.UnitStatus(m.Status),
		Description: m.Description,
		IsActive:    m.IsActive,
	}
	m.PopulateOwnedAggregateRoot(&unit.OwnedAggregateRoot)
	return unit
}

// UnitModelFromDomain converts a domain Unit to the model
func UnitModelFromDomain(u *portfolio.Unit) *UnitModel {
	m := &UnitModel{
		PropertyID:  u.PropertyID,
		UnitNumber:  u.UnitNumber,
		Floor:       u.Floor,
		Bedrooms:    u.Bedrooms,
		Bathrooms:   u.Bathrooms,
		Area:        u.Area,
		MonthlyRent: u.MonthlyRent,
		Status:      string(u.Status),
		Description: u.Description,
		IsActive:    u.IsActive,
	}
	m.FromDomainOwnedAggregateRoot(u.OwnedAggregateRoot)
	return m
}

// TenantModel is the persistence model for tenants
type TenantModel struct {
	OwnedAggregateModel
	Name        string `gorm:"type:varchar(200);not null;index"`
	Phone       string `gorm:"type:varchar(50);not null"`
	Email       string `gorm:"type:varchar(200)"`
	IDNumber    string `gorm:"type:varchar(100)"`
	IDType      string `gorm:"type:varchar(50)"`
	Nationality string `gorm:"type:varchar(100)"`
	Occupation  string `gorm:"type:varchar(200)"`
	Notes       string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName specifies the table name for TenantModel
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain Tenant
func (m *TenantModel) ToDomain() *portfolio.Tenant {
	tenant := &portfolio.Tenant{
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		IDNumber:    m.IDNumber,
		IDType:      m.IDType,
		Nationality: m.Nationality,
		Occupation:  m.Occupation,
		Notes:       m.Notes,
		IsActive:    m.IsActive,
	}
	m.PopulateOwnedAggregateRoot(&tenant.OwnedAggregateRoot)
	return tenant
}

// TenantModelFromDomain converts a domain Tenant to the model
func TenantModelFromDomain(t *portfolio.Tenant) *TenantModel {
	m := &TenantModel{
		Name:        t.Name,
		Phone:       t.Phone,
		Email:       t.Email,
		IDNumber:    t.IDNumber,
		IDType:      t.IDType,
		Nationality: t.Nationality,
		Occupation:  t.Occupation,
		Notes:       t.Notes,
		IsActive:    t.IsActive,
	}
	m.FromDomainOwnedAggregateRoot(t.OwnedAggregateRoot)
	return m
}
