package models

import (
	"github.com/aqari/backend/internal/domain/identity"
)

// UserModel is the persistence model for users
type UserModel struct {
	AggregateModel
	Name         string `gorm:"type:varchar(200);not null"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(200);not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	Phone        string `gorm:"type:varchar(50)"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         identity.UserRole(m.Role),
		Phone:        m.Phone,
		IsActive:     m.IsActive,
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// UserModelFromDomain converts a domain User to the model
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Phone:        u.Phone,
		IsActive:     u.IsActive,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}
