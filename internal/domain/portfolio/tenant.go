package portfolio

import (
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Tenant represents a person renting (or applying to rent) a unit
type Tenant struct {
	shared.OwnedAggregateRoot
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	IDNumber    string `json:"id_number,omitempty"`
	IDType      string `json:"id_type,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
	Notes       string `json:"notes,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// NewTenant creates a new tenant record
func NewTenant(ownerID uuid.UUID, name, phone string) (*Tenant, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Tenant phone cannot be empty")
	}

	return &Tenant{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Phone:              phone,
		IsActive:           true,
	}, nil
}

// Deactivate soft-deletes the tenant
func (t *Tenant) Deactivate() {
	t.IsActive = false
	t.IncrementVersion()
}
