package identity

import (
	"strings"

	"github.com/aqari/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole determines what a user may do
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleOwner      UserRole = "OWNER"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleViewer     UserRole = "VIEWER"
)

// IsValid checks if the role is a valid UserRole
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleAccountant, RoleViewer:
		return true
	}
	return false
}

// CanWrite returns true if the role may modify data
func (r UserRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleOwner || r == RoleAccountant
}

// User is an account that can sign in to the back office
type User struct {
	shared.BaseAggregateRoot
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	Phone        string   `json:"phone,omitempty"`
	IsActive     bool     `json:"is_active"`
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(name, email, password string, role UserRole) (*User, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if role == "" {
		role = RoleViewer
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "User role is not valid")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		IsActive:          true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.IncrementVersion()
	return nil
}

// Deactivate locks the account out
func (u *User) Deactivate() {
	u.IsActive = false
	u.IncrementVersion()
}
