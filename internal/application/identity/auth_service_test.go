package identity

import (
	"context"
	"testing"
	"time"

	"github.com/aqari/backend/internal/domain/identity"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func newAuthService(t *testing.T) (*AuthService, *MockUserRepository) {
	t.Helper()
	repo := new(MockUserRepository)
	jwt := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "aqari", Expiration: time.Hour})
	return NewAuthService(repo, jwt, zap.NewNop()), repo
}

func TestAuthService_Register(t *testing.T) {
	svc, repo := newAuthService(t)

	repo.On("FindByEmail", mock.Anything, "mona@example.com").Return(nil, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Mona Adel",
		Email:    "Mona@Example.com",
		Password: "s3cret-pass",
		Role:     identity.RoleOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, "mona@example.com", user.Email)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, repo := newAuthService(t)

	existing, err := identity.NewUser("Mona Adel", "mona@example.com", "s3cret-pass", identity.RoleOwner)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "mona@example.com").Return(existing, nil)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name:     "Mona Adel",
		Email:    "mona@example.com",
		Password: "s3cret-pass",
		Role:     identity.RoleOwner,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestAuthService_Login(t *testing.T) {
	svc, repo := newAuthService(t)

	user, err := identity.NewUser("Mona Adel", "mona@example.com", "s3cret-pass", identity.RoleOwner)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "mona@example.com").Return(user, nil)

	result, err := svc.Login(context.Background(), "mona@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, repo := newAuthService(t)

	user, err := identity.NewUser("Mona Adel", "mona@example.com", "s3cret-pass", identity.RoleOwner)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "mona@example.com").Return(user, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, err = svc.Login(context.Background(), "mona@example.com", "wrong-pass")
	wrongPass := err
	require.Error(t, wrongPass)

	_, err = svc.Login(context.Background(), "ghost@example.com", "s3cret-pass")
	noUser := err
	require.Error(t, noUser)

	// same error either way, no account enumeration
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestAuthService_Login_DeactivatedUser(t *testing.T) {
	svc, repo := newAuthService(t)

	user, err := identity.NewUser("Mona Adel", "mona@example.com", "s3cret-pass", identity.RoleOwner)
	require.NoError(t, err)
	user.Deactivate()
	repo.On("FindByEmail", mock.Anything, "mona@example.com").Return(user, nil)

	_, err = svc.Login(context.Background(), "mona@example.com", "s3cret-pass")
	assert.Error(t, err)
}
