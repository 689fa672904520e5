package identity

import (
	"context"
	"time"

	"github.com/aqari/backend/internal/domain/identity"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/auth"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles registration and sign-in
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
		logger:   logger,
	}
}

// RegisterRequest carries a new account
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     identity.UserRole
	Phone    string
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*identity.User, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "register")
	defer span.End()

	user, err := identity.NewUser(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	user.Phone = req.Phone

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// LoginResult carries the issued token and its owner
type LoginResult struct {
	User      *identity.User `json:"user"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Login verifies credentials and issues an access token. Wrong email and
// wrong password return the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "login")
	defer span.End()

	invalid := shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil || !user.IsActive || !user.CheckPassword(password) {
		return nil, invalid
	}

	token, expiresAt, err := s.jwt.GenerateToken(user)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// GetUser loads one user by ID
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}
	return user, nil
}

// ChangePassword verifies the current password and replaces it
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(current) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.ChangePassword(next); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}
