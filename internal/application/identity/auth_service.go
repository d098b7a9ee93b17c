package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/domain/identity"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/infrastructure/auth"
)

// errInvalidCredentials hides whether the username or the password was wrong
var errInvalidCredentials = shared.ErrUnauthorized.WithMessage("Invalid username or password")

// AuthService handles registration and login
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates a user. A taken username yields ALREADY_EXISTS.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	user, err := identity.NewUser(input.Username, input.Password, s.now().UTC())
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Username already exists")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("username", user.Username))
	return toUserInfo(user), nil
}

// Login verifies the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during login", zap.String("username", input.Username))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password", zap.String("username", input.Username))
		return nil, errInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Login successful", zap.String("username", user.Username))
	return &LoginResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        *toUserInfo(user),
	}, nil
}

func toUserInfo(u *identity.User) *UserInfo {
	return &UserInfo{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
