package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.ErrUnauthorized.Withf("Invalid email or password")

// AuthService handles sign-in, token refresh and sign-out
type AuthService struct {
	userRepo   identity.UserRepository
	permRepo   identity.PermissionRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service.
// blacklist may be nil, in which case logout only succeeds client-side.
func NewAuthService(
	userRepo identity.UserRepository,
	permRepo identity.PermissionRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		permRepo:   permRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates by email and password and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login for unknown email")
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.CanLogin() || !user.VerifyPassword(req.Password) {
		s.logger.Warn("login rejected", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}

	permissions, err := s.permRepo.FindByRole(ctx, user.Role)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role.String(),
		Permissions: permissions,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	userResponse := ToUserResponse(user)
	return toTokenResponse(pair, &userResponse, permissions), nil
}

// Refresh exchanges a refresh token for a new pair.
// Role and permissions are read again so grant changes apply without a new login.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, tokenError(err)
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsUserRevoked(ctx, userID.String(), claims.GetIssuedAtTime())
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, tokenError(auth.ErrTokenBlacklisted)
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized.Withf("Account no longer exists")
		}
		return nil, err
	}

	permissions, err := s.permRepo.FindByRole(ctx, user.Role)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Role.String(), permissions)
	if err != nil {
		return nil, tokenError(err)
	}

	return toTokenResponse(pair, nil, permissions), nil
}

// Logout revokes the presented access token until it would have expired
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil || input.TokenJTI == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser returns the signed-in user's account
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.ErrUnauthorized.Withf("Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.ErrUnauthorized.Withf("Maximum token refresh count exceeded, please log in again")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.ErrUnauthorized.Withf("Refresh token has been revoked")
	default:
		return shared.ErrUnauthorized.Withf("Invalid refresh token")
	}
}

func toTokenResponse(pair *auth.TokenPair, user *UserResponse, permissions []string) *TokenResponse {
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  user,
		Permissions:           permissions,
	}
}
