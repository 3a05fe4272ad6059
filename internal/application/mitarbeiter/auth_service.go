package mitarbeiter

import (
	"context"

	"github.com/fleischhandel/backend/internal/domain/mitarbeiter"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	mitarbeiterRepo mitarbeiter.Repository
	jwtService      *auth.JWTService
	blacklist       auth.TokenBlacklist
	logger          *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	mitarbeiterRepo mitarbeiter.Repository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		mitarbeiterRepo: mitarbeiterRepo,
		jwtService:      jwtService,
		blacklist:       blacklist,
		logger:          logger,
	}
}

// Login authenticates a staff member and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	s.logger.Info("Login attempt", zap.String("benutzername", req.Benutzername))

	m, err := s.mitarbeiterRepo.FindByBenutzername(ctx, req.Benutzername)
	if err != nil {
		s.logger.Warn("Unknown Benutzername during login", zap.String("benutzername", req.Benutzername))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid Benutzername or Passwort")
	}

	if !m.Aktiv {
		s.logger.Warn("Login attempt for deactivated account", zap.String("benutzername", req.Benutzername))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !m.VerifyPasswort(req.Passwort) {
		s.logger.Warn("Invalid Passwort attempt", zap.String("benutzername", req.Benutzername))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid Benutzername or Passwort")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:       m.ID,
		Benutzername: m.Benutzername,
		Rollen:       rollenStrings(m.Rollen),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Mitarbeiter logged in",
		zap.String("benutzername", m.Benutzername),
		zap.String("user_id", m.ID.String()))

	return &LoginResponse{
		Tokens:      tokenPair,
		Mitarbeiter: ToMitarbeiterResponse(m),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. Roles
// are re-read from the store so revocations take effect on refresh.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if s.blacklist != nil {
		blocked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Failed to check token blacklist", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
		}
		if blocked {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	m, err := s.mitarbeiterRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Mitarbeiter not found during token refresh", zap.String("user_id", claims.UserID))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Mitarbeiter not found")
	}
	if !m.Aktiv {
		s.logger.Warn("Token refresh for deactivated account", zap.String("user_id", claims.UserID))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, m.Benutzername, rollenStrings(m.Rollen))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	// The old refresh token is single-use
	if s.blacklist != nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("Failed to blacklist used refresh token", zap.Error(err))
		}
	}

	s.logger.Info("Token refreshed", zap.String("user_id", claims.UserID))
	return tokenPair, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist != nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
		}
	}

	s.logger.Info("Mitarbeiter logged out", zap.String("user_id", claims.UserID))
	return nil
}

// GetCurrentMitarbeiter returns the authenticated staff member's profile
func (s *AuthService) GetCurrentMitarbeiter(ctx context.Context, userID uuid.UUID) (*MitarbeiterResponse, error) {
	m, err := s.mitarbeiterRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Mitarbeiter not found")
	}
	response := ToMitarbeiterResponse(m)
	return &response, nil
}

// ChangePasswort changes the caller's own password after verifying the
// old one
func (s *AuthService) ChangePasswort(ctx context.Context, userID uuid.UUID, req ChangePasswortRequest) error {
	m, err := s.mitarbeiterRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "Mitarbeiter not found")
	}

	if !m.VerifyPasswort(req.AltesPasswort) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Altes Passwort is incorrect")
	}
	if err := m.SetPasswort(req.NeuesPasswort); err != nil {
		return err
	}

	if err := s.mitarbeiterRepo.Save(ctx, m); err != nil {
		s.logger.Error("Failed to save Mitarbeiter after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update Passwort")
	}

	s.logger.Info("Passwort changed", zap.String("user_id", userID.String()))
	return nil
}

// mapTokenError translates JWT validation errors into domain errors
func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
