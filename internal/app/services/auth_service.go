package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/app/repositories"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
	"github.com/tomwyatt/hillcrest/internal/pkg/auth"
	"github.com/tomwyatt/hillcrest/internal/pkg/validation"
)

// Role rank at or below which a user may use the administrative surface.
const adminRoleThreshold = models.RoleHOD

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repositories.IUserRepository
	tokenRepo  repositories.ITokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validatePassword enforces the strict complexity rules: at least 8
// characters with an uppercase letter, a digit and a special character.
func (s *AuthService) validatePassword(password string) error {
	if !validation.CheckPassword(password).Satisfied() {
		return fmt.Errorf("%w: password must be at least 8 characters and contain an uppercase letter, a digit and a special character", apperrors.ErrInvalidPassword)
	}
	return nil
}

// issueTokens creates and persists a token pair for the user
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token pair: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             expiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

// Login validates an email/password pair and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")

	return &dto.LoginResponse{Token: *tokens, Email: user.Email}, nil
}

// AdminLogin behaves like Login but additionally rejects users whose role rank
// is above the administrative threshold, even with correct credentials.
func (s *AuthService) AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}

	if user.RoleID > adminRoleThreshold {
		return nil, apperrors.ErrPermissionDenied
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Int("roleID", user.RoleID).Msg("Admin logged in")

	return &dto.LoginResponse{Token: *tokens, Email: user.Email}, nil
}

// Register creates a self-service account with the fixed generic user role.
// The strict password policy applies.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:      email,
		Password:   hashedPassword,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		RoleID:     models.RoleUser,
		CreatedAt:  time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User registered")

	return &dto.RegisterResponse{UserID: user.ID, Email: user.Email}, nil
}

// AdminRegister creates an account with a caller-chosen role. A weak password
// is accepted but flagged with a warning in the response, matching the
// administrative workflow where staff set an initial password for the user to
// change later.
func (s *AuthService) AdminRegister(ctx context.Context, req *dto.AdminRegisterRequest) (*dto.RegisterResponse, error) {
	if !models.IsValidRoleID(req.RoleID) {
		return nil, fmt.Errorf("%w: invalid role id", apperrors.ErrValidationFailed)
	}

	var warning string
	if !validation.CheckPassword(req.Password).Satisfied() {
		warning = "Warning: Password does not meet security requirements."
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:      email,
		Password:   hashedPassword,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		RoleID:     req.RoleID,
		CreatedAt:  time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Int("roleID", user.RoleID).Msg("Admin created user account")

	return &dto.RegisterResponse{UserID: user.ID, Email: user.Email, Warning: warning}, nil
}

// RefreshToken exchanges a stored refresh token for a new token pair. The old
// token is revoked and the user's role is re-read so a role change takes
// effect on the next refresh.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiryDate, isRevoked, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(expiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// PurgeExpiredTokens removes refresh tokens past their expiry date and
// returns how many were deleted. Called at startup; revoked-but-unexpired
// tokens are kept so reuse attempts still report revocation.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	deleted, err := s.tokenRepo.DeleteExpiredTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("error purging expired tokens: %w", err)
	}

	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("Purged expired refresh tokens")
	}

	return deleted, nil
}

// VerifyToken decodes and validates an access token, returning its claims
func (s *AuthService) VerifyToken(tokenString string) (*dto.ClaimsResponse, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		return nil, err
	}

	return &dto.ClaimsResponse{
		UserID: claims.UserID,
		Email:  claims.Email,
		RoleID: claims.RoleID,
	}, nil
}

// ResetPassword replaces a user's password after re-validating the old one.
// The new password must differ from the old and satisfy the strict policy.
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.OldPassword) {
		return apperrors.ErrInvalidCredentials
	}

	if auth.CheckPassword(user.Password, req.NewPassword) {
		return fmt.Errorf("%w: new password cannot be the same as the old password", apperrors.ErrInvalidPassword)
	}

	if err := s.validatePassword(req.NewPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Password reset")

	return nil
}
