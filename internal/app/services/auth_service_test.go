package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
	"github.com/tomwyatt/hillcrest/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "test",
	})
	svc := NewAuthService(userRepo, tokenRepo, jwtService, zerolog.Nop())
	return svc, userRepo, tokenRepo
}

func registerUser(t *testing.T, svc *AuthService, email string) *dto.RegisterResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     email,
		Password:  "Secret123!",
		FirstName: "Pat",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAssignsGenericUserRole(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	resp := registerUser(t, svc, "pat@example.com")

	user, err := userRepo.GetByID(context.Background(), resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.RoleID)
	assert.NotEqual(t, "Secret123!", user.Password)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	for _, password := range []string{"short1!A", "nouppercase1!", "NoDigits!", "NoSpecial1", "Sh1!"} {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:     "pat@example.com",
			Password:  password,
			FirstName: "Pat",
			LastName:  "Doe",
		})
		if password == "short1!A" {
			// 8 chars with all classes satisfies the policy
			assert.NoError(t, err, password)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInvalidPassword, password)
		}
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	registerUser(t, svc, "pat@example.com")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "pat@example.com",
		Password:  "Secret123!",
		FirstName: "Pat",
		LastName:  "Doe",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	registerUser(t, svc, "pat@example.com")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "WrongPass1!",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	resp := registerUser(t, svc, "pat@example.com")

	loginResp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", loginResp.Email)
	assert.Equal(t, "Bearer", loginResp.Token.TokenType)

	claims, err := svc.VerifyToken(loginResp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.RoleID)
}

func TestAdminLoginRejectsLowRankEvenWithCorrectPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	registerUser(t, svc, "pat@example.com") // role rank 5

	_, err := svc.AdminLogin(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "Secret123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAdminLoginAcceptsHODRank(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.AdminRegister(context.Background(), &dto.AdminRegisterRequest{
		Email:     "hod@example.com",
		Password:  "Secret123!",
		FirstName: "Hod",
		LastName:  "Person",
		RoleID:    models.RoleHOD,
	})
	require.NoError(t, err)

	resp, err := svc.AdminLogin(context.Background(), &dto.LoginRequest{
		Email:    "hod@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
}

func TestAdminRegisterWeakPasswordWarnsButSucceeds(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)

	resp, err := svc.AdminRegister(context.Background(), &dto.AdminRegisterRequest{
		Email:     "teacher@example.com",
		Password:  "weak",
		FirstName: "Terry",
		LastName:  "Teacher",
		RoleID:    models.RoleTeacher,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Warning)

	user, err := userRepo.GetByID(context.Background(), resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.RoleID)
}

func TestAdminRegisterStrongPasswordNoWarning(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	resp, err := svc.AdminRegister(context.Background(), &dto.AdminRegisterRequest{
		Email:     "teacher@example.com",
		Password:  "Secret123!",
		FirstName: "Terry",
		LastName:  "Teacher",
		RoleID:    models.RoleTeacher,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Warning)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture(t)
	registerUser(t, svc, "pat@example.com")

	loginResp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), loginResp.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, loginResp.Token.RefreshToken, refreshed.RefreshToken)

	// Old token is revoked and cannot be used again
	_, err = svc.RefreshToken(context.Background(), loginResp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_ = tokenRepo
}

func TestRefreshTokenRejectsExpired(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthFixture(t)
	resp := registerUser(t, svc, "pat@example.com")
	_ = userRepo

	require.NoError(t, tokenRepo.CreateToken(context.Background(), "stale-token", resp.UserID, time.Now().Add(-time.Minute)))

	_, err := svc.RefreshToken(context.Background(), "stale-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshTokenRejectsUnknown(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.RefreshToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestRefreshTokenPicksUpRoleChange(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	resp := registerUser(t, svc, "pat@example.com")

	loginResp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	require.NoError(t, userRepo.UpdateRole(context.Background(), resp.UserID, models.RoleTeacher))

	refreshed, err := svc.RefreshToken(context.Background(), loginResp.Token.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, claims.RoleID)
}

func TestResetPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	registerUser(t, svc, "pat@example.com")

	// Wrong old password
	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Email:       "pat@example.com",
		OldPassword: "WrongPass1!",
		NewPassword: "Another123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// New password equal to old
	err = svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Email:       "pat@example.com",
		OldPassword: "Secret123!",
		NewPassword: "Secret123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	// New password too weak
	err = svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Email:       "pat@example.com",
		OldPassword: "Secret123!",
		NewPassword: "weak",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	// Valid change
	err = svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Email:       "pat@example.com",
		OldPassword: "Secret123!",
		NewPassword: "Another123!",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "Another123!",
	})
	assert.NoError(t, err)
}

func TestPurgeExpiredTokens(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture(t)
	resp := registerUser(t, svc, "pat@example.com")

	require.NoError(t, tokenRepo.CreateToken(context.Background(), "stale-token", resp.UserID, time.Now().Add(-time.Minute)))
	require.NoError(t, tokenRepo.CreateToken(context.Background(), "live-token", resp.UserID, time.Now().Add(time.Hour)))

	deleted, err := svc.PurgeExpiredTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, _, _, err = tokenRepo.GetTokenByValue(context.Background(), "stale-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, _, _, err = tokenRepo.GetTokenByValue(context.Background(), "live-token")
	assert.NoError(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.VerifyToken("not.a.token")
	assert.Error(t, err)
}
