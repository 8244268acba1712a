package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// LoginResponse represents a successful credential exchange
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	Email string        `json:"email"`
}

// RefreshTokenRequest represents a refresh token exchange request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// VerifyTokenRequest represents a claims introspection request
type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// ClaimsResponse represents decoded token claims
type ClaimsResponse struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	RoleID int    `json:"role"`
}

// RegisterRequest represents a self-service registration request.
// Self-registered accounts always receive the generic user role.
type RegisterRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required"`
	FirstName  string  `json:"fn" binding:"required"`
	MiddleName *string `json:"mn,omitempty"`
	LastName   string  `json:"sn" binding:"required"`
}

// AdminRegisterRequest represents an administrator creating an account with a
// caller-chosen role.
type AdminRegisterRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required"`
	FirstName  string  `json:"fn" binding:"required"`
	MiddleName *string `json:"mn,omitempty"`
	LastName   string  `json:"sn" binding:"required"`
	RoleID     int     `json:"roleId" binding:"required,min=1,max=5"`
}

// RegisterResponse represents the result of an account creation.
// Warning is set when an admin-created account was accepted with a weak password.
type RegisterResponse struct {
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Warning string `json:"warning,omitempty"`
}

// ResetPasswordRequest represents an old/new password exchange
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
