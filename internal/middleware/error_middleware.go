package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
	"github.com/tomwyatt/hillcrest/internal/pkg/auth"
)

// HandleAPIError maps service errors onto the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	var alreadyEnrolled *apperrors.AlreadyEnrolledError
	if errors.As(err, &alreadyEnrolled) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeAlreadyEnrolled, alreadyEnrolled.Error())
		c.JSON(http.StatusConflict, dto.NewErrorResponse(errorDetail))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrSubjectNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrEnrolmentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, auth.ErrExpiredToken):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrTokenRevoked):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrTokenNotFound):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidFormat):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrStudentEmailExists),
		errors.Is(err, apperrors.ErrSubjectAlreadyExists),
		errors.Is(err, apperrors.ErrCourseAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyEnrolled),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
		c.JSON(http.StatusConflict, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrSelfRoleChange):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrInvalidPassword):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidPassword, err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidSubjectCode),
		errors.Is(err, apperrors.ErrInvalidYearLevel),
		errors.Is(err, apperrors.ErrInvalidStudentSelection):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}
