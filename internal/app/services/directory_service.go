package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/app/repositories"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
)

// DirectoryService handles the staff-facing user directory
type DirectoryService struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(userRepo repositories.IUserRepository, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns all users with role names, optionally filtered by role
func (s *DirectoryService) ListUsers(ctx context.Context, roleID *int) ([]*dto.UserResponse, error) {
	if roleID != nil && !models.IsValidRoleID(*roleID) {
		return nil, apperrors.ErrValidationFailed
	}

	users, err := s.userRepo.GetAllWithRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, &dto.UserResponse{
			ID:         user.ID,
			Email:      user.Email,
			FirstName:  user.FirstName,
			MiddleName: user.MiddleName,
			LastName:   user.LastName,
			Role:       user.RoleName,
			RoleID:     user.RoleID,
			CreatedAt:  user.CreatedAt,
		})
	}

	return responses, nil
}

// EditRole changes a target user's role. Users cannot change their own role,
// so an account always keeps at least one higher-ranked administrator able to
// reverse a mistake.
func (s *DirectoryService) EditRole(ctx context.Context, callerID, targetID int64, roleID int) error {
	if callerID == targetID {
		return apperrors.ErrSelfRoleChange
	}
	if !models.IsValidRoleID(roleID) {
		return apperrors.ErrValidationFailed
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, roleID); err != nil {
		return err
	}

	s.logger.Info().Int64("targetID", targetID).Int("roleID", roleID).Int64("by", callerID).Msg("User role changed")

	return nil
}

// DeleteUser removes a user and everything that hangs off it: refresh tokens,
// headed subjects with their courses, hosted courses, potential students and
// all dependent enrolments.
func (s *DirectoryService) DeleteUser(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("User deleted with dependent records")

	return nil
}
