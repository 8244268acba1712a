package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/app/services"
	"github.com/tomwyatt/hillcrest/internal/middleware"
)

// DirectoryController handles the staff-facing user directory endpoints
type DirectoryController struct {
	directoryService *services.DirectoryService
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(directoryService *services.DirectoryService) *DirectoryController {
	return &DirectoryController{
		directoryService: directoryService,
	}
}

// ListUsers lists all users with their role names
// @Summary List users
// @Description Lists all users with role names, optionally filtered by role rank
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param role query int false "Filter by role rank (1-5)"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Users retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid role filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *DirectoryController) ListUsers(ctx *gin.Context) {
	var roleID *int
	if roleStr := ctx.Query("role"); roleStr != "" {
		role, err := strconv.Atoi(roleStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role filter")
			errorDetail = errorDetail.WithDetails("Role must be a number between 1 and 5")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		roleID = &role
	}

	users, err := c.directoryService.ListUsers(ctx.Request.Context(), roleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users))
}

// EditRole changes a target user's role
// @Summary Change a user's role
// @Description Assigns a new role to a target user. Changing your own role is rejected.
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID" Format(int64) minimum(1)
// @Param request body dto.EditRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse "Role changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden or attempted self role change"
// @Failure 404 {object} dto.ErrorResponse "Target user not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/role [put]
func (c *DirectoryController) EditRole(ctx *gin.Context) {
	callerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	idStr := ctx.Param("id")
	targetID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.EditRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.directoryService.EditRole(ctx.Request.Context(), callerID, targetID, req.RoleID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Role updated successfully"))
}

// DeleteUser removes a user with all dependent records
// @Summary Delete a user
// @Description Deletes a user together with their tokens, subjects, courses, potential students and all dependent enrolments
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id} [delete]
func (c *DirectoryController) DeleteUser(ctx *gin.Context) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.directoryService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User deleted successfully"))
}
