package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/app/services"
	"github.com/tomwyatt/hillcrest/internal/middleware"
)

// EnrolmentController handles enrolment endpoints
type EnrolmentController struct {
	enrolmentService *services.EnrolmentService
}

// NewEnrolmentController creates a new EnrolmentController
func NewEnrolmentController(enrolmentService *services.EnrolmentService) *EnrolmentController {
	return &EnrolmentController{
		enrolmentService: enrolmentService,
	}
}

// Enrol enrols the guardian's students in a course
// @Summary Enrol students in a course
// @Description Enrols one or more of the caller's potential students as a single all-or-nothing batch
// @Tags enrolments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrolRequest true "Course and student selection"
// @Success 201 {object} dto.APIResponse "Students enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or student selection"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "One or more students already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrolments [post]
func (c *EnrolmentController) Enrol(ctx *gin.Context) {
	guardianID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.EnrolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.enrolmentService.Enrol(ctx.Request.Context(), guardianID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Students enrolled successfully"))
}

// Unenrol removes one of the guardian's students from a course
// @Summary Unenrol a student from a course
// @Description Removes a student's enrolment. Removing an absent enrolment succeeds.
// @Tags enrolments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UnenrolRequest true "Course and student"
// @Success 200 {object} dto.APIResponse "Student unenrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found or owned by another guardian"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrolments [delete]
func (c *EnrolmentController) Unenrol(ctx *gin.Context) {
	guardianID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UnenrolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.enrolmentService.Unenrol(ctx.Request.Context(), guardianID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student unenrolled successfully"))
}

// ListByStudent lists a student's enrolments for the owning guardian
// @Summary List a student's enrolments
// @Description Lists the enrolments of one of the caller's potential students, newest first
// @Tags enrolments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentEnrolmentResponse} "Enrolments retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found or owned by another guardian"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/enrolments [get]
func (c *EnrolmentController) ListByStudent(ctx *gin.Context) {
	guardianID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	idStr := ctx.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrolments, err := c.enrolmentService.ListByStudent(ctx.Request.Context(), guardianID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrolments))
}

// ListByCourse lists which of the guardian's students are enrolled in a course
// @Summary List my students enrolled in a course
// @Description Lists the caller's potential students that hold an enrolment in the given course
// @Tags enrolments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Course code"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseEnrolmentResponse} "Enrolments retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{code}/enrolments [get]
func (c *EnrolmentController) ListByCourse(ctx *gin.Context) {
	guardianID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	enrolments, err := c.enrolmentService.ListByCourseForGuardian(ctx.Request.Context(), guardianID, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrolments))
}

// AdminList lists all enrolments with student and guardian details
// @Summary List all enrolments
// @Description Lists every enrolment joined with course, student and guardian details
// @Tags enrolments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminEnrolmentResponse} "Enrolments retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/enrolments [get]
func (c *EnrolmentController) AdminList(ctx *gin.Context) {
	enrolments, err := c.enrolmentService.AdminList(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrolments))
}

// AdminDelete removes any enrolment by ID
// @Summary Delete an enrolment
// @Description Removes any enrolment regardless of which guardian created it
// @Tags enrolments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrolment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Enrolment deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrolment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Enrolment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/enrolments/{id} [delete]
func (c *EnrolmentController) AdminDelete(ctx *gin.Context) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrolment ID")
		errorDetail = errorDetail.WithDetails("Enrolment ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrolmentService.AdminDelete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Enrolment deleted successfully"))
}
