package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/app/services"
	"github.com/tomwyatt/hillcrest/internal/middleware"
)

// CatalogueController handles subject and course catalogue endpoints
type CatalogueController struct {
	catalogueService *services.CatalogueService
}

// NewCatalogueController creates a new CatalogueController
func NewCatalogueController(catalogueService *services.CatalogueService) *CatalogueController {
	return &CatalogueController{
		catalogueService: catalogueService,
	}
}

// CreateSubject adds a subject to the catalogue
// @Summary Create a subject
// @Description Creates a subject keyed by a three uppercase letter code with a head of department
// @Tags catalogue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubjectRequest true "Subject information"
// @Success 201 {object} dto.APIResponse{data=models.Subject} "Subject created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or subject code"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Head of department user not found"
// @Failure 409 {object} dto.ErrorResponse "Subject already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [post]
func (c *CatalogueController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	subject, err := c.catalogueService.CreateSubject(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(subject))
}

// ListSubjects lists the subject catalogue
// @Summary List subjects
// @Description Lists all subjects with their head of department names
// @Tags catalogue
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Subject} "Subjects retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [get]
func (c *CatalogueController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.catalogueService.ListSubjects(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subjects))
}

// GetSubject retrieves one subject
// @Summary Get subject details
// @Description Retrieves a single subject by its three letter code
// @Tags catalogue
// @Accept json
// @Produce json
// @Param code path string true "Subject code"
// @Success 200 {object} dto.APIResponse{data=models.Subject} "Subject retrieved"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{code} [get]
func (c *CatalogueController) GetSubject(ctx *gin.Context) {
	subject, err := c.catalogueService.GetSubject(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subject))
}

// DeleteSubject removes a subject with its dependent records
// @Summary Delete a subject
// @Description Deletes a subject together with its courses and their enrolments
// @Tags catalogue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Subject code"
// @Success 200 {object} dto.APIResponse "Subject deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{code} [delete]
func (c *CatalogueController) DeleteSubject(ctx *gin.Context) {
	if err := c.catalogueService.DeleteSubject(ctx.Request.Context(), ctx.Param("code")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Subject deleted successfully"))
}

// CreateCourse adds a course to the catalogue
// @Summary Create a course
// @Description Creates a course hosted by a user, optionally linked to a subject
// @Tags catalogue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or year level"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Host user or linked subject not found"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CatalogueController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	course, err := c.catalogueService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// ListCourses lists the course catalogue
// @Summary List courses
// @Description Lists all courses with host and subject details, optionally filtered by faculty
// @Tags catalogue
// @Accept json
// @Produce json
// @Param faculty query string false "Filter by faculty of the linked subject"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CatalogueController) ListCourses(ctx *gin.Context) {
	courses, err := c.catalogueService.ListCourses(ctx.Request.Context(), ctx.Query("faculty"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// GetCourse retrieves one course
// @Summary Get course details
// @Description Retrieves a single course by its code
// @Tags catalogue
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{code} [get]
func (c *CatalogueController) GetCourse(ctx *gin.Context) {
	course, err := c.catalogueService.GetCourse(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// DeleteCourse removes a course with its enrolments
// @Summary Delete a course
// @Description Deletes a course together with its enrolments
// @Tags catalogue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Course code"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{code} [delete]
func (c *CatalogueController) DeleteCourse(ctx *gin.Context) {
	if err := c.catalogueService.DeleteCourse(ctx.Request.Context(), ctx.Param("code")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted successfully"))
}
