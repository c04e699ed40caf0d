package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/app/services"
	"github.com/veles/academia/internal/middleware"
)

// StudentPortalController handles the student-facing endpoints
type StudentPortalController struct {
	portalService services.StudentPortalService
}

// NewStudentPortalController creates a new StudentPortalController
func NewStudentPortalController(portalService services.StudentPortalService) *StudentPortalController {
	return &StudentPortalController{portalService: portalService}
}

// MyEnrollments lists the calling student's enrollments
func (c *StudentPortalController) MyEnrollments(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	var filter dto.EnrollmentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	enrollments, err := c.portalService.MyEnrollments(ctx.Request.Context(), principal, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments, ""))
}

// GetEnrollment retrieves one of the calling student's enrollments
func (c *StudentPortalController) GetEnrollment(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.portalService.GetEnrollment(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment, ""))
}

// UploadSeminar attaches a seminar document to the calling student's
// enrollment
func (c *StudentPortalController) UploadSeminar(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("seminarFile")
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	enrollment, err := c.portalService.UploadSeminar(ctx.Request.Context(), principal, id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment, "Seminar document uploaded"))
}

// SetProjectURL records the project link on the calling student's enrollment
func (c *StudentPortalController) SetProjectURL(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ProjectURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	enrollment, err := c.portalService.SetProjectURL(ctx.Request.Context(), principal, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment, "Project URL saved"))
}

// DeleteSeminar removes the seminar document from the calling student's
// enrollment
func (c *StudentPortalController) DeleteSeminar(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.portalService.DeleteSeminar(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Seminar document removed"))
}

// DeleteProjectURL clears the project link on the calling student's
// enrollment
func (c *StudentPortalController) DeleteProjectURL(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.portalService.ClearProjectURL(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Project URL removed"))
}
