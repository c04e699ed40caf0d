package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/app/services"
	"github.com/veles/academia/internal/middleware"
)

// GradebookController handles the teacher-facing endpoints
type GradebookController struct {
	gradebookService services.GradebookService
}

// NewGradebookController creates a new GradebookController
func NewGradebookController(gradebookService services.GradebookService) *GradebookController {
	return &GradebookController{gradebookService: gradebookService}
}

// MyCourses lists the calling teacher's courses
func (c *GradebookController) MyCourses(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	courses, err := c.gradebookService.MyCourses(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses, ""))
}

// Roster retrieves the filtered roster of one of the calling teacher's
// courses
func (c *GradebookController) Roster(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var filter dto.EnrollmentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	roster, err := c.gradebookService.Roster(ctx.Request.Context(), principal, id, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(roster, ""))
}

// GetEnrollment retrieves one enrollment of the calling teacher's courses
func (c *GradebookController) GetEnrollment(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.gradebookService.GetEnrollment(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment, ""))
}

// UpdateGrading applies grading edits to an enrollment
func (c *GradebookController) UpdateGrading(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		abortMissingPrincipal(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.GradingUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	enrollment, err := c.gradebookService.UpdateGrading(ctx.Request.Context(), principal, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment, "Grading updated"))
}

func abortMissingPrincipal(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
}
