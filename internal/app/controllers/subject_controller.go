package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/services"
	"github.com/questionmaster/api/internal/middleware"
)

// SubjectController handles subject catalog operations
type SubjectController struct {
	subjectService services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService services.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

// GetSubjects lists subjects, filtered by exam slug
// @Summary Get subjects by exam
// @Description Retrieves subjects filtered by exam slug. Requires the examSlug query parameter.
// @Tags subjects
// @Produce json
// @Param examSlug query string true "Exam slug"
// @Success 200 {array} dto.SubjectResponse "Subjects"
// @Failure 400 {object} dto.ErrorResponse "Missing examSlug"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [get]
func (c *SubjectController) GetSubjects(ctx *gin.Context) {
	examSlug := ctx.Query("examSlug")
	if examSlug == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "examSlug query parameter is required"))
		return
	}

	subjects, err := c.subjectService.GetByExamSlug(ctx, examSlug)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subjects)
}

// GetSubjectsWithTopics lists an exam's subjects with their topics
// @Summary Get subjects with topics by exam
// @Description Retrieves subjects with their related topics filtered by exam slug. Requires the examSlug query parameter.
// @Tags subjects
// @Produce json
// @Param examSlug query string true "Exam slug"
// @Success 200 {object} dto.SubjectsWithTopicsResponse "Subjects with topics"
// @Failure 400 {object} dto.ErrorResponse "Missing examSlug"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/with-topics [get]
func (c *SubjectController) GetSubjectsWithTopics(ctx *gin.Context) {
	examSlug := ctx.Query("examSlug")
	if examSlug == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "examSlug query parameter is required"))
		return
	}

	result, err := c.subjectService.GetWithTopicsByExamSlug(ctx, examSlug)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetSubjectByID retrieves a subject by ID
// @Summary Get subject by ID
// @Description Retrieves a specific subject with its topic count
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.SubjectResponse "Subject"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{id} [get]
func (c *SubjectController) GetSubjectByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid subject ID"))
		return
	}

	subject, err := c.subjectService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subject)
}

// CreateSubject creates a new subject
// @Summary Create subject
// @Description Creates a new subject. Names are unique ignoring case. Admin only.
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubjectRequest true "Subject information"
// @Success 201 {object} dto.SubjectResponse "Subject created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or name already in use"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	subject, err := c.subjectService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, subject)
}

// UpdateSubject updates a subject
// @Summary Update subject
// @Description Updates an existing subject. Admin only.
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.CreateSubjectRequest true "Subject information"
// @Success 200 {object} dto.SubjectResponse "Subject updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or name already in use"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid subject ID"))
		return
	}

	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	subject, err := c.subjectService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subject)
}

// DeleteSubject removes a subject
// @Summary Delete subject
// @Description Deletes a subject and its topics. Admin only.
// @Tags subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.SuccessResponse "Subject deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid subject ID"))
		return
	}

	if err := c.subjectService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Subject deleted successfully"})
}
