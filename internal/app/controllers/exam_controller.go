package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/services"
	"github.com/questionmaster/api/internal/middleware"
)

// ExamController handles exam catalog operations, including the
// exam-scoped subject and question listings.
type ExamController struct {
	examService     services.ExamService
	subjectService  services.SubjectService
	questionService services.QuestionService
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService, subjectService services.SubjectService, questionService services.QuestionService) *ExamController {
	return &ExamController{
		examService:     examService,
		subjectService:  subjectService,
		questionService: questionService,
	}
}

// The exams subtree shares one path parameter: slug endpoints read the
// segment verbatim, ID endpoints parse the same segment as an integer.
func examIDParam(ctx *gin.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("examSlug"), 10, 64)
}

// GetAllExams lists all exams
// @Summary List exams
// @Description Retrieves all exams with their question counts
// @Tags exams
// @Produce json
// @Success 200 {array} dto.ExamResponse "Exams"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [get]
func (c *ExamController) GetAllExams(ctx *gin.Context) {
	exams, err := c.examService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exams)
}

// GetExamsSummary lists all exams in compact form
// @Summary List exam summaries
// @Description Retrieves id, name, slug and institution for every exam, ordered by name
// @Tags exams
// @Produce json
// @Success 200 {array} dto.ExamSummaryResponse "Exam summaries"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/summary [get]
func (c *ExamController) GetExamsSummary(ctx *gin.Context) {
	summaries, err := c.examService.GetAllSummaries(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summaries)
}

// GetExamByID retrieves an exam by ID
// @Summary Get exam by ID
// @Description Retrieves a specific exam with its question count
// @Tags exams
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponse "Exam"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam ID"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{id} [get]
func (c *ExamController) GetExamByID(ctx *gin.Context) {
	id, err := examIDParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid exam ID"))
		return
	}

	exam, err := c.examService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exam)
}

// CreateExam creates a new exam
// @Summary Create exam
// @Description Creates a new exam. Admin only.
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRequest true "Exam information"
// @Success 201 {object} dto.ExamResponse "Exam created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or slug already in use"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	exam, err := c.examService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, exam)
}

// UpdateExam updates an exam
// @Summary Update exam
// @Description Updates an exam's mutable fields. The slug is immutable. Admin only.
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.UpdateExamRequest true "Fields to update"
// @Success 200 {object} dto.ExamResponse "Exam updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	id, err := examIDParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid exam ID"))
		return
	}

	var req dto.UpdateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	exam, err := c.examService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exam)
}

// DeleteExam removes an exam
// @Summary Delete exam
// @Description Deletes an exam and its dependent questions. Admin only.
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.SuccessResponse "Exam deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, err := examIDParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid exam ID"))
		return
	}

	if err := c.examService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Exam deleted successfully"})
}

// GetSubjectsByExam lists the subjects linked to an exam
// @Summary Get subjects by exam
// @Description Retrieves all subjects linked to the exam identified by slug
// @Tags exams
// @Produce json
// @Param examSlug path string true "Exam slug"
// @Success 200 {array} dto.SubjectResponse "Subjects"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{examSlug}/subjects [get]
func (c *ExamController) GetSubjectsByExam(ctx *gin.Context) {
	subjects, err := c.subjectService.GetByExamSlug(ctx, ctx.Param("examSlug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subjects)
}

// GetSubjectsWithTopicsByExam lists an exam's subjects with their topics
// @Summary Get subjects with topics by exam
// @Description Retrieves the exam's subjects, each with its topics
// @Tags exams
// @Produce json
// @Param examSlug path string true "Exam slug"
// @Success 200 {object} dto.SubjectsWithTopicsResponse "Subjects with topics"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{examSlug}/subjects/with-topics [get]
func (c *ExamController) GetSubjectsWithTopicsByExam(ctx *gin.Context) {
	result, err := c.subjectService.GetWithTopicsByExamSlug(ctx, ctx.Param("examSlug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetQuestionsByExam lists an exam's active questions with filters
// @Summary Get questions by exam
// @Description Retrieves active questions for the exam with optional filters and pagination. Authenticated callers additionally get their own answer on each question and may filter by answer status.
// @Tags exams
// @Produce json
// @Param examSlug path string true "Exam slug"
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size" default(20)
// @Param subjectIds query []int false "Filter by subject IDs"
// @Param years query []int false "Filter by years"
// @Param questionType query string false "Filter by question type" Enums(MULTIPLE_CHOICE, TRUE_FALSE)
// @Param topicIds query []int false "Filter by topic IDs"
// @Param answerStatus query string false "Filter by the caller's answer status" Enums(ANSWERED, UNANSWERED, CORRECT, INCORRECT)
// @Success 200 {object} dto.QuestionListResponse "Questions page"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{examSlug}/questions [get]
func (c *ExamController) GetQuestionsByExam(ctx *gin.Context) {
	var req dto.QuestionFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	questions, err := c.questionService.List(ctx, ctx.Param("examSlug"), req, optionalUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, questions)
}
