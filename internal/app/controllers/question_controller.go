package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/services"
	"github.com/questionmaster/api/internal/middleware"
)

// QuestionController handles question management and answer submission
type QuestionController struct {
	questionService services.QuestionService
	answerService   services.AnswerService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService services.QuestionService, answerService services.AnswerService) *QuestionController {
	return &QuestionController{
		questionService: questionService,
		answerService:   answerService,
	}
}

// GetQuestionByID retrieves a question by ID
// @Summary Get question by ID
// @Description Retrieves a question with its subject, topics and alternatives. Authenticated callers additionally get their own answer when present.
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse "Question"
// @Failure 400 {object} dto.ErrorResponse "Invalid question ID"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestionByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid question ID"))
		return
	}

	question, err := c.questionService.GetByID(ctx, id, optionalUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, question)
}

// CreateQuestion creates a new question with its alternatives
// @Summary Create question
// @Description Creates a new question with alternatives and topic links. Admin only.
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuestionRequest true "Question information"
// @Success 201 {object} dto.QuestionResponse "Question created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Subject, exam or topic not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
		return
	}

	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	question, err := c.questionService.Create(ctx, req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, question)
}

// UpdateQuestion replaces a question's content
// @Summary Update question
// @Description Updates a question, replacing its topic links and alternatives. Admin only.
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Question information"
// @Success 200 {object} dto.QuestionResponse "Question updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid question ID"))
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	question, err := c.questionService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question
// @Summary Delete question
// @Description Deletes a question with its alternatives and answers. Admin only.
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} dto.SuccessResponse "Question deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid question ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid question ID"))
		return
	}

	if err := c.questionService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Question deleted successfully"})
}

// AnswerQuestion records the caller's answer to a question
// @Summary Answer question
// @Description Submits the caller's chosen alternative. A question can be answered once per user; the response reveals the correct alternative.
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body dto.AnswerQuestionRequest true "Chosen alternative"
// @Success 201 {object} dto.AnswerResponse "Answer recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data, alternative mismatch or question already answered"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Question or alternative not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/answer [post]
func (c *QuestionController) AnswerQuestion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
		return
	}

	questionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid question ID"))
		return
	}

	var req dto.AnswerQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	answer, err := c.answerService.Submit(ctx, questionID, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, answer)
}
