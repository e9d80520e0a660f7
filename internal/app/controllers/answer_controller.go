package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/services"
	"github.com/questionmaster/api/internal/middleware"
)

// AnswerController handles the caller's answer history and statistics
type AnswerController struct {
	answerService services.AnswerService
}

// NewAnswerController creates a new AnswerController
func NewAnswerController(answerService services.AnswerService) *AnswerController {
	return &AnswerController{answerService: answerService}
}

// GetMyAnswers lists the caller's answers
// @Summary Get my answers
// @Description Retrieves every answer submitted by the authenticated user, newest first
// @Tags answers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AnswerResponse "Answers"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /answers/my-answers [get]
func (c *AnswerController) GetMyAnswers(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
		return
	}

	answers, err := c.answerService.GetUserAnswers(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, answers)
}

// GetMyStats returns the caller's answer statistics
// @Summary Get my statistics
// @Description Retrieves the authenticated user's answer totals and accuracy
// @Tags answers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserStatsResponse "Statistics"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /answers/my-stats [get]
func (c *AnswerController) GetMyStats(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
		return
	}

	stats, err := c.answerService.GetUserStats(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
