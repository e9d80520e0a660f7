package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/services"
	"github.com/questionmaster/api/internal/middleware"
)

// TopicController handles topic catalog operations
type TopicController struct {
	topicService services.TopicService
}

// NewTopicController creates a new TopicController
func NewTopicController(topicService services.TopicService) *TopicController {
	return &TopicController{topicService: topicService}
}

// GetAllTopics lists all topics
// @Summary List topics
// @Description Retrieves every topic with its subject name
// @Tags topics
// @Produce json
// @Success 200 {array} dto.TopicResponse "Topics"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /topics [get]
func (c *TopicController) GetAllTopics(ctx *gin.Context) {
	topics, err := c.topicService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, topics)
}

// GetTopicsBySubject lists the topics of a subject
// @Summary Get topics by subject
// @Description Retrieves all topics belonging to the given subject
// @Tags topics
// @Produce json
// @Param subjectId path int true "Subject ID"
// @Success 200 {array} dto.TopicResponse "Topics"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /topics/subject/{subjectId} [get]
func (c *TopicController) GetTopicsBySubject(ctx *gin.Context) {
	subjectID, err := strconv.ParseInt(ctx.Param("subjectId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid subject ID"))
		return
	}

	topics, err := c.topicService.GetBySubject(ctx, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, topics)
}

// GetTopicByID retrieves a topic by ID
// @Summary Get topic by ID
// @Description Retrieves a specific topic with its subject name
// @Tags topics
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} dto.TopicResponse "Topic"
// @Failure 400 {object} dto.ErrorResponse "Invalid topic ID"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /topics/{id} [get]
func (c *TopicController) GetTopicByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid topic ID"))
		return
	}

	topic, err := c.topicService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, topic)
}

// CreateTopic creates a new topic
// @Summary Create topic
// @Description Creates a new topic under a subject. Names are unique within a subject, ignoring case. Admin only.
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTopicRequest true "Topic information"
// @Success 201 {object} dto.TopicResponse "Topic created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or name already in use"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /topics [post]
func (c *TopicController) CreateTopic(ctx *gin.Context) {
	var req dto.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	topic, err := c.topicService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, topic)
}

// UpdateTopic updates a topic
// @Summary Update topic
// @Description Updates an existing topic, optionally moving it to another subject. Admin only.
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param request body dto.CreateTopicRequest true "Topic information"
// @Success 200 {object} dto.TopicResponse "Topic updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or name already in use"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /topics/{id} [put]
func (c *TopicController) UpdateTopic(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid topic ID"))
		return
	}

	var req dto.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	topic, err := c.topicService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, topic)
}

// DeleteTopic removes a topic
// @Summary Delete topic
// @Description Deletes a topic. Admin only.
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} dto.SuccessResponse "Topic deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid topic ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /topics/{id} [delete]
func (c *TopicController) DeleteTopic(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid topic ID"))
		return
	}

	if err := c.topicService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Topic deleted successfully"})
}
