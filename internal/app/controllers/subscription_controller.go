package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/services"
	"github.com/questionmaster/api/internal/middleware"
)

// SubscriptionController handles the subscription endpoints. Mutations are
// driven by the billing backend via the service API key; reads and delete
// are regular bearer-token endpoints.
type SubscriptionController struct {
	subscriptionService services.SubscriptionService
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(subscriptionService services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

// CreateSubscription registers a subscription for a user
// @Summary Create subscription
// @Description Creates a subscription linking a user to an exam. New subscriptions start INACTIVE until billing confirms them.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateUserSubscriptionRequest true "Subscription information"
// @Success 201 {object} dto.UserSubscriptionResponse "Subscription created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "API key missing"
// @Failure 403 {object} dto.ErrorResponse "Invalid API key"
// @Failure 404 {object} dto.ErrorResponse "User or exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /internal/user-subscriptions [post]
func (c *SubscriptionController) CreateSubscription(ctx *gin.Context) {
	var req dto.CreateUserSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	subscription, err := c.subscriptionService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, subscription)
}

// GetSubscriptionByID retrieves a subscription by ID
// @Summary Get subscription by ID
// @Description Retrieves a specific subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.UserSubscriptionResponse "Subscription"
// @Failure 400 {object} dto.ErrorResponse "Invalid subscription ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Subscription not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user-subscriptions/{id} [get]
func (c *SubscriptionController) GetSubscriptionByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid subscription ID"))
		return
	}

	subscription, err := c.subscriptionService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subscription)
}

// ListSubscriptions lists a user's subscriptions
// @Summary List subscriptions by user
// @Description Retrieves all subscriptions of the given user, newest first. Requires the userId query parameter.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Success 200 {array} dto.UserSubscriptionResponse "Subscriptions"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid userId"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user-subscriptions [get]
func (c *SubscriptionController) ListSubscriptions(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Query("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "userId query parameter is required"))
		return
	}

	subscriptions, err := c.subscriptionService.ListByUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subscriptions)
}

// UpdateSubscriptionStatus transitions a subscription's status
// @Summary Update subscription status
// @Description Sets the subscription status to INACTIVE, ACTIVE or CANCELED
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subscription ID"
// @Param request body dto.UpdateUserSubscriptionStatusRequest true "New status"
// @Success 200 {object} dto.UserSubscriptionResponse "Subscription updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "API key missing"
// @Failure 403 {object} dto.ErrorResponse "Invalid API key"
// @Failure 404 {object} dto.ErrorResponse "Subscription not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /internal/user-subscriptions/{id}/status [patch]
func (c *SubscriptionController) UpdateSubscriptionStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid subscription ID"))
		return
	}

	var req dto.UpdateUserSubscriptionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	subscription, err := c.subscriptionService.UpdateStatus(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subscription)
}

// DeleteSubscription removes a subscription
// @Summary Delete subscription
// @Description Deletes a subscription record
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SuccessResponse "Subscription deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid subscription ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Subscription not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user-subscriptions/{id} [delete]
func (c *SubscriptionController) DeleteSubscription(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid subscription ID"))
		return
	}

	if err := c.subscriptionService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Subscription deleted successfully"})
}
