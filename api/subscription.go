package api

import (
	"strconv"
	"strings"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles recurring payment tracking.
type SubscriptionHandler struct{}

// NewSubscriptionHandler creates a subscription handler.
func NewSubscriptionHandler() *SubscriptionHandler {
	return &SubscriptionHandler{}
}

// SubscriptionRequest is the create and update payload. An update
// overwrites all three fields.
type SubscriptionRequest struct {
	Name      string  `json:"name" binding:"required,max=100" example:"Netflix"`
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"15.99"`
	Frequency string  `json:"frequency" binding:"required" example:"monthly"`
}

// Create adds a subscription
// @Summary Add a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubscriptionRequest true "subscription"
// @Success 200 {object} Response{data=models.Subscription} "created"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/subscriptions [post]
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "name, amount, and frequency are required"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "name must not be empty")
		return
	}
	if !models.ValidFrequency(req.Frequency) {
		BadRequest(c, "frequency must be monthly or yearly")
		return
	}

	subscription := models.Subscription{
		UserID:    userID,
		Name:      req.Name,
		Amount:    req.Amount,
		Frequency: req.Frequency,
	}

	if err := database.DB.Create(&subscription).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to add subscription"))
		return
	}

	SuccessWithMessage(c, "subscription added", subscription)
}

// List returns the user's subscriptions
// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Subscription} "subscriptions"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/subscriptions [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var subscriptions []models.Subscription
	if err := database.DB.Where("user_id = ?", userID).Order("name ASC, id ASC").Find(&subscriptions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, subscriptions)
}

// Update overwrites a subscription
// @Summary Update a subscription
// @Description Overwrite the subscription's name, amount, and frequency. The update targets the existing record; it never creates a second one.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Param request body SubscriptionRequest true "new values"
// @Success 200 {object} Response{data=models.Subscription} "updated"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/subscriptions/{id} [put]
func (h *SubscriptionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid input"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "name must not be empty")
		return
	}
	if !models.ValidFrequency(req.Frequency) {
		BadRequest(c, "frequency must be monthly or yearly")
		return
	}

	var subscription models.Subscription
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&subscription).Error; err != nil {
		NotFound(c, "subscription not found")
		return
	}

	updates := map[string]interface{}{
		"name":      req.Name,
		"amount":    req.Amount,
		"frequency": req.Frequency,
	}
	if err := database.DB.Model(&subscription).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update subscription"))
		return
	}
	subscription.Name = req.Name
	subscription.Amount = req.Amount
	subscription.Frequency = req.Frequency

	SuccessWithMessage(c, "subscription updated", subscription)
}

// Delete removes a subscription
// @Summary Delete a subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/subscriptions/{id} [delete]
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Subscription{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "failed to delete subscription"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "subscription not found")
		return
	}

	SuccessWithMessage(c, "subscription deleted", nil)
}
