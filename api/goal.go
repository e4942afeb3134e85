package api

import (
	"strconv"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// GoalHandler handles savings goals.
type GoalHandler struct{}

// NewGoalHandler creates a goal handler.
func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// CreateGoalRequest is the goal creation payload.
type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required,max=100" example:"Emergency Fund"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0" example:"1000"`
	Deadline     string  `json:"deadline" binding:"required" example:"2025-12-31"`
}

// UpdateProgressRequest sets the saved amount to an absolute value.
type UpdateProgressRequest struct {
	CurrentAmount float64 `json:"current_amount" binding:"gte=0" example:"250"`
}

// GoalWithProgress is a goal plus its derived completion percentage.
type GoalWithProgress struct {
	models.Goal
	Progress float64 `json:"progress"`
}

// Create adds a savings goal
// @Summary Create a goal
// @Description Create a savings goal with a target amount and a deadline. The deadline must be today or later; it is checked once at creation and never again.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "goal"
// @Success 200 {object} Response{data=GoalWithProgress} "created"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "name, target amount, and deadline are required"))
		return
	}

	if _, err := time.Parse("2006-01-02", req.Deadline); err != nil {
		BadRequest(c, "deadline must be YYYY-MM-DD")
		return
	}
	// dates are zero-padded, so string comparison orders correctly
	if req.Deadline < time.Now().Format("2006-01-02") {
		BadRequest(c, "deadline must not be in the past")
		return
	}

	goal := models.Goal{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: 0,
		Deadline:      req.Deadline,
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create goal"))
		return
	}

	SuccessWithMessage(c, "goal created", GoalWithProgress{Goal: goal, Progress: goal.Progress()})
}

// List returns the user's goals
// @Summary List goals
// @Description Each goal is returned with its progress percentage, capped at 100 even when the saved amount exceeds the target.
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]GoalWithProgress} "goals"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).Order("deadline ASC, id ASC").Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	result := make([]GoalWithProgress, 0, len(goals))
	for i := range goals {
		result = append(result, GoalWithProgress{Goal: goals[i], Progress: goals[i].Progress()})
	}

	Success(c, result)
}

// UpdateProgress sets the saved amount
// @Summary Update goal progress
// @Description Set the goal's saved amount to an absolute value. The amount may exceed the target; only the reported progress is capped.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body UpdateProgressRequest true "new saved amount"
// @Success 200 {object} Response{data=GoalWithProgress} "updated"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/goals/{id}/progress [put]
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid input"))
		return
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "goal not found")
		return
	}

	if err := database.DB.Model(&goal).Update("current_amount", req.CurrentAmount).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update goal"))
		return
	}
	goal.CurrentAmount = req.CurrentAmount

	SuccessWithMessage(c, "goal updated", GoalWithProgress{Goal: goal, Progress: goal.Progress()})
}

// Allocate adds the current net balance to a goal
// @Summary Allocate net balance
// @Description Add the user's current net balance (the sum of all signed transaction amounts) to the goal's saved amount. The operation is not idempotent: each call adds the balance again, and a negative balance reduces the saved amount.
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} Response{data=GoalWithProgress} "allocated"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/goals/{id}/allocate [post]
func (h *GoalHandler) Allocate(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "goal not found")
		return
	}

	var netBalance float64
	if err := database.DB.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&netBalance).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to compute balance"))
		return
	}

	newAmount := goal.CurrentAmount + netBalance
	if err := database.DB.Model(&goal).Update("current_amount", newAmount).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update goal"))
		return
	}
	goal.CurrentAmount = newAmount

	SuccessWithMessage(c, "balance allocated", GoalWithProgress{Goal: goal, Progress: goal.Progress()})
}

// Delete removes a goal
// @Summary Delete a goal
// @Description Delete a goal regardless of its progress.
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "failed to delete goal"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "goal not found")
		return
	}

	SuccessWithMessage(c, "goal deleted", nil)
}
