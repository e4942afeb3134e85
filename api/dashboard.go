package api

import (
	"sort"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the aggregate view over a user's ledger.
type DashboardHandler struct {
	budgets *service.BudgetStore
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(budgets *service.BudgetStore) *DashboardHandler {
	return &DashboardHandler{budgets: budgets}
}

// CategoryBreakdown is the absolute expense total for one category.
type CategoryBreakdown struct {
	Category string  `json:"category" example:"Food"`
	Total    float64 `json:"total" example:"123.45"`
}

// BalancePoint is one step of the running balance series.
type BalancePoint struct {
	Date    string  `json:"date" example:"2024-01-15"`
	Balance float64 `json:"balance" example:"2974.50"`
}

// BudgetStatus compares a session budget against actual spending.
type BudgetStatus struct {
	Category   string  `json:"category" example:"Food"`
	Limit      float64 `json:"limit" example:"200"`
	Spent      float64 `json:"spent" example:"25.50"`
	OverBudget bool    `json:"over_budget" example:"false"`
}

// SummaryResponse is the dashboard payload.
type SummaryResponse struct {
	TotalIncome   float64             `json:"total_income" example:"3000.00"`
	TotalExpenses float64             `json:"total_expenses" example:"25.50"`
	Balance       float64             `json:"balance" example:"2974.50"`
	ByCategory    []CategoryBreakdown `json:"by_category"`
	BalanceSeries []BalancePoint      `json:"balance_series"`
	Budgets       []BudgetStatus      `json:"budgets"`
}

// SetBudgetsRequest maps categories to spending limits. A limit of zero
// or less removes the budget for that category.
type SetBudgetsRequest struct {
	Budgets map[string]float64 `json:"budgets" binding:"required"`
}

// GetSummary returns the dashboard aggregates
// @Summary Dashboard summary
// @Description Totals, category breakdown, running balance series, and budget status over the current user's transactions. Income total sums the positive amounts, the expense total is the absolute sum of the negative ones, and balance is income minus expenses. An optional date range narrows every aggregate.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} Response{data=SummaryResponse} "summary"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if start := c.Query("start_date"); start != "" {
		query = query.Where("date >= ?", start)
	}
	if end := c.Query("end_date"); end != "" {
		query = query.Where("date <= ?", end)
	}

	var transactions []models.Transaction
	if err := query.Order("date ASC, id ASC").Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var totalIncome, totalExpenses float64
	byCategory := make(map[string]float64)
	series := make([]BalancePoint, 0, len(transactions))
	running := 0.0

	for _, tx := range transactions {
		if tx.Amount > 0 {
			totalIncome += tx.Amount
		} else {
			totalExpenses += -tx.Amount
			byCategory[tx.Category] += -tx.Amount
		}
		running += tx.Amount
		series = append(series, BalancePoint{Date: tx.Date, Balance: running})
	}

	breakdown := make([]CategoryBreakdown, 0, len(byCategory))
	for category, total := range byCategory {
		breakdown = append(breakdown, CategoryBreakdown{Category: category, Total: total})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total != breakdown[j].Total {
			return breakdown[i].Total > breakdown[j].Total
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	budgets := h.budgets.Get(userID)
	statuses := make([]BudgetStatus, 0, len(budgets))
	for category, limit := range budgets {
		spent := byCategory[category]
		statuses = append(statuses, BudgetStatus{
			Category:   category,
			Limit:      limit,
			Spent:      spent,
			OverBudget: spent > limit,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Category < statuses[j].Category })

	Success(c, SummaryResponse{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		Balance:       totalIncome - totalExpenses,
		ByCategory:    breakdown,
		BalanceSeries: series,
		Budgets:       statuses,
	})
}

// SetBudgets replaces the session budgets
// @Summary Set session budgets
// @Description Replace the current user's per-category budgets. Budgets live in server memory only: a restart clears them, and that is intended.
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetBudgetsRequest true "budgets by category"
// @Success 200 {object} Response "saved"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/dashboard/budgets [put]
func (h *DashboardHandler) SetBudgets(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req SetBudgetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid input"))
		return
	}

	for category := range req.Budgets {
		if !models.ValidCategory(category) {
			BadRequest(c, "unknown category")
			return
		}
	}

	for category, limit := range req.Budgets {
		h.budgets.Set(userID, category, limit)
	}

	SuccessWithMessage(c, "budgets saved", nil)
}
