package api

import (
	"math"
	"strconv"
	"strings"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles the append-only transaction ledger.
type TransactionHandler struct {
	storage *service.Storage
}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler(storage *service.Storage) *TransactionHandler {
	return &TransactionHandler{storage: storage}
}

// CreateTransactionRequest is the submission form. Amount is the entered
// magnitude as text; the sign is derived from Type on the server.
type CreateTransactionRequest struct {
	Date     string `form:"date" binding:"required" example:"2024-01-01"`
	Category string `form:"category" binding:"required" example:"Food"`
	Amount   string `form:"amount" binding:"required" example:"25.50"`
	Type     string `form:"type" binding:"required" example:"Expense"`
	Notes    string `form:"notes" example:"lunch"`
}

// TransactionListRequest is the list query.
type TransactionListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	Category  string `form:"category" example:"Food"`
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
}

// Create records a transaction
// @Summary Add a transaction
// @Description Record an income or expense. The stored amount is the entered magnitude signed by type: positive for Income, negative for Expense. An optional receipt image may be attached as the "image" file part; a failed upload aborts the whole submission. There is no idempotency key, so a client retry can create a duplicate entry.
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param date formData string true "Calendar date (YYYY-MM-DD)"
// @Param category formData string true "Category" Enums(Food,Rent,Salary,Entertainment,Other)
// @Param amount formData string true "Positive amount"
// @Param type formData string true "Type" Enums(Income,Expense)
// @Param notes formData string false "Notes"
// @Param image formData file false "Receipt image"
// @Success 200 {object} Response{data=models.Transaction} "created"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "date, amount, and category are required"))
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if !models.ValidCategory(req.Category) {
		BadRequest(c, "unknown category")
		return
	}

	if !models.ValidTransactionType(req.Type) {
		BadRequest(c, "type must be Income or Expense")
		return
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) || amount <= 0 {
		BadRequest(c, "amount must be a positive number")
		return
	}

	// the image upload happens before the ledger write; a storage
	// failure aborts the submission with nothing recorded
	imageURL := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			InternalError(c, "failed to read image upload")
			return
		}
		imageURL, err = h.storage.Save("transaction-images", userID, file.Filename, src)
		src.Close()
		if err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to store image"))
			return
		}
	}

	transaction := models.Transaction{
		UserID:   userID,
		Date:     req.Date,
		Category: req.Category,
		Amount:   models.SignedAmount(amount, req.Type),
		Type:     req.Type,
		Notes:    req.Notes,
		ImageURL: imageURL,
	}

	if err := database.DB.Create(&transaction).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to add transaction"))
		return
	}

	SuccessWithMessage(c, "transaction added", transaction)
}

// List returns the user's transactions
// @Summary List transactions
// @Description The current user's transactions, newest date first, with optional category and date-range filters.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(10)
// @Param category query string false "Category filter"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "transactions"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid query"))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	// dates are stored as YYYY-MM-DD strings, so range filters compare
	// lexicographically
	if req.StartDate != "" {
		query = query.Where("date >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("date <= ?", req.EndDate)
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC, id DESC").Offset(offset).Limit(req.PageSize).Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     transactions,
	})
}

// Get returns one transaction
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} Response{data=models.Transaction} "transaction"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		NotFound(c, "transaction not found")
		return
	}

	Success(c, transaction)
}

// GetCategories lists the closed category set
// @Summary List categories
// @Tags transactions
// @Produce json
// @Success 200 {object} Response{data=[]string} "categories"
// @Router /api/v1/categories [get]
func (h *TransactionHandler) GetCategories(c *gin.Context) {
	Success(c, models.GetCategories())
}
