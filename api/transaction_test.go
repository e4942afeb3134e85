package api

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func transactionColumns() []string {
	return []string{"id", "user_id", "date", "category", "amount", "type", "notes", "image_url", "created_at", "updated_at", "deleted_at"}
}

func TestTransactionHandler_Create_Expense(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions", NewTransactionHandler(testStorage(t)).Create)

	form := url.Values{}
	form.Set("date", "2024-01-15")
	form.Set("category", "Food")
	form.Set("amount", "25.50")
	form.Set("type", "Expense")
	form.Set("notes", "lunch")
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "transaction added", resp["message"])
	data := resp["data"].(map[string]interface{})
	// expenses are stored with a negative sign
	assert.Equal(t, -25.5, data["amount"])
	assert.Equal(t, "Expense", data["type"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create_Income(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions", NewTransactionHandler(testStorage(t)).Create)

	form := url.Values{}
	form.Set("date", "2024-01-01")
	form.Set("category", "Salary")
	form.Set("amount", "3000")
	form.Set("type", "Income")
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 3000.0, data["amount"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create_InvalidInput(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions", NewTransactionHandler(testStorage(t)).Create)

	cases := []struct {
		name string
		form map[string]string
	}{
		{"missing date", map[string]string{"category": "Food", "amount": "10", "type": "Expense"}},
		{"bad date format", map[string]string{"date": "15/01/2024", "category": "Food", "amount": "10", "type": "Expense"}},
		{"unknown category", map[string]string{"date": "2024-01-15", "category": "Groceries", "amount": "10", "type": "Expense"}},
		{"zero amount", map[string]string{"date": "2024-01-15", "category": "Food", "amount": "0", "type": "Expense"}},
		{"negative amount", map[string]string{"date": "2024-01-15", "category": "Food", "amount": "-5", "type": "Expense"}},
		{"non-numeric amount", map[string]string{"date": "2024-01-15", "category": "Food", "amount": "ten", "type": "Expense"}},
		{"bad type", map[string]string{"date": "2024-01-15", "category": "Food", "amount": "10", "type": "Transfer"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := url.Values{}
			for k, v := range tc.form {
				form.Set(k, v)
			}
			req := httptest.NewRequest("POST", "/transactions", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, 400, w.Code)
		})
	}
}

func TestTransactionHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows(transactionColumns()).
			AddRow(2, 1, "2024-01-15", "Food", -25.5, "Expense", "lunch", "", time.Now(), time.Now(), nil).
			AddRow(1, 1, "2024-01-01", "Salary", 3000, "Income", "", "", time.Now(), time.Now(), nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/transactions", NewTransactionHandler(testStorage(t)).List)

	req := httptest.NewRequest("GET", "/transactions?page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	list := data["list"].([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "2024-01-15", first["date"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Get_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows(transactionColumns()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/transactions/:id", NewTransactionHandler(testStorage(t)).Get)

	req := httptest.NewRequest("GET", "/transactions/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_GetCategories(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/categories", NewTransactionHandler(testStorage(t)).GetCategories)

	req := httptest.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	assert.ElementsMatch(t, []interface{}{"Food", "Rent", "Salary", "Entertainment", "Other"}, list)
}
