package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscriptionColumns() []string {
	return []string{"id", "user_id", "name", "amount", "frequency", "created_at", "updated_at", "deleted_at"}
}

func TestSubscriptionHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `subscriptions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/subscriptions", NewSubscriptionHandler().Create)

	body := `{"name":"Netflix","amount":15.99,"frequency":"monthly"}`
	req := httptest.NewRequest("POST", "/subscriptions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Netflix", data["name"])
	assert.Equal(t, 15.99, data["amount"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionHandler_Create_InvalidFrequency(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/subscriptions", NewSubscriptionHandler().Create)

	body := `{"name":"Netflix","amount":15.99,"frequency":"weekly"}`
	req := httptest.NewRequest("POST", "/subscriptions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "monthly or yearly")
}

func TestSubscriptionHandler_Update_Overwrites(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `subscriptions`").
		WillReturnRows(sqlmock.NewRows(subscriptionColumns()).
			AddRow(1, 1, "Netflix", 15.99, "monthly", time.Now(), time.Now(), nil))

	// price change updates the existing record in place
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `subscriptions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/subscriptions/:id", NewSubscriptionHandler().Update)

	body := `{"name":"Netflix","amount":17.99,"frequency":"monthly"}`
	req := httptest.NewRequest("PUT", "/subscriptions/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 17.99, data["amount"])
	assert.Equal(t, float64(1), data["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionHandler_Update_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `subscriptions`").
		WillReturnRows(sqlmock.NewRows(subscriptionColumns()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/subscriptions/:id", NewSubscriptionHandler().Update)

	body := `{"name":"Netflix","amount":17.99,"frequency":"monthly"}`
	req := httptest.NewRequest("PUT", "/subscriptions/99", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `subscriptions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/subscriptions/:id", NewSubscriptionHandler().Delete)

	req := httptest.NewRequest("DELETE", "/subscriptions/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
