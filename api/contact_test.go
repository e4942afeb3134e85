package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []uint
	err       error
}

func (p *fakePublisher) PublishContactCreated(_ context.Context, id uint) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, id)
	return nil
}

func TestContactHandler_Submit_Anonymous(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `contact_messages`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	publisher := &fakePublisher{}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/contact", NewContactHandler(publisher).Submit)

	body := `{"name":"Jane","email":"jane@example.com","message":"Hello!"}`
	req := httptest.NewRequest("POST", "/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "anonymous", data["uid"])
	assert.Equal(t, []uint{7}, publisher.published)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactHandler_Submit_SignedIn(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `contact_messages`").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(42))
	router.POST("/contact", NewContactHandler(&fakePublisher{}).Submit)

	body := `{"name":"Jane","email":"jane@example.com","message":"Hello!"}`
	req := httptest.NewRequest("POST", "/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "42", data["uid"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactHandler_Submit_Invalid(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/contact", NewContactHandler(&fakePublisher{}).Submit)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"jane@example.com","message":"Hello!"}`},
		{"whitespace name", `{"name":"   ","email":"jane@example.com","message":"Hello!"}`},
		{"missing email", `{"name":"Jane","message":"Hello!"}`},
		{"bad email", `{"name":"Jane","email":"not-an-email","message":"Hello!"}`},
		{"missing message", `{"name":"Jane","email":"jane@example.com"}`},
	}

	// nothing is stored when validation fails, hence no mock
	// expectations
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/contact", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, 400, w.Code)
		})
	}
}

func TestContactHandler_Submit_PublishFailureStillSucceeds(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `contact_messages`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/contact", NewContactHandler(publisher).Submit)

	body := `{"name":"Jane","email":"jane@example.com","message":"Hello!"}`
	req := httptest.NewRequest("POST", "/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactHandler_Submit_NilPublisher(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `contact_messages`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/contact", NewContactHandler(nil).Submit)

	body := `{"name":"Jane","email":"jane@example.com","message":"Hello!"}`
	req := httptest.NewRequest("POST", "/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
