package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(showStack bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StackTraces(showStack))
	return r
}

func perform(r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestJSON_Success(t *testing.T) {
	r := setupTestRouter(false)
	r.GET("/ok", func(c *gin.Context) {
		JSON(c, http.StatusCreated, gin.H{"id": "1"}, "Created")
	})

	w, body := perform(r, "/ok")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(201), body["statusCode"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Created", body["message"])
	assert.Equal(t, map[string]interface{}{"id": "1"}, body["data"])
}

func TestError_AppError(t *testing.T) {
	r := setupTestRouter(false)
	r.GET("/conflict", func(c *gin.Context) {
		Error(c, apperror.Conflict("User with email or username already exists"))
	})

	w, body := perform(r, "/conflict")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, body["data"])
	assert.Equal(t, []interface{}{}, body["errors"])
	_, hasStack := body["stack"]
	assert.False(t, hasStack)
}

func TestError_UnknownErrorInProduction(t *testing.T) {
	r := setupTestRouter(false)
	r.GET("/boom", func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})

	w, body := perform(r, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestError_StackOutsideProduction(t *testing.T) {
	r := setupTestRouter(true)
	r.GET("/boom", func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})

	w, body := perform(r, "/boom")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, body["stack"])
	assert.Contains(t, body["errors"], "pq: connection refused")
}
