package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/usecase"
	"vidtube/pkg/apperror"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "error")
}

// asUser simulates AuthMiddleware for handler tests.
func asUser(userID string, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextTokenID, "jti-"+userID)
		next(c)
	}
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func samplePair() *jwt.TokenPair {
	return &jwt.TokenPair{
		AccessToken:      "access-token",
		RefreshToken:     "refresh-token",
		AccessExpiresAt:  time.Now().Add(15 * time.Minute),
		RefreshExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func TestRegister_PassesFormAndFiles(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, false, testLogger())
	router := setupTestRouter()
	router.POST("/register", handler.Register)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	_ = mw.WriteField("fullname", "Alice Doe")
	_ = mw.WriteField("email", "alice@example.com")
	_ = mw.WriteField("username", "Alice")
	_ = mw.WriteField("password", "secret")
	part, _ := mw.CreateFormFile("avatar", "me.png")
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	mockUseCase.On("Register", mock.Anything, mock.MatchedBy(func(in usecase.RegisterInput) bool {
		return in.Username == "Alice" && in.FullName == "Alice Doe" &&
			in.Avatar != nil && in.Avatar.Filename == "me.png" && in.Avatar.Size == int64(len("png-bytes")) &&
			in.CoverImage == nil
	})).Return(&entity.User{ID: "user-1", Username: "alice"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.Contains(t, string(env.Data), `"username":"alice"`)
	mockUseCase.AssertExpectations(t)
}

func TestLogin_SetsCookiesAndReturnsTokens(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, true, testLogger())
	router := setupTestRouter()
	router.POST("/login", handler.Login)

	mockUseCase.On("Login", mock.Anything, usecase.LoginInput{Username: "alice", Password: "secret"}).
		Return(&usecase.AuthResult{User: &entity.User{ID: "user-1"}, Tokens: samplePair()}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", LoginRequest{Username: "alice", Password: "secret"}))

	assert.Equal(t, http.StatusOK, w.Code)
	access := cookieByName(w, middleware.AccessTokenCookie)
	require.NotNil(t, access)
	assert.Equal(t, "access-token", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	refresh := cookieByName(w, middleware.RefreshTokenCookie)
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-token", refresh.Value)

	var data AuthResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, "access-token", data.AccessToken)
	assert.Equal(t, "user-1", data.User.ID)
}

func TestLogin_ErrorEnvelope(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, false, testLogger())
	router := setupTestRouter()
	router.POST("/login", handler.Login)

	mockUseCase.On("Login", mock.Anything, mock.Anything).Return(nil, apperror.Unauthorized("Invalid user credentials"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", LoginRequest{Email: "a@b.c", Password: "bad"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid user credentials", env.Message)
	assert.Nil(t, cookieByName(w, middleware.AccessTokenCookie))
}

func TestLogin_MalformedBody(t *testing.T) {
	handler := NewUserHandler(new(MockUserUseCase), false, testLogger())
	router := setupTestRouter()
	router.POST("/login", handler.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w).Errors)
}

func TestRefreshToken_PrefersCookieThenBody(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, false, testLogger())
	router := setupTestRouter()
	router.POST("/refresh-token", handler.RefreshToken)

	mockUseCase.On("RefreshToken", mock.Anything, "from-cookie").Return(samplePair(), nil).Once()
	mockUseCase.On("RefreshToken", mock.Anything, "from-body").Return(samplePair(), nil).Once()

	w := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/refresh-token", RefreshTokenRequest{RefreshToken: "from-body"})
	req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: "from-cookie"})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/refresh-token", RefreshTokenRequest{RefreshToken: "from-body"}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, cookieByName(w, middleware.RefreshTokenCookie))

	mockUseCase.AssertExpectations(t)
}

func TestLogout_ClearsCookies(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, false, testLogger())
	router := setupTestRouter()
	router.POST("/logout", asUser("user-1", handler.Logout))

	mockUseCase.On("Logout", mock.Anything, "user-1", "jti-user-1", time.Time{}).Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	access := cookieByName(w, middleware.AccessTokenCookie)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.True(t, access.MaxAge < 0)
	mockUseCase.AssertExpectations(t)
}

func TestProtectedHandler_WithoutUser(t *testing.T) {
	handler := NewUserHandler(new(MockUserUseCase), false, testLogger())
	router := setupTestRouter()
	router.GET("/current-user", handler.GetCurrentUser)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/current-user", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized request", decode(t, w).Message)
}

func TestUpdateAccount_Conflict(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, false, testLogger())
	router := setupTestRouter()
	router.PATCH("/update-account-details", asUser("user-1", handler.UpdateAccount))

	mockUseCase.On("UpdateAccount", mock.Anything, "user-1", "Alice", "taken@example.com").
		Return(nil, apperror.Conflict("Email is already in use"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPatch, "/update-account-details",
		UpdateAccountRequest{FullName: "Alice", Email: "taken@example.com"}))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetChannelProfile_PassesViewer(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, false, testLogger())
	router := setupTestRouter()
	router.GET("/channel/:username", asUser("viewer-1", handler.GetChannelProfile))

	mockUseCase.On("GetChannelProfile", mock.Anything, "bob", "viewer-1").
		Return(&entity.ChannelProfile{Username: "bob", SubscribersCount: 3, IsSubscribed: true}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/channel/bob", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"isSubscribed":true`)
}
