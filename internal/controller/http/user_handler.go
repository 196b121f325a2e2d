package http

import (
	"context"
	"net/http"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/usecase"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase   usecase.UserUseCase
	secureCookies bool
	logger        *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, secureCookies bool, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase:   userUseCase,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	User         *entity.User `json:"user,omitempty"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Register godoc
// @Summary      Register a new user
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullname    formData  string  true   "Full name"
// @Param        email       formData  string  true   "Email"
// @Param        username    formData  string  true   "Username"
// @Param        password    formData  string  true   "Password"
// @Param        avatar      formData  file    true   "Avatar image"
// @Param        coverImage  formData  file    false  "Cover image"
// @Success      201  {object}  response.Envelope{data=entity.User}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      409  {object}  response.ErrorEnvelope
// @Router       /user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	avatar, closeAvatar, err := formUpload(c, "avatar")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAvatar()

	cover, closeCover, err := formUpload(c, "coverImage")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeCover()

	user, err := h.userUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		FullName:   c.PostForm("fullname"),
		Email:      c.PostForm("email"),
		Username:   c.PostForm("username"),
		Password:   c.PostForm("password"),
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, user, "User registered successfully")
}

// Login godoc
// @Summary      Log in with username or email
// @Description  Sets httpOnly accessToken and refreshToken cookies and returns both tokens.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200  {object}  response.Envelope{data=AuthResponse}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      401  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userUseCase.Login(c.Request.Context(), usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAuthCookies(c, result.Tokens)
	response.JSON(c, http.StatusOK, AuthResponse{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the stored refresh token, revokes the current access token and clears cookies.
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.ErrorEnvelope
// @Router       /user/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	tokenID := c.GetString(middleware.ContextTokenID)
	if err := h.userUseCase.Logout(c.Request.Context(), userID, tokenID, middleware.TokenExpiry(c)); err != nil {
		response.Error(c, err)
		return
	}

	h.clearAuthCookies(c)
	response.JSON(c, http.StatusOK, gin.H{}, "User logged out")
}

// RefreshToken godoc
// @Summary      Rotate the token pair
// @Description  Reads the refresh token from the refreshToken cookie or the request body.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshTokenRequest  false  "Refresh token"
// @Success      200  {object}  response.Envelope{data=AuthResponse}
// @Failure      401  {object}  response.ErrorEnvelope
// @Router       /user/refresh-token [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req RefreshTokenRequest
		if !bindJSON(c, &req) {
			return
		}
		token = req.RefreshToken
	}

	tokens, err := h.userUseCase.RefreshToken(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAuthCookies(c, tokens)
	response.JSON(c, http.StatusOK, AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword godoc
// @Summary      Change the current password
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ChangePasswordRequest  true  "Old and new password"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /user/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userUseCase.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

// GetCurrentUser godoc
// @Summary      Get the authenticated user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=entity.User}
// @Failure      401  {object}  response.ErrorEnvelope
// @Router       /user/current-user [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	user, err := h.userUseCase.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, "Current user fetched successfully")
}

// GetChannelProfile godoc
// @Summary      Get a channel profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Channel username"
// @Success      200  {object}  response.Envelope{data=entity.ChannelProfile}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /user/channel/{username} [get]
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	viewerID := c.GetString(middleware.ContextUserID)

	profile, err := h.userUseCase.GetChannelProfile(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, "User channel fetched successfully")
}

// UpdateAccount godoc
// @Summary      Update full name and email
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      UpdateAccountRequest  true  "Account details"
// @Success      200  {object}  response.Envelope{data=entity.User}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      409  {object}  response.ErrorEnvelope
// @Router       /user/update-account-details [patch]
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userUseCase.UpdateAccount(c.Request.Context(), userID, req.FullName, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, "Account details updated successfully")
}

// UpdateAvatar godoc
// @Summary      Replace the avatar
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Avatar image"
// @Success      200  {object}  response.Envelope{data=entity.User}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /user/update-avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.userUseCase.UpdateAvatar, "Avatar image updated successfully")
}

// UpdateCoverImage godoc
// @Summary      Replace the cover image
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        coverImage  formData  file  true  "Cover image"
// @Success      200  {object}  response.Envelope{data=entity.User}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /user/update-cover-image [patch]
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.userUseCase.UpdateCoverImage, "Cover image updated successfully")
}

type imageUpdater func(ctx context.Context, userID string, file *usecase.Upload) (*entity.User, error)

func (h *UserHandler) updateImage(c *gin.Context, field string, update imageUpdater, message string) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	file, closeFile, err := formUpload(c, field)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFile()

	user, err := update(c.Request.Context(), userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, message)
}

// GetWatchHistory godoc
// @Summary      List watched videos
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]entity.Video}
// @Router       /user/watch-history [get]
func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	videos, err := h.userUseCase.GetWatchHistory(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, videos, "Watch history fetched successfully")
}

func (h *UserHandler) setAuthCookies(c *gin.Context, tokens *jwt.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, tokens.AccessToken, maxAge(tokens.AccessExpiresAt), "/", "", h.secureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, tokens.RefreshToken, maxAge(tokens.RefreshExpiresAt), "/", "", h.secureCookies, true)
}

func (h *UserHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.secureCookies, true)
}

func maxAge(expiresAt time.Time) int {
	seconds := int(time.Until(expiresAt).Seconds())
	if seconds < 1 {
		return 0
	}
	return seconds
}
