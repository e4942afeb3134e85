package api

import (
	"strings"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles sign-up, sign-in and profile management.
type AuthHandler struct {
	cfg          *config.Config
	storage      *service.Storage
	emailService *service.EmailService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(cfg *config.Config, storage *service.Storage) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		storage:      storage,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RegisterRequest is the sign-up form. The avatar image travels as a
// separate multipart file part.
type RegisterRequest struct {
	Email       string `form:"email" binding:"required,email" example:"jane@example.com"`
	Password    string `form:"password" binding:"required,min=6,max=50" example:"password123"`
	DisplayName string `form:"display_name" binding:"required,max=100" example:"Jane"`
}

// LoginRequest is the sign-in request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse carries the token and profile after sign-in.
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Register creates an account
// @Summary Sign up
// @Description Create an account with email and password. An optional avatar image may be attached as the "avatar" file part; if the upload fails the default avatar is used and registration still succeeds.
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param email formData string true "Email address (login identifier)"
// @Param password formData string true "Password (6-50 chars)"
// @Param display_name formData string true "Display name"
// @Param avatar formData file false "Avatar image"
// @Success 200 {object} Response{data=LoginResponse} "account created"
// @Failure 400 {object} Response "invalid input"
// @Failure 500 {object} Response "server error"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid input"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// reject duplicate accounts
	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		BadRequest(c, "an account with this email already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "failed to hash password")
		return
	}

	user := models.User{
		Email:       req.Email,
		Password:    string(hashedPassword),
		DisplayName: strings.TrimSpace(req.DisplayName),
		AvatarURL:   models.DefaultAvatarURL,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create account"))
		return
	}

	// avatar upload is best effort: a failed upload keeps the default
	// avatar instead of failing the registration
	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		if src, err := file.Open(); err == nil {
			if url, err := h.storage.Save("avatars", user.ID, file.Filename, src); err == nil {
				if err := database.DB.Model(&user).Update("avatar_url", url).Error; err == nil {
					user.AvatarURL = url
				}
			}
			src.Close()
		}
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "failed to generate token")
		return
	}

	SuccessWithMessage(c, "account created", LoginResponse{
		Token:    token,
		UserInfo: user,
	})
}

// Login signs a user in
// @Summary Sign in
// @Description Exchange email and password for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} Response{data=LoginResponse} "signed in"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "wrong email or password"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid input"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		Unauthorized(c, "wrong email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "wrong email or password")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "failed to generate token")
		return
	}

	Success(c, LoginResponse{
		Token:    token,
		UserInfo: user,
	})
}

// Logout ends a session
// @Summary Sign out
// @Description Sessions are stateless JWTs, so sign-out is an acknowledgement; the client discards its token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "signed out"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	SuccessWithMessage(c, "signed out", nil)
}

// GetProfile returns the current user
// @Summary Current profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "profile"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "user not found")
		return
	}

	Success(c, user)
}

// UpdateProfileRequest is the profile update form.
type UpdateProfileRequest struct {
	DisplayName string `form:"display_name" binding:"max=100" example:"Jane"`
}

// UpdateProfile updates display name and avatar
// @Summary Update profile
// @Description Update the display name and optionally replace the avatar via the "avatar" file part.
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param display_name formData string false "Display name"
// @Param avatar formData file false "Avatar image"
// @Success 200 {object} Response{data=models.User} "updated"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "user not found")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid input"))
		return
	}

	updates := make(map[string]interface{})
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		updates["display_name"] = name
	}

	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			InternalError(c, "failed to read avatar upload")
			return
		}
		url, err := h.storage.Save("avatars", user.ID, file.Filename, src)
		src.Close()
		if err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to store avatar"))
			return
		}
		updates["avatar_url"] = url
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "failed to update profile"))
			return
		}
		database.DB.First(&user, user.ID)
	}

	SuccessWithMessage(c, "profile updated", user)
}

// ChangePasswordRequest is the password change request.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"oldpassword123"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword123"`
}

// ChangePassword changes the current user's password
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "passwords"
// @Success 200 {object} Response "changed"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "wrong current password"
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid input"))
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "user not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		Unauthorized(c, "wrong current password")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "failed to hash password")
		return
	}

	if err := database.DB.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update password"))
		return
	}

	SuccessWithMessage(c, "password changed", nil)
}
