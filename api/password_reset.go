package api

import (
	"strings"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetHandler handles the email-based reset flow.
type PasswordResetHandler struct {
	cfg          *config.Config
	emailService *service.EmailService
}

// NewPasswordResetHandler creates a password reset handler.
func NewPasswordResetHandler(cfg *config.Config) *PasswordResetHandler {
	return &PasswordResetHandler{
		cfg:          cfg,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RequestResetRequest asks for a reset email.
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems a reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// RequestPasswordReset sends a reset link
// @Summary Request password reset
// @Description Sends a reset link by email. To avoid account enumeration the reply is identical whether or not the address is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "email address"
// @Success 200 {object} Response "request accepted"
// @Failure 400 {object} Response "invalid input"
// @Failure 500 {object} Response "mail delivery failed"
// @Router /api/v1/auth/password/request-reset [post]
func (h *PasswordResetHandler) RequestPasswordReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "please enter a valid email address")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// identical reply for unknown addresses
		SuccessWithMessage(c, "if this email is registered, a reset link is on its way", nil)
		return
	}

	// an unexpired unused token means a mail already went out
	var existingToken models.PasswordReset
	if err := database.DB.Where("user_id = ? AND used = ? AND expires_at > ?", user.ID, false, time.Now()).First(&existingToken).Error; err == nil {
		SuccessWithMessage(c, "a reset email was already sent, please check your inbox", nil)
		return
	}

	token, err := models.GenerateToken()
	if err != nil {
		InternalError(c, "failed to generate token")
		return
	}

	passwordReset := models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		Email:     req.Email,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	if err := database.DB.Create(&passwordReset).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create reset token"))
		return
	}

	resetLink := h.cfg.Server.BaseURL + "/reset-password?token=" + token

	if err := h.emailService.SendPasswordResetEmail(req.Email, user.DisplayName, resetLink); err != nil {
		// the token is useless if the mail never left
		database.DB.Delete(&passwordReset)
		InternalError(c, SafeErrorMessage(err, "failed to send reset email"))
		return
	}

	SuccessWithMessage(c, "if this email is registered, a reset link is on its way", nil)
}

// ResetPassword redeems a token
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "token and new password"
// @Success 200 {object} Response "password reset"
// @Failure 400 {object} Response "invalid or expired token"
// @Router /api/v1/auth/password/reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid input"))
		return
	}

	var passwordReset models.PasswordReset
	if err := database.DB.Where("token = ?", req.Token).First(&passwordReset).Error; err != nil {
		BadRequest(c, "invalid or expired token")
		return
	}

	if !passwordReset.IsValid() {
		BadRequest(c, "invalid or expired token")
		return
	}

	var user models.User
	if err := database.DB.First(&user, passwordReset.UserID).Error; err != nil {
		BadRequest(c, "invalid or expired token")
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

	if err := database.DB.Model(&passwordReset).Update("used", true).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to consume token"))
		return
	}

	SuccessWithMessage(c, "password reset", nil)
}
