package api

import (
	"context"
	"log"
	"strconv"
	"strings"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// ContactPublisher announces stored contact messages to the queue so
// the notifier worker can pick them up.
type ContactPublisher interface {
	PublishContactCreated(ctx context.Context, id uint) error
}

// ContactHandler accepts contact form submissions. The route works for
// both signed-in and anonymous visitors.
type ContactHandler struct {
	publisher ContactPublisher
}

// NewContactHandler creates a contact handler. The publisher may be
// nil when no queue is configured; messages are then stored without a
// notification event.
func NewContactHandler(publisher ContactPublisher) *ContactHandler {
	return &ContactHandler{publisher: publisher}
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100" example:"Jane"`
	Email   string `json:"email" binding:"required" example:"jane@example.com"`
	Message string `json:"message" binding:"required,max=2000" example:"Hello!"`
}

// Submit stores a contact message
// @Summary Send a contact message
// @Description Store a contact form submission. All three fields are required after trimming whitespace, and nothing is written when validation fails. Signed-in users are recorded by id, anonymous visitors as "anonymous". The owner notification is sent asynchronously by a separate worker.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "message"
// @Success 200 {object} Response{data=models.ContactMessage} "stored"
// @Failure 400 {object} Response "invalid input"
// @Router /api/v1/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "name, email, and message are required"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		BadRequest(c, "name, email, and message are required")
		return
	}
	if !models.ValidEmail(req.Email) {
		BadRequest(c, "invalid email address")
		return
	}

	uid := models.AnonymousUID
	if userID := middleware.GetCurrentUserID(c); userID != 0 {
		uid = strconv.FormatUint(uint64(userID), 10)
	}

	message := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		UID:     uid,
	}

	if err := database.DB.Create(&message).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to store message"))
		return
	}

	// the event is best effort: losing it delays the owner email but
	// must not fail the submission
	if h.publisher != nil {
		if err := h.publisher.PublishContactCreated(c.Request.Context(), message.ID); err != nil {
			log.Printf("contact: failed to publish event for message %d: %v", message.ID, err)
		}
	}

	SuccessWithMessage(c, "message sent", message)
}
