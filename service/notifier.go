package service

import (
	"errors"
	"fmt"
	"log"

	"fintrack/config"
	"fintrack/models"
	"fintrack/queue"

	"gorm.io/gorm"
)

// ErrMailNotConfigured means the two mail-relay secrets are absent.
// The notifier treats this as fatal rather than processing events it
// can never deliver.
var ErrMailNotConfigured = errors.New("mail credentials not configured")

// ContactNotifier turns contact-created events into owner notification
// emails. One email per created message; incomplete messages are dropped
// without a send and without a retry.
type ContactNotifier struct {
	db    *gorm.DB
	email *EmailService
	cfg   *config.EmailConfig
}

// NewContactNotifier creates a notifier.
func NewContactNotifier(db *gorm.DB, cfg *config.EmailConfig) *ContactNotifier {
	return &ContactNotifier{
		db:    db,
		email: NewEmailService(cfg),
		cfg:   cfg,
	}
}

// ValidateConfig fails when the mail credentials are missing. Callers
// treat this as a fatal configuration error at startup.
func (n *ContactNotifier) ValidateConfig() error {
	if !n.cfg.Enabled {
		return fmt.Errorf("%w: email service disabled", ErrMailNotConfigured)
	}
	if n.cfg.Username == "" || n.cfg.Password == "" {
		return ErrMailNotConfigured
	}
	return nil
}

// HandleEvent processes one contact-created event. A nil return acks the
// delivery; an error nacks it back to the broker, whose redelivery is
// the only retry in the pipeline.
func (n *ContactNotifier) HandleEvent(msg *queue.ContactCreatedMessage) error {
	var cm models.ContactMessage
	if err := n.db.First(&cm, msg.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// the row is gone; retrying can never succeed
			log.Printf("contact message %d not found, dropping event", msg.ID)
			return nil
		}
		return fmt.Errorf("load contact message %d: %w", msg.ID, err)
	}

	if !cm.Complete() {
		// silent drop: no email, no failure mark
		log.Printf("contact message %d missing required fields, dropping", cm.ID)
		return nil
	}

	if cm.Notified {
		// broker redelivery after a partial failure; the email went out
		return nil
	}

	if err := n.email.SendContactNotification(cm.Name, cm.Email, cm.Message, cm.CreatedAt); err != nil {
		return fmt.Errorf("notify for contact message %d: %w", cm.ID, err)
	}

	if err := n.db.Model(&cm).Update("notified", true).Error; err != nil {
		// the email is already out; log and ack rather than re-sending
		log.Printf("mark contact message %d notified: %v", cm.ID, err)
	}

	log.Printf("contact notification sent for message %d", cm.ID)
	return nil
}
