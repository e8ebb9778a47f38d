package services

import (
	"context"
	"fmt"
	"log"

	"openlater/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendUnlockNotification tells a capsule's author that their capsule has
// unlocked, using the "unlock_notification" template.
func (s *emailService) SendUnlockNotification(ctx context.Context, data *domain.UnlockNotificationEmailData) error {
	if data == nil {
		return fmt.Errorf("unlock notification data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("unlock_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render unlock_notification template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send unlock notification email: %w", err)
	}
	log.Printf("[EMAIL] Unlock notification sent to %s", data.Email)
	return nil
}
