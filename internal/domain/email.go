package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// UnlockNotificationEmailData holds data for the capsule-unlocked email.
type UnlockNotificationEmailData struct {
	Email    string
	Name     string
	Title    string
	PublicID string
	UnlockAt time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendUnlockNotification(ctx context.Context, data *UnlockNotificationEmailData) error
}
