package services

import (
	"context"
	"log/slog"
	"time"

	"openlater/internal/domain"
)

// UnlockNotifier emails capsule authors once their capsule unlocks. It is a
// collaborator around the capsule store: it reads capsules that are due and
// flips email_sent, and never touches message content or unlock times.
type UnlockNotifier struct {
	logger       *slog.Logger
	capsuleRepo  domain.CapsuleRepository
	emailService domain.EmailService
	interval     time.Duration
	now          func() time.Time
}

func NewUnlockNotifier(logger *slog.Logger, capsuleRepo domain.CapsuleRepository, emailService domain.EmailService, interval time.Duration) *UnlockNotifier {
	return &UnlockNotifier{
		logger:       logger,
		capsuleRepo:  capsuleRepo,
		emailService: emailService,
		interval:     interval,
		now:          time.Now,
	}
}

// Run polls until ctx is cancelled.
func (n *UnlockNotifier) Run(ctx context.Context) {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.notifyDue(ctx)
		}
	}
}

// notifyDue sends one notification per due capsule. email_sent is only set
// after a successful send, so a failed send is retried on the next tick.
func (n *UnlockNotifier) notifyDue(ctx context.Context) {
	now := n.now()
	capsules, err := n.capsuleRepo.ListUnlockedUnnotified(ctx, now)
	if err != nil {
		n.logger.ErrorContext(ctx, "list due capsules", "err", err)
		return
	}
	for _, c := range capsules {
		unlockAt := now
		if c.UnlockAt != nil {
			unlockAt = *c.UnlockAt
		}
		data := &domain.UnlockNotificationEmailData{
			Email:    c.Email,
			Name:     c.Name,
			Title:    c.Title,
			PublicID: c.PublicID,
			UnlockAt: unlockAt,
		}
		if err := n.emailService.SendUnlockNotification(ctx, data); err != nil {
			n.logger.ErrorContext(ctx, "send unlock notification", "public_id", c.PublicID, "err", err)
			continue
		}
		if err := n.capsuleRepo.MarkEmailSent(ctx, c.ID); err != nil {
			n.logger.ErrorContext(ctx, "mark email sent", "public_id", c.PublicID, "err", err)
		}
	}
}
