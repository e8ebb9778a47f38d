package domain

import "time"

// LockedMessagePlaceholder replaces the message of a locked capsule in every
// external view. The leading 🔒 is part of the wire contract: clients detect
// a withheld message by that prefix.
const LockedMessagePlaceholder = "🔒 This message is locked until its unlock date."

// IsUnlocked reports whether the capsule's message may be revealed at the
// given instant. The comparison is inclusive: the capsule unlocks at the
// exact moment now reaches UnlockAt. A capsule with no unlock time recorded
// is never considered unlocked.
func IsUnlocked(c *Capsule, now time.Time) bool {
	if c.UnlockAt == nil {
		return false
	}
	return !c.UnlockAt.After(now)
}

// ToListView converts a capsule into its list representation, withholding
// the message while the capsule is locked.
func ToListView(c *Capsule, now time.Time) *CapsuleView {
	return gatedView(c, now)
}

// ToDetailView converts a capsule for the single-capsule endpoint. It applies
// exactly the same withholding rule as ToListView: the detail surface must
// never reveal a message the list surface would hide.
func ToDetailView(c *Capsule, now time.Time) *CapsuleView {
	return gatedView(c, now)
}

func gatedView(c *Capsule, now time.Time) *CapsuleView {
	unlocked := IsUnlocked(c, now)
	message := LockedMessagePlaceholder
	if unlocked {
		message = c.Message
	}
	// A row without an unlock time is a data-integrity anomaly; advertise
	// the evaluation instant rather than a zero time.
	unlockAt := now
	if c.UnlockAt != nil {
		unlockAt = *c.UnlockAt
	}
	return &CapsuleView{
		PublicID:   c.PublicID,
		Name:       c.Name,
		Title:      c.Title,
		Email:      c.Email,
		Message:    message,
		UnlockAt:   unlockAt,
		IsUnlocked: unlocked,
		EmailSent:  c.EmailSent,
	}
}
