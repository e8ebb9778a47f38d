package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no capsule exists for the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrDuplicatePublicID is returned when an insert hits the unique
	// constraint on public_id. Callers are expected to regenerate and retry.
	ErrDuplicatePublicID = errors.New("public id already in use")
	// ErrInvalidInput is returned for requests that fail validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Capsule represents a sealed message with a future unlock time.
// It is the persisted record and is never serialized to external callers
// directly; use ToListView / ToDetailView, which withhold the message while
// the capsule is locked.
//
// UnlockAt is required at creation and NOT NULL in storage. It is a pointer
// only so that a corrupted row scanned with a missing unlock time can be
// represented; such a capsule is treated as locked.
type Capsule struct {
	ID        string
	PublicID  string
	Name      string
	Email     string
	Title     string
	Message   string
	UnlockAt  *time.Time
	CreatedAt time.Time
	EmailSent bool
}

// CapsuleView is the external representation of a capsule, shared by the
// list and detail endpoints. Message holds the real message only when
// IsUnlocked is true.
type CapsuleView struct {
	PublicID   string    `json:"public_id"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	UnlockAt   time.Time `json:"unlock_at"`
	IsUnlocked bool      `json:"is_unlocked"`
	EmailSent  bool      `json:"email_sent"`
}

// CapsuleCreated is returned after a successful create.
type CapsuleCreated struct {
	PublicID string    `json:"public_id"`
	UnlockAt time.Time `json:"unlock_at"`
}

// CreateCapsuleInput carries the validated fields for a new capsule.
type CreateCapsuleInput struct {
	Name     string
	Email    string
	Title    string
	Message  string
	UnlockAt time.Time
}

// CapsuleRepository defines the interface for capsule storage.
// Capsules are append-only: there is intentionally no way to update or
// delete a sealed message. MarkEmailSent flips the notification flag only.
type CapsuleRepository interface {
	Create(ctx context.Context, c *Capsule) error
	ListAll(ctx context.Context) ([]*Capsule, error)
	GetByPublicID(ctx context.Context, publicID string) (*Capsule, error)
	ListUnlockedUnnotified(ctx context.Context, now time.Time) ([]*Capsule, error)
	MarkEmailSent(ctx context.Context, id string) error
}

// CapsuleService defines the application operations over capsules.
type CapsuleService interface {
	Create(ctx context.Context, in *CreateCapsuleInput) (*CapsuleCreated, error)
	List(ctx context.Context) ([]*CapsuleView, error)
	Get(ctx context.Context, publicID string) (*CapsuleView, error)
}
