package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"openlater/internal/domain"
)

const (
	publicIDLength = 10
	// maxCreateAttempts bounds the regenerate-and-retry loop when an insert
	// collides on public_id. With a 64^10 id space this should never trip.
	maxCreateAttempts = 3
)

// publicIDAlphabet is the URL-safe alphabet public identifiers are drawn from.
var publicIDAlphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-")

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type capsuleService struct {
	capsuleRepo    domain.CapsuleRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewCapsuleService(capsuleRepo domain.CapsuleRepository, timeout time.Duration) domain.CapsuleService {
	return &capsuleService{
		capsuleRepo:    capsuleRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// generatePublicID draws a fixed-length identifier from publicIDAlphabet
// using crypto/rand. An entropy failure is not recoverable by retrying here.
func generatePublicID() (string, error) {
	b := make([]rune, publicIDLength)
	max := big.NewInt(int64(len(publicIDAlphabet)))
	for i := 0; i < publicIDLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = publicIDAlphabet[n.Int64()]
	}
	return string(b), nil
}

func validateCreateInput(in *domain.CreateCapsuleInput) error {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !emailRegex.MatchString(strings.TrimSpace(in.Email)) {
		problems = append(problems, "email must be a valid email address")
	}
	if strings.TrimSpace(in.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		problems = append(problems, "message is required")
	}
	if in.UnlockAt.IsZero() {
		problems = append(problems, "unlock_at is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// Create validates the input, assigns a fresh public identifier and inserts
// the capsule. A duplicate public_id is retried with a newly generated
// identifier a bounded number of times; the store's unique constraint is
// defense in depth, not the primary uniqueness mechanism.
func (s *capsuleService) Create(ctx context.Context, in *domain.CreateCapsuleInput) (*domain.CapsuleCreated, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		publicID, err := generatePublicID()
		if err != nil {
			return nil, fmt.Errorf("generate public id: %w", err)
		}
		unlockAt := in.UnlockAt
		c := &domain.Capsule{
			PublicID: publicID,
			Name:     strings.TrimSpace(in.Name),
			Email:    strings.TrimSpace(strings.ToLower(in.Email)),
			Title:    strings.TrimSpace(in.Title),
			Message:  in.Message,
			UnlockAt: &unlockAt,
		}
		if err := s.capsuleRepo.Create(ctx, c); err != nil {
			if errors.Is(err, domain.ErrDuplicatePublicID) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("create capsule: %w", err)
		}
		return &domain.CapsuleCreated{PublicID: c.PublicID, UnlockAt: unlockAt}, nil
	}
	return nil, fmt.Errorf("create capsule after %d attempts: %w", maxCreateAttempts, lastErr)
}

// List returns all capsules newest first. The whole batch is evaluated
// against one instant so entries in a single response cannot disagree about
// what "now" means.
func (s *capsuleService) List(ctx context.Context) ([]*domain.CapsuleView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	capsules, err := s.capsuleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list capsules: %w", err)
	}
	now := s.now()
	views := make([]*domain.CapsuleView, 0, len(capsules))
	for _, c := range capsules {
		views = append(views, domain.ToListView(c, now))
	}
	return views, nil
}

func (s *capsuleService) Get(ctx context.Context, publicID string) (*domain.CapsuleView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.capsuleRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get capsule: %w", err)
	}
	return domain.ToDetailView(c, s.now()), nil
}
