package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"openlater/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCapsuleRepo is an in-memory CapsuleRepository for service tests.
type fakeCapsuleRepo struct {
	capsules       []*domain.Capsule
	createErrs     []error // consumed one per Create call; nil means accept
	createCalls    int
	listErr        error
	getErr         error
	markSentErrs   map[string]error
	markSentCalled []string
}

func (f *fakeCapsuleRepo) Create(ctx context.Context, c *domain.Capsule) error {
	f.createCalls++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	stored := *c
	f.capsules = append(f.capsules, &stored)
	return nil
}

func (f *fakeCapsuleRepo) ListAll(ctx context.Context) ([]*domain.Capsule, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.capsules, nil
}

func (f *fakeCapsuleRepo) GetByPublicID(ctx context.Context, publicID string) (*domain.Capsule, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, c := range f.capsules {
		if c.PublicID == publicID {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCapsuleRepo) ListUnlockedUnnotified(ctx context.Context, now time.Time) ([]*domain.Capsule, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var due []*domain.Capsule
	for _, c := range f.capsules {
		if c.EmailSent || c.UnlockAt == nil {
			continue
		}
		if !c.UnlockAt.After(now) {
			due = append(due, c)
		}
	}
	return due, nil
}

func (f *fakeCapsuleRepo) MarkEmailSent(ctx context.Context, id string) error {
	f.markSentCalled = append(f.markSentCalled, id)
	if err := f.markSentErrs[id]; err != nil {
		return err
	}
	for _, c := range f.capsules {
		if c.ID == id {
			c.EmailSent = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func newTestService(repo *fakeCapsuleRepo, now time.Time) *capsuleService {
	svc := NewCapsuleService(repo, 5*time.Second).(*capsuleService)
	svc.now = func() time.Time { return now }
	return svc
}

func validInput() *domain.CreateCapsuleInput {
	return &domain.CreateCapsuleInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Title:    "To future me",
		Message:  "remember the garden",
		UnlockAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCapsuleService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &fakeCapsuleRepo{}
	svc := newTestService(repo, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	in := validInput()
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Len(t, created.PublicID, 10)
	for _, r := range created.PublicID {
		assert.Contains(t, string(publicIDAlphabet), string(r))
	}
	assert.Equal(t, in.UnlockAt, created.UnlockAt)

	require.Len(t, repo.capsules, 1)
	stored := repo.capsules[0]
	assert.Equal(t, created.PublicID, stored.PublicID)
	assert.Equal(t, "remember the garden", stored.Message)
	require.NotNil(t, stored.UnlockAt)
	assert.Equal(t, in.UnlockAt, *stored.UnlockAt)
}

func TestCapsuleService_Create_NormalizesEmail(t *testing.T) {
	ctx := context.Background()
	repo := &fakeCapsuleRepo{}
	svc := newTestService(repo, time.Now())

	in := validInput()
	in.Email = "  Ada@Example.COM "
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", repo.capsules[0].Email)
}

func TestCapsuleService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *domain.CreateCapsuleInput)
	}{
		{name: "missing name", mutate: func(in *domain.CreateCapsuleInput) { in.Name = "  " }},
		{name: "missing email", mutate: func(in *domain.CreateCapsuleInput) { in.Email = "" }},
		{name: "malformed email", mutate: func(in *domain.CreateCapsuleInput) { in.Email = "not-an-email" }},
		{name: "missing title", mutate: func(in *domain.CreateCapsuleInput) { in.Title = "" }},
		{name: "missing message", mutate: func(in *domain.CreateCapsuleInput) { in.Message = "" }},
		{name: "missing unlock time", mutate: func(in *domain.CreateCapsuleInput) { in.UnlockAt = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeCapsuleRepo{}
			svc := newTestService(repo, time.Now())

			in := validInput()
			tt.mutate(in)
			created, err := svc.Create(ctx, in)
			require.Error(t, err)
			require.True(t, errors.Is(err, domain.ErrInvalidInput))
			assert.Nil(t, created)
			// A rejected request must not touch the store.
			assert.Zero(t, repo.createCalls)
		})
	}
}

func TestCapsuleService_Create_RetriesOnDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := &fakeCapsuleRepo{createErrs: []error{domain.ErrDuplicatePublicID, nil}}
	svc := newTestService(repo, time.Now())

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 2, repo.createCalls)
	require.Len(t, repo.capsules, 1)
	assert.Equal(t, created.PublicID, repo.capsules[0].PublicID)
}

func TestCapsuleService_Create_GivesUpAfterRepeatedDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := &fakeCapsuleRepo{createErrs: []error{
		domain.ErrDuplicatePublicID,
		domain.ErrDuplicatePublicID,
		domain.ErrDuplicatePublicID,
	}}
	svc := newTestService(repo, time.Now())

	created, err := svc.Create(ctx, validInput())
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrDuplicatePublicID))
	assert.Nil(t, created)
	assert.Equal(t, maxCreateAttempts, repo.createCalls)
	assert.Empty(t, repo.capsules)
}

func TestCapsuleService_Create_RepoError(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")
	repo := &fakeCapsuleRepo{createErrs: []error{dbErr}}
	svc := newTestService(repo, time.Now())

	created, err := svc.Create(ctx, validInput())
	require.Error(t, err)
	require.True(t, errors.Is(err, dbErr))
	assert.Nil(t, created)
	// Only duplicate-id collisions are retried.
	assert.Equal(t, 1, repo.createCalls)
}

func TestCapsuleService_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	repo := &fakeCapsuleRepo{capsules: []*domain.Capsule{
		{ID: "c3", PublicID: "pub3pub3pu", Name: "Cay", Email: "c@x.com", Title: "Third", Message: "open", UnlockAt: &past, CreatedAt: now.Add(-time.Minute)},
		{ID: "c2", PublicID: "pub2pub2pu", Name: "Bob", Email: "b@x.com", Title: "Second", Message: "sealed", UnlockAt: &future, CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "c1", PublicID: "pub1pub1pu", Name: "Ada", Email: "a@x.com", Title: "First", Message: "boundary", UnlockAt: &now, CreatedAt: now.Add(-3 * time.Minute)},
	}}
	svc := newTestService(repo, now)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)

	// Store order (newest first) is preserved.
	assert.Equal(t, "pub3pub3pu", views[0].PublicID)
	assert.Equal(t, "pub2pub2pu", views[1].PublicID)
	assert.Equal(t, "pub1pub1pu", views[2].PublicID)

	assert.True(t, views[0].IsUnlocked)
	assert.Equal(t, "open", views[0].Message)

	assert.False(t, views[1].IsUnlocked)
	assert.Equal(t, domain.LockedMessagePlaceholder, views[1].Message)

	// A capsule whose unlock time equals the evaluation instant is unlocked.
	assert.True(t, views[2].IsUnlocked)
	assert.Equal(t, "boundary", views[2].Message)
}

func TestCapsuleService_List_Empty(t *testing.T) {
	repo := &fakeCapsuleRepo{}
	svc := newTestService(repo, time.Now())

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestCapsuleService_List_RepoError(t *testing.T) {
	repo := &fakeCapsuleRepo{listErr: errors.New("boom")}
	svc := newTestService(repo, time.Now())

	views, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Nil(t, views)
}

// TestCapsuleService_Get_UnlockOverTime walks one capsule through its
// lifecycle: sealed at creation, still sealed just before the unlock time,
// readable at and after it.
func TestCapsuleService_Get_UnlockOverTime(t *testing.T) {
	ctx := context.Background()
	unlockAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeCapsuleRepo{capsules: []*domain.Capsule{{
		ID: "c1", PublicID: "adaCapsule", Name: "Ada", Email: "ada@example.com",
		Title: "To future me", Message: "remember the garden", UnlockAt: &unlockAt,
	}}}
	svc := newTestService(repo, unlockAt)

	steps := []struct {
		name        string
		now         time.Time
		wantMessage string
		wantOpen    bool
	}{
		{name: "well before unlock", now: unlockAt.Add(-30 * 24 * time.Hour), wantMessage: domain.LockedMessagePlaceholder, wantOpen: false},
		{name: "one second before unlock", now: unlockAt.Add(-time.Second), wantMessage: domain.LockedMessagePlaceholder, wantOpen: false},
		{name: "at the unlock instant", now: unlockAt, wantMessage: "remember the garden", wantOpen: true},
		{name: "after unlock", now: unlockAt.Add(time.Hour), wantMessage: "remember the garden", wantOpen: true},
	}
	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			svc.now = func() time.Time { return tt.now }
			v, err := svc.Get(ctx, "adaCapsule")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOpen, v.IsUnlocked)
			assert.Equal(t, tt.wantMessage, v.Message)
			assert.Equal(t, unlockAt, v.UnlockAt)
		})
	}
}

func TestCapsuleService_Get_NotFound(t *testing.T) {
	repo := &fakeCapsuleRepo{}
	svc := newTestService(repo, time.Now())

	v, err := svc.Get(context.Background(), "nosuchcap0")
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Nil(t, v)
}

func TestGeneratePublicID(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id, err := generatePublicID()
		require.NoError(t, err)
		require.Len(t, id, publicIDLength)
		for _, r := range id {
			require.True(t, strings.ContainsRune(string(publicIDAlphabet), r), "unexpected rune %q in %q", r, id)
		}
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}
