package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"openlater/internal/domain"
)

// pqUniqueViolation is the Postgres error code for unique_violation.
const pqUniqueViolation = "23505"

type capsuleRepository struct {
	DB *sql.DB
}

func NewCapsuleRepository(db *sql.DB) domain.CapsuleRepository {
	return &capsuleRepository{
		DB: db,
	}
}

// Create inserts the capsule in a single statement. id and created_at are
// assigned by the database, so either the full record is written or nothing
// is. A unique violation on public_id maps to domain.ErrDuplicatePublicID.
func (r *capsuleRepository) Create(ctx context.Context, c *domain.Capsule) error {
	query := `
		INSERT INTO capsules (public_id, name, email, title, message, unlock_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		c.PublicID, c.Name, c.Email, c.Title, c.Message, c.UnlockAt,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.ErrDuplicatePublicID
		}
		return err
	}
	return nil
}

func (r *capsuleRepository) ListAll(ctx context.Context) ([]*domain.Capsule, error) {
	query := `
		SELECT id, public_id, name, email, title, message, unlock_at, created_at, email_sent
		FROM capsules
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	capsules := make([]*domain.Capsule, 0)
	for rows.Next() {
		c := &domain.Capsule{}
		var unlockNull sql.NullTime
		if err := rows.Scan(&c.ID, &c.PublicID, &c.Name, &c.Email, &c.Title, &c.Message, &unlockNull, &c.CreatedAt, &c.EmailSent); err != nil {
			return nil, err
		}
		if unlockNull.Valid {
			c.UnlockAt = &unlockNull.Time
		}
		capsules = append(capsules, c)
	}
	return capsules, rows.Err()
}

func (r *capsuleRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Capsule, error) {
	query := `
		SELECT id, public_id, name, email, title, message, unlock_at, created_at, email_sent
		FROM capsules
		WHERE public_id = $1
	`
	c := &domain.Capsule{}
	var unlockNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, publicID).Scan(
		&c.ID, &c.PublicID, &c.Name, &c.Email, &c.Title, &c.Message, &unlockNull, &c.CreatedAt, &c.EmailSent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if unlockNull.Valid {
		c.UnlockAt = &unlockNull.Time
	}
	return c, nil
}

// ListUnlockedUnnotified returns capsules whose unlock time has passed but
// whose owner has not been emailed yet. Used by the unlock notifier only.
func (r *capsuleRepository) ListUnlockedUnnotified(ctx context.Context, now time.Time) ([]*domain.Capsule, error) {
	query := `
		SELECT id, public_id, name, email, title, message, unlock_at, created_at, email_sent
		FROM capsules
		WHERE unlock_at <= $1 AND NOT email_sent
		ORDER BY unlock_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	capsules := make([]*domain.Capsule, 0)
	for rows.Next() {
		c := &domain.Capsule{}
		var unlockNull sql.NullTime
		if err := rows.Scan(&c.ID, &c.PublicID, &c.Name, &c.Email, &c.Title, &c.Message, &unlockNull, &c.CreatedAt, &c.EmailSent); err != nil {
			return nil, err
		}
		if unlockNull.Valid {
			c.UnlockAt = &unlockNull.Time
		}
		capsules = append(capsules, c)
	}
	return capsules, rows.Err()
}

// MarkEmailSent flips the email_sent flag. It is the only mutation the
// schema allows after a capsule is sealed.
func (r *capsuleRepository) MarkEmailSent(ctx context.Context, id string) error {
	query := `UPDATE capsules SET email_sent = TRUE WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
