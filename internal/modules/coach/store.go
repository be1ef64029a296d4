package coach

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles coach_quota persistence.
type Store struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db, now: time.Now}
}

// UseToken atomically checks the monthly quota and deducts one token,
// returning what is left. The counter resets to DefaultTokens when
// last_reset_month is behind the current month. Returns ErrInsufficientTokens
// when no row is updated (quota exhausted or user absent).
func (s *Store) UseToken(ctx context.Context, uid string) (int, error) {
	month := s.now().Format("2006-01")

	var remaining int
	err := s.db.QueryRow(ctx, `
		UPDATE coach_quota SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
		RETURNING tokens_remaining
	`, month, DefaultTokens, uid).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrInsufficientTokens
	}
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// EnsureUser inserts a quota row with the default allowance; existing rows are left alone.
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO coach_quota (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, DefaultTokens, s.now().Format("2006-01"))
	return err
}

// Refund gives back one token, never exceeding DefaultTokens.
func (s *Store) Refund(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE coach_quota SET tokens_remaining = LEAST(tokens_remaining + 1, $2)
		WHERE uid = $1
	`, uid, DefaultTokens)
	return err
}
