package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tailorcart/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository storing each profile as one JSONB document.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context, userID string) (*domain.Profile, error) {
	const q = `
SELECT document
FROM profiles
WHERE user_id = $1
`
	var raw []byte
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("profile repo: load user_id=%s not found", userID)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("profile repo: load user_id=%s error=%v", userID, err)
		return nil, err
	}
	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", userID, err)
	}
	p.Identity.UserID = userID
	return &p, nil
}

// Save replaces the stored document. Cart and transactions are written
// together, so a checkout lands in a single statement.
func (r *postgresRepo) Save(ctx context.Context, p domain.Profile) error {
	if p.Identity.UserID == "" {
		return errors.New("profile repo: user id required")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.Identity.UserID, err)
	}
	const q = `
INSERT INTO profiles (user_id, display_name, document, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE
SET display_name = EXCLUDED.display_name,
    document = EXCLUDED.document,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, p.Identity.UserID, p.Identity.Name, raw, p.UpdatedAt); err != nil {
		r.logger.Printf("profile repo: save user_id=%s error=%v", p.Identity.UserID, err)
		return err
	}
	r.logger.Printf("profile repo: saved user_id=%s cart_vendors=%d transactions=%d", p.Identity.UserID, len(p.Cart), len(p.Transactions))
	return nil
}
