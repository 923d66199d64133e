package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"scamshield/internal/models"
)

// BlocklistStore is the curated malicious-contacts table, maintained by
// the operators and consulted by the phishing aggregator.
type BlocklistStore interface {
	Contains(ctx context.Context, kind models.TargetKind, value string) (bool, error)
	Add(ctx context.Context, kind models.TargetKind, value, reason string) error
}

type blocklistStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewBlocklistStore(db *sqlx.DB, logger *zap.Logger) BlocklistStore {
	return &blocklistStore{db: db, logger: logger}
}

func (r *blocklistStore) Contains(ctx context.Context, kind models.TargetKind, value string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM blocklist WHERE kind = $1 AND value = $2)`
	if err := r.db.GetContext(ctx, &exists, query, kind, value); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *blocklistStore) Add(ctx context.Context, kind models.TargetKind, value, reason string) error {
	query := `INSERT INTO blocklist (kind, value, reason) VALUES ($1, $2, $3)
	          ON CONFLICT (kind, value) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, kind, value, reason)
	return err
}
