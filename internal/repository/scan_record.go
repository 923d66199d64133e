package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"scamshield/internal/models"
)

// ScanRecordStore is the append-only scan history. Records are inserted
// once and never updated.
type ScanRecordStore interface {
	Save(ctx context.Context, record *models.ScanRecord) error
	ListByUser(ctx context.Context, userID int64) ([]*models.ScanRecord, error)
}

type scanRecordStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewScanRecordStore(db *sqlx.DB, logger *zap.Logger) ScanRecordStore {
	return &scanRecordStore{db: db, logger: logger}
}

func (r *scanRecordStore) Save(ctx context.Context, record *models.ScanRecord) error {
	query := `INSERT INTO scan_records (id, user_id, kind, value, tier, malicious_count, source_breakdown, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, record.ID, record.UserID, record.Kind, record.Value,
		record.Tier, record.MaliciousCount, record.SourceBreakdown, record.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to save scan record",
			zap.String("scan_id", record.ID),
			zap.Error(err))
	}
	return err
}

func (r *scanRecordStore) ListByUser(ctx context.Context, userID int64) ([]*models.ScanRecord, error) {
	var records []*models.ScanRecord
	query := `SELECT id, user_id, kind, value, tier, malicious_count, source_breakdown, created_at
	          FROM scan_records WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, err
	}
	return records, nil
}
