package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"scamshield/internal/apperr"
	"scamshield/internal/models"
)

// ReportStore holds crowd-submitted fraud reports. Only reports a
// moderator has verified count as a phishing signal; pending ones are
// invisible to the aggregator.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	Verify(ctx context.Context, reportID int64) error
	ContainsVerified(ctx context.Context, kind models.TargetKind, value string) (bool, error)
	ListPending(ctx context.Context) ([]*models.Report, error)
}

type reportStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewReportStore(db *sqlx.DB, logger *zap.Logger) ReportStore {
	return &reportStore{db: db, logger: logger}
}

func (r *reportStore) Create(ctx context.Context, report *models.Report) error {
	query := `INSERT INTO reports (kind, value, comment, reporter_id)
	          VALUES ($1, $2, $3, $4) RETURNING id, verified, created_at`
	return r.db.QueryRowxContext(ctx, query, report.Kind, report.Value, report.Comment, report.ReporterID).
		Scan(&report.ID, &report.Verified, &report.CreatedAt)
}

func (r *reportStore) Verify(ctx context.Context, reportID int64) error {
	query := `UPDATE reports SET verified = TRUE WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, reportID)
	if err != nil {
		r.logger.Error("Failed to verify report", zap.Int64("report_id", reportID), zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: report %d", apperr.ErrNotFound, reportID)
	}
	return nil
}

func (r *reportStore) ContainsVerified(ctx context.Context, kind models.TargetKind, value string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reports WHERE kind = $1 AND value = $2 AND verified = TRUE)`
	if err := r.db.GetContext(ctx, &exists, query, kind, value); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *reportStore) ListPending(ctx context.Context) ([]*models.Report, error) {
	var reports []*models.Report
	query := `SELECT id, kind, value, comment, reporter_id, verified, created_at
	          FROM reports WHERE verified = FALSE ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, err
	}
	return reports, nil
}
