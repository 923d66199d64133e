// Package scanner orchestrates a scan request: validate the target, gather
// signals from the right sources, classify, and append the verdict to the
// scan history.
package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scamshield/internal/apperr"
	"scamshield/internal/classify"
	"scamshield/internal/models"
	"scamshield/internal/phishing"
	"scamshield/internal/reputation"
)

// RecordStore is the append-only scan history. Verdicts are never updated
// after they are written.
type RecordStore interface {
	Save(ctx context.Context, record *models.ScanRecord) error
	ListByUser(ctx context.Context, userID int64) ([]*models.ScanRecord, error)
}

// Scanner routes URL and file targets to the reputation source and phone
// and bank account targets to the phishing aggregator.
type Scanner struct {
	reputation reputation.Source
	phishing   *phishing.Aggregator
	records    RecordStore
	timeout    time.Duration
	logger     *zap.Logger
}

func New(rep reputation.Source, agg *phishing.Aggregator, records RecordStore, timeout time.Duration, logger *zap.Logger) *Scanner {
	return &Scanner{
		reputation: rep,
		phishing:   agg,
		records:    records,
		timeout:    timeout,
		logger:     logger,
	}
}

// Scan produces and persists a verdict for the target. Lookup failures
// propagate as errors; they are never reported as a safe verdict.
func (s *Scanner) Scan(ctx context.Context, userID int64, target models.ScanTarget) (*models.ScanRecord, error) {
	if !target.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown target kind %q", apperr.ErrInvalidInput, target.Kind)
	}
	if strings.TrimSpace(target.Value) == "" {
		return nil, fmt.Errorf("%w: target value is empty", apperr.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		count     int
		breakdown models.SourceBreakdown
	)
	switch target.Kind {
	case models.KindPhone, models.KindBankAccount:
		res, err := s.phishing.Check(ctx, target.Kind, target.Value)
		if err != nil {
			return nil, err
		}
		count = res.Hits()
		breakdown = models.SourceBreakdown{
			"blocklist":       res.Blocklist,
			"verified_report": res.VerifiedReport,
		}
	default:
		resp, err := s.reputation.Lookup(ctx, target)
		if err != nil {
			return nil, err
		}
		if resp.MaliciousCount < 0 {
			return nil, fmt.Errorf("%w: reputation source returned negative count %d",
				apperr.ErrSourceUnavailable, resp.MaliciousCount)
		}
		count = resp.MaliciousCount
		breakdown = models.SourceBreakdown{}
		for engine, hit := range resp.Engines {
			breakdown[engine] = hit
		}
	}

	record := &models.ScanRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		Kind:            target.Kind,
		Value:           target.Value,
		Tier:            classify.Classify(target.Kind, count),
		MaliciousCount:  count,
		SourceBreakdown: breakdown,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.records.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save scan record: %w", err)
	}

	s.logger.Info("Scan completed",
		zap.String("scan_id", record.ID),
		zap.String("kind", string(record.Kind)),
		zap.String("tier", string(record.Tier)),
		zap.Int("malicious_count", record.MaliciousCount))

	return record, nil
}

// History returns the caller's past scans, newest first.
func (s *Scanner) History(ctx context.Context, userID int64) ([]*models.ScanRecord, error) {
	return s.records.ListByUser(ctx, userID)
}
