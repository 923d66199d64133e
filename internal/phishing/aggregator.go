// Package phishing combines independent fraud signals for phone and bank
// account targets.
package phishing

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scamshield/internal/apperr"
	"scamshield/internal/models"
)

// BlocklistStore answers membership queries against the curated
// malicious-contacts table.
type BlocklistStore interface {
	Contains(ctx context.Context, kind models.TargetKind, value string) (bool, error)
}

// VerifiedReportStore answers membership queries against crowd reports that
// a moderator has marked verified.
type VerifiedReportStore interface {
	ContainsVerified(ctx context.Context, kind models.TargetKind, value string) (bool, error)
}

// Result carries the per-source outcome of an aggregation.
type Result struct {
	Blocklist      bool
	VerifiedReport bool
}

// IsPhishing is the OR of both sources.
func (r Result) IsPhishing() bool {
	return r.Blocklist || r.VerifiedReport
}

// Hits counts the sources that reported the target.
func (r Result) Hits() int {
	n := 0
	if r.Blocklist {
		n++
	}
	if r.VerifiedReport {
		n++
	}
	return n
}

// Aggregator fans out the blocklist and verified-report lookups in
// parallel and joins on both.
type Aggregator struct {
	blocklist BlocklistStore
	reports   VerifiedReportStore
	logger    *zap.Logger
}

func NewAggregator(blocklist BlocklistStore, reports VerifiedReportStore, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		blocklist: blocklist,
		reports:   reports,
		logger:    logger,
	}
}

// Check runs both lookups and waits for both to finish. A failure of either
// source fails the whole check: a backend error must never read as "not
// phishing". Callers bound the call with a context deadline.
func (a *Aggregator) Check(ctx context.Context, kind models.TargetKind, value string) (Result, error) {
	var res Result

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hit, err := a.blocklist.Contains(ctx, kind, value)
		if err != nil {
			return fmt.Errorf("blocklist lookup: %w: %w", apperr.ErrSourceUnavailable, err)
		}
		res.Blocklist = hit
		return nil
	})
	g.Go(func() error {
		hit, err := a.reports.ContainsVerified(ctx, kind, value)
		if err != nil {
			return fmt.Errorf("verified report lookup: %w: %w", apperr.ErrSourceUnavailable, err)
		}
		res.VerifiedReport = hit
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Warn("Phishing check failed",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return Result{}, err
	}

	return res, nil
}
