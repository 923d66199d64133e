package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scamshield/internal/apperr"
	"scamshield/internal/models"
	"scamshield/internal/phishing"
	"scamshield/internal/reputation"
)

type stubSource struct {
	resp *reputation.LookupResponse
	err  error
}

func (s stubSource) Lookup(context.Context, models.ScanTarget) (*reputation.LookupResponse, error) {
	return s.resp, s.err
}

type stubBlocklist struct {
	hit bool
	err error
}

func (s stubBlocklist) Contains(context.Context, models.TargetKind, string) (bool, error) {
	return s.hit, s.err
}

type stubReports struct {
	hit bool
	err error
}

func (s stubReports) ContainsVerified(context.Context, models.TargetKind, string) (bool, error) {
	return s.hit, s.err
}

type memRecords struct {
	saved []*models.ScanRecord
	err   error
}

func (m *memRecords) Save(_ context.Context, r *models.ScanRecord) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, r)
	return nil
}

func (m *memRecords) ListByUser(_ context.Context, userID int64) ([]*models.ScanRecord, error) {
	var out []*models.ScanRecord
	for _, r := range m.saved {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newScanner(src reputation.Source, bl stubBlocklist, rep stubReports, records RecordStore) *Scanner {
	agg := phishing.NewAggregator(bl, rep, zap.NewNop())
	return New(src, agg, records, 5*time.Second, zap.NewNop())
}

func TestScanFile(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  models.Tier
	}{
		{"clean file", 0, models.TierNoInfo},
		{"flagged file", 1, models.TierDangerous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := &memRecords{}
			s := newScanner(stubSource{resp: &reputation.LookupResponse{MaliciousCount: tt.count}},
				stubBlocklist{}, stubReports{}, records)

			rec, err := s.Scan(context.Background(), 1, models.ScanTarget{Kind: models.KindFile, Value: "abc123"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Tier)
			assert.Equal(t, tt.count, rec.MaliciousCount)
			require.Len(t, records.saved, 1)
			assert.NotEmpty(t, rec.ID)
		})
	}
}

func TestScanPhoneVerifiedReportHit(t *testing.T) {
	records := &memRecords{}
	s := newScanner(stubSource{}, stubBlocklist{hit: false}, stubReports{hit: true}, records)

	rec, err := s.Scan(context.Background(), 1, models.ScanTarget{Kind: models.KindPhone, Value: "0987654321"})
	require.NoError(t, err)
	assert.Equal(t, models.TierFraud, rec.Tier)
	assert.Equal(t, 1, rec.MaliciousCount)
	assert.False(t, rec.SourceBreakdown["blocklist"])
	assert.True(t, rec.SourceBreakdown["verified_report"])
}

func TestScanPhoneNoHits(t *testing.T) {
	records := &memRecords{}
	s := newScanner(stubSource{}, stubBlocklist{}, stubReports{}, records)

	rec, err := s.Scan(context.Background(), 1, models.ScanTarget{Kind: models.KindPhone, Value: "0987654321"})
	require.NoError(t, err)
	assert.Equal(t, models.TierNoInfo, rec.Tier)
	assert.Equal(t, 0, rec.MaliciousCount)
}

func TestScanValidation(t *testing.T) {
	s := newScanner(stubSource{}, stubBlocklist{}, stubReports{}, &memRecords{})

	_, err := s.Scan(context.Background(), 1, models.ScanTarget{Kind: "carrier_pigeon", Value: "x"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = s.Scan(context.Background(), 1, models.ScanTarget{Kind: models.KindURL, Value: "  "})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestScanSourceFailureIsNotSafe(t *testing.T) {
	records := &memRecords{}
	s := newScanner(stubSource{err: errors.New("reputation service down")}, stubBlocklist{}, stubReports{}, records)

	_, err := s.Scan(context.Background(), 1, models.ScanTarget{Kind: models.KindURL, Value: "http://x.example"})
	require.Error(t, err)
	assert.Empty(t, records.saved, "no verdict may be persisted on lookup failure")
}

func TestScanNegativeCountRejected(t *testing.T) {
	s := newScanner(stubSource{resp: &reputation.LookupResponse{MaliciousCount: -3}},
		stubBlocklist{}, stubReports{}, &memRecords{})

	_, err := s.Scan(context.Background(), 1, models.ScanTarget{Kind: models.KindURL, Value: "http://x.example"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrSourceUnavailable))
}

func TestScanPhoneSourceErrorPropagates(t *testing.T) {
	s := newScanner(stubSource{}, stubBlocklist{err: errors.New("down")}, stubReports{hit: true}, &memRecords{})

	_, err := s.Scan(context.Background(), 1, models.ScanTarget{Kind: models.KindPhone, Value: "0987654321"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrSourceUnavailable))
}

func TestHistory(t *testing.T) {
	records := &memRecords{}
	s := newScanner(stubSource{resp: &reputation.LookupResponse{MaliciousCount: 6}},
		stubBlocklist{}, stubReports{}, records)

	_, err := s.Scan(context.Background(), 1, models.ScanTarget{Kind: models.KindURL, Value: "http://a.example"})
	require.NoError(t, err)
	_, err = s.Scan(context.Background(), 2, models.ScanTarget{Kind: models.KindURL, Value: "http://b.example"})
	require.NoError(t, err)

	mine, err := s.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.TierDangerous, mine[0].Tier)
}
