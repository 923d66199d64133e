package phishing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scamshield/internal/apperr"
	"scamshield/internal/models"
)

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

func TestCheckORSemantics(t *testing.T) {
	tests := []struct {
		name      string
		blocklist bool
		reports   bool
		want      bool
	}{
		{"neither source hits", false, false, false},
		{"blocklist only", true, false, true},
		{"verified report only", false, true, true},
		{"both sources hit", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAggregator(stubBlocklist{hit: tt.blocklist}, stubReports{hit: tt.reports}, zap.NewNop())
			res, err := a.Check(context.Background(), models.KindPhone, "0987654321")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.IsPhishing())
			assert.Equal(t, tt.blocklist, res.Blocklist)
			assert.Equal(t, tt.reports, res.VerifiedReport)
		})
	}
}

func TestCheckHits(t *testing.T) {
	a := NewAggregator(stubBlocklist{hit: true}, stubReports{hit: true}, zap.NewNop())
	res, err := a.Check(context.Background(), models.KindBankAccount, "40817810000000000001")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Hits())
}

func TestCheckSourceErrorIsNotSilentFalse(t *testing.T) {
	boom := errors.New("connection refused")

	t.Run("blocklist fails", func(t *testing.T) {
		a := NewAggregator(stubBlocklist{err: boom}, stubReports{hit: true}, zap.NewNop())
		_, err := a.Check(context.Background(), models.KindPhone, "0987654321")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrSourceUnavailable))
	})

	t.Run("report store fails", func(t *testing.T) {
		a := NewAggregator(stubBlocklist{hit: false}, stubReports{err: boom}, zap.NewNop())
		_, err := a.Check(context.Background(), models.KindPhone, "0987654321")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrSourceUnavailable))
	})
}

func TestCheckVerifiedReportOnlyScenario(t *testing.T) {
	// Blocklist has never seen the number, but a moderator verified a crowd
	// report for it: the verdict must still be phishing.
	a := NewAggregator(stubBlocklist{hit: false}, stubReports{hit: true}, zap.NewNop())
	res, err := a.Check(context.Background(), models.KindPhone, "0987111222")
	require.NoError(t, err)
	assert.True(t, res.IsPhishing())
	assert.Equal(t, 1, res.Hits())
}
