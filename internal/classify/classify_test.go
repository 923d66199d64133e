package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scamshield/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		kind  models.TargetKind
		count int
		want  models.Tier
	}{
		{"phone no hits", models.KindPhone, 0, models.TierNoInfo},
		{"phone one hit", models.KindPhone, 1, models.TierFraud},
		{"phone many hits", models.KindPhone, 42, models.TierFraud},
		{"bank account no hits", models.KindBankAccount, 0, models.TierNoInfo},
		{"bank account one hit", models.KindBankAccount, 1, models.TierFraud},
		{"url no hits", models.KindURL, 0, models.TierNoInfo},
		{"url few hits", models.KindURL, 3, models.TierSuspicious},
		{"url at boundary", models.KindURL, 5, models.TierSuspicious},
		{"url above boundary", models.KindURL, 6, models.TierDangerous},
		{"url many hits", models.KindURL, 60, models.TierDangerous},
		{"file no hits", models.KindFile, 0, models.TierNoInfo},
		{"file one hit", models.KindFile, 1, models.TierDangerous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.kind, tt.count))
		})
	}
}

func TestClassifyPhoneIsBinary(t *testing.T) {
	for count := 0; count <= 100; count++ {
		got := Classify(models.KindPhone, count)
		if count > 0 {
			assert.Equal(t, models.TierFraud, got, "count=%d", count)
		} else {
			assert.Equal(t, models.TierNoInfo, got, "count=%d", count)
		}
	}
}
