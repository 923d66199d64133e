// Package classify turns a malicious-hit count into a threat tier.
package classify

import "scamshield/internal/models"

// URL scans come from a multi-engine scanner, so URLs get a graduated
// scale; phone numbers and bank accounts are matched against blocklists,
// which are authoritative, so those are binary. The asymmetry is the
// product's risk policy and must not be collapsed.
const urlDangerousThreshold = 5

// Classify maps a non-negative malicious-hit count to a tier for the given
// target kind. It performs no I/O and does not re-validate the count; the
// scanner rejects negative counts before calling in.
func Classify(kind models.TargetKind, maliciousCount int) models.Tier {
	switch kind {
	case models.KindPhone, models.KindBankAccount:
		if maliciousCount > 0 {
			return models.TierFraud
		}
		return models.TierNoInfo
	case models.KindURL:
		switch {
		case maliciousCount > urlDangerousThreshold:
			return models.TierDangerous
		case maliciousCount > 0:
			return models.TierSuspicious
		default:
			return models.TierNoInfo
		}
	case models.KindFile:
		if maliciousCount > 0 {
			return models.TierDangerous
		}
		return models.TierNoInfo
	}
	return models.TierNoInfo
}
