package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TargetKind identifies what kind of artifact a scan request refers to.
type TargetKind string

const (
	KindURL         TargetKind = "url"
	KindFile        TargetKind = "file"
	KindPhone       TargetKind = "phone"
	KindBankAccount TargetKind = "bank_account"
)

// Valid reports whether k is one of the known target kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case KindURL, KindFile, KindPhone, KindBankAccount:
		return true
	}
	return false
}

// Tier is the discrete threat classification of a scanned target.
type Tier string

const (
	TierSafe       Tier = "safe"
	TierNoInfo     Tier = "no_info"
	TierSuspicious Tier = "suspicious"
	TierDangerous  Tier = "dangerous"
	TierFraud      Tier = "fraud"
)

// ScanTarget is an immutable artifact submitted for scanning.
type ScanTarget struct {
	Kind  TargetKind `json:"kind"`
	Value string     `json:"value"`
}

// SourceBreakdown records which source reported a hit for a scan.
// Stored as jsonb on the scan record.
type SourceBreakdown map[string]bool

func (b SourceBreakdown) Value() (driver.Value, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b)
}

func (b *SourceBreakdown) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = nil
		return nil
	}
	return fmt.Errorf("cannot scan %T into SourceBreakdown", src)
}

// ScanRecord is the persisted, never-updated outcome of a single scan.
type ScanRecord struct {
	ID              string          `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	Kind            TargetKind      `db:"kind" json:"kind"`
	Value           string          `db:"value" json:"value"`
	Tier            Tier            `db:"tier" json:"tier"`
	MaliciousCount  int             `db:"malicious_count" json:"malicious_count"`
	SourceBreakdown SourceBreakdown `db:"source_breakdown" json:"source_breakdown"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
