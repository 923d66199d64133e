package models

import "time"

// Report is a crowd-submitted fraud report. Only reports marked verified by
// a moderator count as a phishing signal.
type Report struct {
	ID         int64      `db:"id" json:"id"`
	Kind       TargetKind `db:"kind" json:"kind"`
	Value      string     `db:"value" json:"value"`
	Comment    string     `db:"comment" json:"comment"`
	ReporterID int64      `db:"reporter_id" json:"reporter_id"`
	Verified   bool       `db:"verified" json:"verified"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
