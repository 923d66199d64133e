package models

import "time"

// Post is a feed entry whose counters are a derived cache of the
// reaction/comment/share row sets. Counters never go below zero and are
// mutated only inside the same transaction as the corresponding row.
type Post struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Content      string    `db:"content" json:"content"`
	SourceURL    string    `db:"source_url" json:"source_url,omitempty"`
	LikeCount    int64     `db:"like_count" json:"like_count"`
	CommentCount int64     `db:"comment_count" json:"comment_count"`
	ShareCount   int64     `db:"share_count" json:"share_count"`
	ReadCount    int64     `db:"read_count" json:"read_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// EngagementCounters is the counter set the ledger mutates under transaction.
type EngagementCounters struct {
	Likes    int64 `db:"like_count"`
	Comments int64 `db:"comment_count"`
	Shares   int64 `db:"share_count"`
	Reads    int64 `db:"read_count"`
}

// Reaction marks that a user currently likes a post. At most one row may
// exist per (post, user) pair; the row set is the source of truth for the
// post's like count.
type Reaction struct {
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Comment is append-only; creating one is paired with a commentCount
// increment in the same transaction.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Share is append-only; there is no un-share.
type Share struct {
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Bookmark marks a post saved by a user. Toggled like a reaction but with
// no public counter.
type Bookmark struct {
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
