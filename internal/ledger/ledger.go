// Package ledger applies every counter and toggle mutation on a post as a
// transactional read-modify-write. Counters are a derived cache of the
// reaction/comment/share row sets and may only move together with those
// rows, inside the same transaction.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	retry "github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"scamshield/internal/apperr"
	"scamshield/internal/models"
)

// PostTx is the view of one post inside an open transaction. Every read
// reflects the state at transaction time, never a value cached before the
// transaction began.
type PostTx interface {
	Counters() (models.EngagementCounters, error)
	SetCounters(models.EngagementCounters) error
	HasReaction(userID int64) (bool, error)
	AddReaction(userID int64) error
	RemoveReaction(userID int64) error
	HasBookmark(userID int64) (bool, error)
	AddBookmark(userID int64) error
	RemoveBookmark(userID int64) error
	InsertComment(userID int64, content string) (int64, error)
	InsertShare(userID int64) error
}

// Store is the minimal primitive the ledger needs: an atomic
// read-modify-write over a single post's counter set and its engagement
// rows. WithPost returns apperr.ErrNotFound when the post does not exist
// and apperr.ErrConflict when a concurrent writer won the race.
type Store interface {
	WithPost(ctx context.Context, postID int64, fn func(tx PostTx) error) error
}

const defaultMaxRetries = 3

// Ledger serializes engagement mutations per post and retries lost races a
// bounded number of times before surfacing apperr.ErrTransient.
type Ledger struct {
	store      Store
	logger     *zap.Logger
	maxRetries uint64
	backoff    time.Duration
}

func New(store Store, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:      store,
		logger:     logger,
		maxRetries: defaultMaxRetries,
		backoff:    5 * time.Millisecond,
	}
}

func (l *Ledger) withPost(ctx context.Context, postID int64, fn func(tx PostTx) error) error {
	if postID <= 0 {
		return fmt.Errorf("%w: post id must be positive", apperr.ErrInvalidInput)
	}

	b := retry.WithMaxRetries(l.maxRetries, retry.NewExponential(l.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := l.store.WithPost(ctx, postID, fn); err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				l.logger.Debug("Engagement transaction conflict, retrying",
					zap.Int64("post_id", postID))
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil && errors.Is(err, apperr.ErrConflict) {
		l.logger.Warn("Engagement transaction retries exhausted",
			zap.Int64("post_id", postID))
		return fmt.Errorf("%w: %v", apperr.ErrTransient, err)
	}
	return err
}

// ToggleLike flips the caller's like on the post. The reaction row's
// existence, checked inside the transaction, decides the direction; the
// like count moves with the row in the same transaction and never drops
// below zero.
func (l *Ledger) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	if userID <= 0 {
		return false, fmt.Errorf("%w: user id must be positive", apperr.ErrInvalidInput)
	}

	var liked bool
	err := l.withPost(ctx, postID, func(tx PostTx) error {
		counters, err := tx.Counters()
		if err != nil {
			return err
		}
		exists, err := tx.HasReaction(userID)
		if err != nil {
			return err
		}
		if exists {
			if err := tx.RemoveReaction(userID); err != nil {
				return err
			}
			if counters.Likes > 0 {
				counters.Likes--
			}
			liked = false
		} else {
			if err := tx.AddReaction(userID); err != nil {
				return err
			}
			counters.Likes++
			liked = true
		}
		return tx.SetCounters(counters)
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// ToggleBookmark flips the caller's saved mark on the post. Bookmarks have
// no public counter, only the per-user row.
func (l *Ledger) ToggleBookmark(ctx context.Context, postID, userID int64) (bool, error) {
	if userID <= 0 {
		return false, fmt.Errorf("%w: user id must be positive", apperr.ErrInvalidInput)
	}

	var bookmarked bool
	err := l.withPost(ctx, postID, func(tx PostTx) error {
		exists, err := tx.HasBookmark(userID)
		if err != nil {
			return err
		}
		if exists {
			bookmarked = false
			return tx.RemoveBookmark(userID)
		}
		bookmarked = true
		return tx.AddBookmark(userID)
	})
	if err != nil {
		return false, err
	}
	return bookmarked, nil
}

// AddComment appends a comment and increments the comment count in one
// transaction. The post must exist; there is no edit or delete.
func (l *Ledger) AddComment(ctx context.Context, postID, userID int64, content string) (int64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("%w: user id must be positive", apperr.ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("%w: comment content is empty", apperr.ErrInvalidInput)
	}

	var commentID int64
	err := l.withPost(ctx, postID, func(tx PostTx) error {
		counters, err := tx.Counters()
		if err != nil {
			return err
		}
		id, err := tx.InsertComment(userID, content)
		if err != nil {
			return err
		}
		commentID = id
		counters.Comments++
		return tx.SetCounters(counters)
	})
	if err != nil {
		return 0, err
	}
	return commentID, nil
}

// SharePost records a share and increments the share count in one
// transaction. Shares are monotonic; there is no un-share.
func (l *Ledger) SharePost(ctx context.Context, postID, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user id must be positive", apperr.ErrInvalidInput)
	}

	return l.withPost(ctx, postID, func(tx PostTx) error {
		counters, err := tx.Counters()
		if err != nil {
			return err
		}
		if err := tx.InsertShare(userID); err != nil {
			return err
		}
		counters.Shares++
		return tx.SetCounters(counters)
	})
}

// IncrementReadCount bumps the read counter. Repeat reads by the same user
// all count; the product does not deduplicate views.
func (l *Ledger) IncrementReadCount(ctx context.Context, postID int64) error {
	return l.withPost(ctx, postID, func(tx PostTx) error {
		counters, err := tx.Counters()
		if err != nil {
			return err
		}
		counters.Reads++
		return tx.SetCounters(counters)
	})
}
