package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"scamshield/internal/apperr"
	"scamshield/internal/ledger"
	"scamshield/internal/models"
)

// EngagementStore implements ledger.Store on PostgreSQL. WithPost locks
// the post row with SELECT ... FOR UPDATE so concurrent transactions on
// the same post serialize instead of losing updates; serialization
// failures, deadlocks and unique violations surface as apperr.ErrConflict
// for the ledger to retry.
type EngagementStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewEngagementStore(db *sqlx.DB, logger *zap.Logger) *EngagementStore {
	return &EngagementStore{db: db, logger: logger}
}

func (s *EngagementStore) WithPost(ctx context.Context, postID int64, fn func(tx ledger.PostTx) error) error {
	dbtx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = dbtx.Rollback()
	}()

	// Lock the post row for the duration of the transaction. Everything
	// fn reads afterwards reflects committed state, not a pre-transaction
	// snapshot.
	var locked int64
	err = dbtx.GetContext(ctx, &locked, `SELECT id FROM posts WHERE id = $1 FOR UPDATE`, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: post %d", apperr.ErrNotFound, postID)
		}
		return mapTxError(err)
	}

	if err := fn(&postTx{ctx: ctx, tx: dbtx, postID: postID}); err != nil {
		return mapTxError(err)
	}

	if err := dbtx.Commit(); err != nil {
		return mapTxError(err)
	}
	return nil
}

// mapTxError converts driver-level conflict conditions into
// apperr.ErrConflict. 40001 is serialization_failure, 40P01 is
// deadlock_detected, 23505 is unique_violation (two devices of the same
// user racing a like).
func mapTxError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "23505":
			return fmt.Errorf("%w: %v", apperr.ErrConflict, err)
		}
	}
	return err
}

type postTx struct {
	ctx    context.Context
	tx     *sqlx.Tx
	postID int64
}

func (t *postTx) Counters() (models.EngagementCounters, error) {
	var c models.EngagementCounters
	query := `SELECT like_count, comment_count, share_count, read_count FROM posts WHERE id = $1`
	err := t.tx.GetContext(t.ctx, &c, query, t.postID)
	return c, err
}

func (t *postTx) SetCounters(c models.EngagementCounters) error {
	query := `UPDATE posts SET like_count = $1, comment_count = $2, share_count = $3, read_count = $4 WHERE id = $5`
	_, err := t.tx.ExecContext(t.ctx, query, c.Likes, c.Comments, c.Shares, c.Reads, t.postID)
	return err
}

func (t *postTx) HasReaction(userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reactions WHERE post_id = $1 AND user_id = $2)`
	err := t.tx.GetContext(t.ctx, &exists, query, t.postID, userID)
	return exists, err
}

func (t *postTx) AddReaction(userID int64) error {
	query := `INSERT INTO reactions (post_id, user_id) VALUES ($1, $2)`
	_, err := t.tx.ExecContext(t.ctx, query, t.postID, userID)
	return err
}

func (t *postTx) RemoveReaction(userID int64) error {
	query := `DELETE FROM reactions WHERE post_id = $1 AND user_id = $2`
	_, err := t.tx.ExecContext(t.ctx, query, t.postID, userID)
	return err
}

func (t *postTx) HasBookmark(userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bookmarks WHERE post_id = $1 AND user_id = $2)`
	err := t.tx.GetContext(t.ctx, &exists, query, t.postID, userID)
	return exists, err
}

func (t *postTx) AddBookmark(userID int64) error {
	query := `INSERT INTO bookmarks (post_id, user_id) VALUES ($1, $2)`
	_, err := t.tx.ExecContext(t.ctx, query, t.postID, userID)
	return err
}

func (t *postTx) RemoveBookmark(userID int64) error {
	query := `DELETE FROM bookmarks WHERE post_id = $1 AND user_id = $2`
	_, err := t.tx.ExecContext(t.ctx, query, t.postID, userID)
	return err
}

func (t *postTx) InsertComment(userID int64, content string) (int64, error) {
	var id int64
	query := `INSERT INTO comments (post_id, user_id, content) VALUES ($1, $2, $3) RETURNING id`
	err := t.tx.QueryRowxContext(t.ctx, query, t.postID, userID, content).Scan(&id)
	return id, err
}

func (t *postTx) InsertShare(userID int64) error {
	query := `INSERT INTO shares (post_id, user_id) VALUES ($1, $2)`
	_, err := t.tx.ExecContext(t.ctx, query, t.postID, userID)
	return err
}
