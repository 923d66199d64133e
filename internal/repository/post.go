package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"scamshield/internal/apperr"
	"scamshield/internal/models"
)

// PostStore owns the feed content. Counter columns on posts are mutated
// only through the engagement store's transactions, never here.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	Get(ctx context.Context, postID int64) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListComments(ctx context.Context, postID int64) ([]*models.Comment, error)
	IsLiked(ctx context.Context, postID, userID int64) (bool, error)
	IsBookmarked(ctx context.Context, postID, userID int64) (bool, error)
}

type postStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostStore(db *sqlx.DB, logger *zap.Logger) PostStore {
	return &postStore{db: db, logger: logger}
}

func (r *postStore) Create(ctx context.Context, post *models.Post) error {
	query := `INSERT INTO posts (title, content, source_url) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query, post.Title, post.Content, post.SourceURL).
		Scan(&post.ID, &post.CreatedAt)
}

func (r *postStore) Get(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post
	query := `SELECT id, title, content, source_url, like_count, comment_count, share_count, read_count, created_at
	          FROM posts WHERE id = $1`
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: post %d", apperr.ErrNotFound, postID)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postStore) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	query := `SELECT id, title, content, source_url, like_count, comment_count, share_count, read_count, created_at
	          FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postStore) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	var comments []*models.Comment
	query := `SELECT id, post_id, user_id, content, created_at
	          FROM comments WHERE post_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *postStore) IsLiked(ctx context.Context, postID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reactions WHERE post_id = $1 AND user_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, postID, userID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postStore) IsBookmarked(ctx context.Context, postID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bookmarks WHERE post_id = $1 AND user_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, postID, userID); err != nil {
		return false, err
	}
	return exists, nil
}
