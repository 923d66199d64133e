package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scamshield/internal/ledger"
	"scamshield/internal/models"
	"scamshield/internal/repository"
)

type PostHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	ToggleLike(c *gin.Context)
	ToggleBookmark(c *gin.Context)
	AddComment(c *gin.Context)
	ListComments(c *gin.Context)
	Share(c *gin.Context)
	MarkRead(c *gin.Context)
}

type postHandler struct {
	posts  repository.PostStore
	ledger *ledger.Ledger
	logger *zap.Logger
}

func NewPostHandler(posts repository.PostStore, l *ledger.Ledger, logger *zap.Logger) PostHandler {
	return &postHandler{posts: posts, ledger: l, logger: logger}
}

func postIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return id, true
}

// List handles GET /api/posts.
func (h *postHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	posts, err := h.posts.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// Get handles GET /api/posts/:id and includes the caller's own
// liked/bookmarked state alongside the counters.
func (h *postHandler) Get(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	userID := currentUserID(c)
	liked, err := h.posts.IsLiked(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	bookmarked, err := h.posts.IsBookmarked(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post, "liked": liked, "bookmarked": bookmarked})
}

type createPostRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	SourceURL string `json:"source_url"`
}

// Create handles POST /api/posts (admin only).
func (h *postHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		SourceURL: req.SourceURL,
	}
	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ToggleLike handles POST /api/posts/:id/like.
func (h *postHandler) ToggleLike(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	liked, err := h.ledger.ToggleLike(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// ToggleBookmark handles POST /api/posts/:id/bookmark.
func (h *postHandler) ToggleBookmark(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	bookmarked, err := h.ledger.ToggleBookmark(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

type addCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddComment handles POST /api/posts/:id/comments.
func (h *postHandler) AddComment(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	commentID, err := h.ledger.AddComment(c.Request.Context(), id, currentUserID(c), req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment_id": commentID})
}

// ListComments handles GET /api/posts/:id/comments.
func (h *postHandler) ListComments(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	// Resolve the post first so a missing post reads as 404, not an empty list.
	if _, err := h.posts.Get(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	comments, err := h.posts.ListComments(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Share handles POST /api/posts/:id/share.
func (h *postHandler) Share(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	if err := h.ledger.SharePost(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shared": true})
}

// MarkRead handles POST /api/posts/:id/read. Every call counts; views are
// not deduplicated per user.
func (h *postHandler) MarkRead(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	if err := h.ledger.IncrementReadCount(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"read": true})
}
