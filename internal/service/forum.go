package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/models"
)

var ErrNotPostOwner = errors.New("only the author can delete this")

// ForumService handles forum post and comment operations
type ForumService struct {
	db *gorm.DB
}

// NewForumService creates a new ForumService instance
func NewForumService(db *gorm.DB) *ForumService {
	return &ForumService{db: db}
}

// ListPosts lists all posts, newest first.
func (s *ForumService) ListPosts(ctx context.Context) ([]*models.ForumPost, error) {
	var posts []models.ForumPost
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}

	out := make([]*models.ForumPost, len(posts))
	for i := range posts {
		out[i] = &posts[i]
	}
	return out, nil
}

// CreatePost creates a new post.
func (s *ForumService) CreatePost(ctx context.Context, userID uuid.UUID, title, body string) (*models.ForumPost, error) {
	post := models.ForumPost{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPost fetches one post with its comments.
func (s *ForumService) GetPost(ctx context.Context, id uuid.UUID) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := s.db.WithContext(ctx).Preload("Comments").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post and its comments. Only the author may delete.
func (s *ForumService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	var post models.ForumPost
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ForumComment{}, "post_id = ?", postID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ForumPost{}, "id = ?", postID).Error
	})
}

// AddComment adds a comment under a post.
func (s *ForumService) AddComment(ctx context.Context, userID, postID uuid.UUID, body string) (*models.ForumComment, error) {
	var post models.ForumPost
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		return nil, err
	}

	comment := models.ForumComment{
		ID:     uuid.New(),
		PostID: postID,
		UserID: userID,
		Body:   body,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment. Only the author may delete.
func (s *ForumService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	var comment models.ForumComment
	if err := s.db.WithContext(ctx).First(&comment, "id = ?", commentID).Error; err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrNotPostOwner
	}
	return s.db.WithContext(ctx).Delete(&models.ForumComment{}, "id = ?", commentID).Error
}
