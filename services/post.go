package services

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"miniboard/models"
)

// PostService manages board posts.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService backed by the given store.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts() ([]models.Post, error) {
	posts := []models.Post{}
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, models.NewStoreError("failed to list posts", err)
	}
	return posts, nil
}

// CreatePost stores a new post attributed to the given identity. The author's
// username is denormalized onto the post; no check that the author row still
// exists is made.
func (s *PostService) CreatePost(title, content string, author Identity) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("title and content are required")
	}
	if author.ID == "" || author.Username == "" {
		return nil, models.NewValidationError("post author is required")
	}

	post := models.Post{
		Title:          title,
		Content:        content,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, models.NewStoreError("failed to create post", err)
	}

	return &post, nil
}

// DeletePost removes a post by identifier.
func (s *PostService) DeletePost(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.NewValidationError("invalid post ID format")
	}

	res := s.db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return models.NewStoreError("failed to delete post", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post")
	}
	return nil
}
