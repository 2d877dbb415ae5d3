package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"miniboard/models"
)

func postCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Post{}).Count(&n).Error)
	return n
}

func TestCreatePost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)

	author := Identity{ID: "11111111-1111-1111-1111-111111111111", Username: "alice"}
	post, err := svc.CreatePost("Hello", "first post", author)
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, "alice", post.AuthorUsername)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := Identity{ID: "11111111-1111-1111-1111-111111111111", Username: "alice"}

	tests := []struct {
		name    string
		title   string
		content string
		author  Identity
	}{
		{"missing title", "", "body", author},
		{"missing content", "title", "", author},
		{"whitespace title", "   ", "body", author},
		{"whitespace content", "title", "  \n\t ", author},
		{"missing author id", "title", "body", Identity{Username: "alice"}},
		{"missing author username", "title", "body", Identity{ID: author.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(tt.title, tt.content, tt.author)
			require.Error(t, err)
			assert.Equal(t, models.KindValidation, models.KindOf(err))
			assert.Equal(t, int64(0), postCount(t, db))
		})
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		post := models.Post{
			Title:          title,
			Content:        "body",
			AuthorID:       "11111111-1111-1111-1111-111111111111",
			AuthorUsername: "alice",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&post).Error)
	}

	posts, err := svc.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "second", posts[1].Title)
	assert.Equal(t, "first", posts[2].Title)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i-1].CreatedAt.Before(posts[i].CreatedAt))
	}
}

func TestListPostsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)

	posts, err := svc.ListPosts()
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestDeletePost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)

	post, err := svc.CreatePost("T", "C", Identity{ID: "11111111-1111-1111-1111-111111111111", Username: "alice"})
	require.NoError(t, err)

	t.Run("malformed id", func(t *testing.T) {
		err := svc.DeletePost("###")
		require.Error(t, err)
		assert.Equal(t, models.KindValidation, models.KindOf(err))
		assert.Equal(t, int64(1), postCount(t, db))
	})

	t.Run("well-formed but absent", func(t *testing.T) {
		err := svc.DeletePost("00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.Equal(t, models.KindNotFound, models.KindOf(err))
		assert.Equal(t, int64(1), postCount(t, db))
	})

	t.Run("existing post", func(t *testing.T) {
		require.NoError(t, svc.DeletePost(post.ID))
		assert.Equal(t, int64(0), postCount(t, db))
	})
}
