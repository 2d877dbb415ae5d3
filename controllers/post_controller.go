package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miniboard/middleware"
	"miniboard/services"
	"miniboard/utils"
)

// PostController manages board posts.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// ListPosts returns all posts, newest first. Public.
func (p *PostController) ListPosts(ctx *gin.Context) {
	posts, err := p.posts.ListPosts()
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, posts)
}

// CreatePost allows authenticated users to create new posts. Attribution
// comes from the verified identity, not the payload.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "title and content are required")
		return
	}

	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	post, err := p.posts.CreatePost(req.Title, req.Content, identity)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.Created(ctx, gin.H{"post": post})
}

// DeletePost removes a post by identifier. Admin only.
func (p *PostController) DeletePost(ctx *gin.Context) {
	if err := p.posts.DeletePost(ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted successfully"})
}
