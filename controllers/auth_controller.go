package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"miniboard/middleware"
	"miniboard/services"
	"miniboard/utils"
)

const tokenDuration = 72 * time.Hour

// AuthController handles registration, login and user administration.
type AuthController struct {
	identity *services.IdentityService
}

// NewAuthController creates an AuthController.
func NewAuthController(identity *services.IdentityService) *AuthController {
	return &AuthController{identity: identity}
}

// Register handles local account registration with bcrypt hashing.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "username and password are required")
		return
	}

	user, err := a.identity.Register(req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.Created(ctx, gin.H{"user": user})
}

// Login verifies user credentials and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "username and password are required")
		return
	}

	user, err := a.identity.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.IsAdmin, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"isAdmin":  user.IsAdmin,
		},
	})
}

// Logout invalidates the presented token by blacklisting it until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	tokenString := ctx.GetString(middleware.ContextTokenKey)
	if tokenString == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
		return
	}

	expiresAt := time.Now().Add(tokenDuration)
	if claims, err := utils.ParseToken(tokenString); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	utils.BlacklistToken(tokenString, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the current authenticated user's information.
func (a *AuthController) Me(ctx *gin.Context) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	utils.Success(ctx, gin.H{"user": gin.H{
		"id":       identity.ID,
		"username": identity.Username,
		"isAdmin":  identity.IsAdmin,
	}})
}

// ListUsers returns all users without password material. Admin only.
func (a *AuthController) ListUsers(ctx *gin.Context) {
	users, err := a.identity.ListUsers()
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, users)
}

// DeleteUser removes a user by identifier. Admin only. The user's posts are
// left in place.
func (a *AuthController) DeleteUser(ctx *gin.Context) {
	if err := a.identity.DeleteUser(ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "user deleted successfully"})
}
