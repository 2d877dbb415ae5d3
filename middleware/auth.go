package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"miniboard/services"
	"miniboard/utils"
)

const (
	// ContextIdentityKey is the key used to store the authenticated identity in Gin context.
	ContextIdentityKey = "identity"
	// ContextTokenKey stores the raw bearer token for logout handling.
	ContextTokenKey = "token"
)

// AuthRequired ensures the request is authenticated via JWT. The identity is
// rebuilt from the verified claims; nothing identity-related is ever read
// from the request body.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(tokenString) {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextIdentityKey, services.Identity{
			ID:       claims.UserID,
			Username: claims.Username,
			IsAdmin:  claims.IsAdmin,
		})
		ctx.Set(ContextTokenKey, tokenString)
		ctx.Next()
	}
}

// AdminRequired denies the request unless the authenticated identity carries
// the admin flag. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, ok := CurrentIdentity(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}
		if !identity.IsAdmin {
			utils.Error(ctx, http.StatusForbidden, 40301, "admin privilege required")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthRequired.
func CurrentIdentity(ctx *gin.Context) (services.Identity, bool) {
	v, exists := ctx.Get(ContextIdentityKey)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := v.(services.Identity)
	return identity, ok
}
