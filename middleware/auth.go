package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stocks-api/auth"
	"stocks-api/dto"
	"stocks-api/models"
)

const principalKey = "principal"

// UserLookup resolves the user named by an access token.
type UserLookup interface {
	FindByUserName(ctx context.Context, userName string) (*models.AppUser, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the
// caller's auth.Principal in the context.
func JWTAuth(issuer *auth.TokenIssuer, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authorization header required"})
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Bearer token required"})
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Token expired or invalid"})
			return
		}

		// the token names a user that may have been removed since it was issued
		user, err := users.FindByUserName(c.Request.Context(), claims.GivenName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unknown user"})
			return
		}

		c.Set(principalKey, auth.Principal{UserID: user.ID, UserName: user.UserName})
		c.Next()
	}
}

// CurrentPrincipal returns the caller stored by JWTAuth.
func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
