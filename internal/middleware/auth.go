package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/HarshaLokesh/phronetic-ai/internal/models"
	"github.com/HarshaLokesh/phronetic-ai/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserKey   = "currentUser"
	ContextClaimsKey = "tokenClaims"
)

// AuthMiddleware verifies the bearer token and puts the resolved user into
// the gin context. Tokens are accepted from the Authorization header only;
// query parameters and cookies would leak tokens into logs.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			util.AbortError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				util.AbortError(c, http.StatusUnauthorized, "Token expired")
			} else {
				util.AbortError(c, http.StatusUnauthorized, "Could not validate credentials")
			}
			return
		}

		// revoked before expiry via logout
		if claims.ID != "" {
			var revoked int64
			if err := db.Model(&models.RevokedToken{}).
				Where("jti = ?", claims.ID).
				Count(&revoked).Error; err != nil {
				util.AbortError(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			if revoked > 0 {
				util.AbortError(c, http.StatusUnauthorized, "Token revoked")
				return
			}
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.AbortError(c, http.StatusUnauthorized, "Could not validate credentials")
			} else {
				util.AbortError(c, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		if !user.IsActive {
			util.AbortError(c, http.StatusUnauthorized, "Inactive user")
			return
		}

		c.Set(ContextUserKey, &user)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware, or nil on
// unauthenticated routes.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentClaims returns the verified token claims for the request, if any.
func CurrentClaims(c *gin.Context) *util.Claims {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*util.Claims)
	if !ok {
		return nil
	}
	return claims
}
