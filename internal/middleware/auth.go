package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/msaedi/instructly-sub007/internal/models"
	"github.com/msaedi/instructly-sub007/pkg/config"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// Actor attaches verified claims when a bearer token is present but never
// blocks: authentication is owned by the identity service, this engine only
// attributes the acting user for audit records.
func Actor(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil {
			c.Next()
			return
		}

		if claims, ok := token.Claims.(*models.JWTClaims); ok && token.Valid {
			c.Set(ContextUserKey, claims)
		}
		c.Next()
	}
}
