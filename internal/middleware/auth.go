package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDContextKey is where the authenticated user id lands in the gin context.
const UserIDContextKey = "userID"

type claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token issued by the auth provider and
// stores the authenticated user id in the context. Session management itself
// lives with the provider; this only verifies its signature.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}

		userID, err := ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// BearerToken extracts the raw token from the Authorization header, falling
// back to the token query parameter for websocket handshakes.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}

// ParseToken verifies an HMAC-signed token and returns the user id claim.
func ParseToken(secret, tokenString string) (int, error) {
	if tokenString == "" {
		return 0, errors.New("empty token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	parsed, ok := token.Claims.(*claims)
	if !ok || !token.Valid || parsed.UserID == 0 {
		return 0, errors.New("invalid token")
	}
	return parsed.UserID, nil
}

// IssueToken signs a token for the user id. Used by tests and local tooling;
// production tokens come from the auth provider.
func IssueToken(secret string, userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{UserID: userID})
	return token.SignedString([]byte(secret))
}
