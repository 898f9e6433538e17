package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// ValidateToken rejects requests without a valid JWT and stores the caller's
// identity in the context.
func ValidateToken(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set("user_id", claims["user_id"])
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		c.Set("is_admin", isAdmin)
	}
	c.Next()
}

// OptionalToken parses the JWT when one is present but lets anonymous
// requests through. The chatbot uses it so the track-order intent can tell
// signed-in callers from expired sessions.
func OptionalToken(c *gin.Context) {
	if tokenString := bearerToken(c); tokenString != "" {
		if claims, err := parseToken(tokenString); err == nil {
			c.Set("user_id", claims["user_id"])
			if isAdmin, ok := claims["is_admin"].(bool); ok {
				c.Set("is_admin", isAdmin)
			}
		}
	}
	c.Next()
}

// RequireAdmin must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	if isAdmin, _ := c.Get("is_admin"); isAdmin != true {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized as admin"})
		c.Abort()
		return
	}
	c.Next()
}
