package mockapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// authRequired validates the Authorization: Bearer <token> header and
// answers in the DRF dialect the real API speaks: a 401 body carrying
// a single "detail" key.
func authRequired(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Authentication credentials were not provided.",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Invalid Authorization header format.",
			})
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Given token not valid for any token type.",
			})
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("username", claims.Username)

		c.Next()
	}
}
