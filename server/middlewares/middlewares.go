package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rustlingbird/chirprack/apperror"
	"github.com/rustlingbird/chirprack/auth"
)

// JWT middleware fetches the session token from the Authorization header as
// a bearer credential. It then verifies the token and adds a new field "sub"
// storing the user's id for downstream handlers. It aborts with 401 on token
// not provided or token is invalid (wrong signature or expired).
func JWT(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   apperror.Unauthorized,
				"message": "missing bearer token",
			})
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   apperror.Unauthorized,
				"message": apperror.Message(err),
			})
			return
		}

		// Successfully validated the token, replace the credential with the
		// resolved subject (user id) for handlers to consume.
		c.Request.Header.Del("Authorization")
		c.Request.Header.Set("sub", claims.UserID)

		c.Next()
	}
}
