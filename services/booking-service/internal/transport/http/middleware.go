package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	a "github.com/zvv24/shareit/pkg/auth"
)

// JWTAuth sets the caller identity ("sub") used by every booking operation.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		tok := strings.TrimPrefix(h, "Bearer ")
		claims, err := a.ParseValidate(tok)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("sub", claims.Sub)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	sub, _ := c.Get("sub")
	id, _ := sub.(string)
	return id
}
