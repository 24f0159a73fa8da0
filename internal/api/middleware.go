package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pwslcc24-hash/Sleepr/internal"
)

// RequestIDMiddleware ensures every request has a correlation/request ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Next()
	}
}

// ActiveUserMiddleware resolves the user every operation acts as: the
// store's current-user pointer, or the user named by X-User-ID when the
// header is present. Unknown ids are rejected.
func ActiveUserMiddleware(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user *internal.User
		var err error
		if id := c.GetHeader("X-User-ID"); id != "" {
			user, err = app.Store().GetUser(c.Request.Context(), id)
		} else {
			user, err = app.Store().CurrentUser(c.Request.Context())
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user", user)
		c.Next()
	}
}
