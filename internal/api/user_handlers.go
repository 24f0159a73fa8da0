package api

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var errSelfFollow = errors.New("cannot follow yourself")

func GetMe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), activeUser(c), nil)
	}
}

func GetUsers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := app.Store().ListUsers(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch users")
			return
		}
		HandleSuccess(c, app.Logger(), users, nil)
	}
}
