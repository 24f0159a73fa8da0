package api

import "github.com/gin-gonic/gin"

// NewRouter assembles the gin engine with the full route table.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(ActiveUserMiddleware(app))

	r.GET("/me", GetMe(app))
	r.GET("/users", GetUsers(app))

	r.GET("/feed", GetFeed(app))
	r.GET("/stats", GetStats(app))

	r.GET("/sessions", GetSessions(app))
	r.POST("/sessions", PostSession(app))
	r.POST("/sessions/import", ImportSessions(app))
	r.PATCH("/sessions/:id", PatchSession(app))
	r.DELETE("/sessions/:id", DeleteSession(app))

	r.GET("/sessions/:id/likes", GetSessionLikes(app))
	r.PUT("/sessions/:id/like", PutSessionLike(app))
	r.DELETE("/sessions/:id/like", DeleteSessionLike(app))

	r.GET("/sessions/:id/comments", GetSessionComments(app))
	r.POST("/sessions/:id/comments", PostSessionComment(app))
	r.GET("/sessions/:id/comment-likes", GetSessionCommentLikes(app))

	r.DELETE("/comments/:id", DeleteComment(app))
	r.PUT("/comments/:id/like", PutCommentLike(app))
	r.DELETE("/comments/:id/like", DeleteCommentLike(app))

	r.GET("/follows", GetFollows(app))
	r.POST("/follows", PostFollow(app))
	r.DELETE("/follows/:userID", DeleteFollow(app))

	return r
}
