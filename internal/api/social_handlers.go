package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FollowRequest struct {
	FollowingID string `json:"following_id" validate:"required"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func GetFollows(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		follows, err := app.Store().ListFollows(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch follows")
			return
		}
		HandleSuccess(c, app.Logger(), follows, nil)
	}
}

func PostFollow(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)

		var body FollowRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := validate.Struct(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}
		if body.FollowingID == user.ID {
			HandleError(c, app.Logger(), errSelfFollow, 400, "Validation failed")
			return
		}

		follow, err := app.Store().CreateFollow(c.Request.Context(), user.ID, body.FollowingID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to follow")
			return
		}
		c.JSON(http.StatusCreated, follow)
	}
}

func DeleteFollow(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)
		ok, err := app.Store().DeleteFollow(c.Request.Context(), user.ID, c.Param("userID"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to unfollow")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": ok})
	}
}

func GetSessionLikes(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		likes, err := app.Store().ListLikesBySession(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch likes")
			return
		}
		HandleSuccess(c, app.Logger(), likes, nil)
	}
}

func PutSessionLike(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)
		created, err := app.Store().AddLike(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to like session")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"liked": true, "created": created})
	}
}

func DeleteSessionLike(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)
		removed, err := app.Store().RemoveLike(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to unlike session")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"liked": false, "removed": removed})
	}
}

func GetSessionComments(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		comments, err := app.Store().ListCommentsBySession(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch comments")
			return
		}
		HandleSuccess(c, app.Logger(), comments, nil)
	}
}

func PostSessionComment(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)

		var body CommentRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := validate.Struct(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		comment, err := app.Store().CreateComment(c.Request.Context(), user.ID, c.Param("id"), body.Text)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to comment")
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

func DeleteComment(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := app.Store().DeleteComment(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete comment")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": ok})
	}
}

func GetSessionCommentLikes(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		likes, err := app.Store().ListCommentLikesForSession(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch comment likes")
			return
		}
		HandleSuccess(c, app.Logger(), likes, nil)
	}
}

func PutCommentLike(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)
		created, err := app.Store().AddCommentLike(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to like comment")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"liked": true, "created": created})
	}
}

func DeleteCommentLike(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)
		removed, err := app.Store().RemoveCommentLike(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to unlike comment")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"liked": false, "removed": removed})
	}
}
