package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pwslcc24-hash/Sleepr/internal"
	"github.com/pwslcc24-hash/Sleepr/internal/service"
	"github.com/pwslcc24-hash/Sleepr/internal/store"
)

var validate = validator.New()

type SessionRequest struct {
	Title            string                `json:"title" validate:"required"`
	Description      string                `json:"description,omitempty"`
	StartTime        time.Time             `json:"start_time" validate:"required"`
	EndTime          time.Time             `json:"end_time" validate:"required,gtfield=StartTime"`
	DurationHours    float64               `json:"duration_hours" validate:"omitempty,gte=0"`
	Source           string                `json:"source,omitempty" validate:"omitempty,oneof=manual garmin"`
	Quality          string                `json:"quality,omitempty" validate:"omitempty,oneof=poor fair good excellent"`
	Score            *float64              `json:"score,omitempty"`
	RestingHeartRate *float64              `json:"resting_heart_rate,omitempty"`
	SleepStages      []internal.SleepStage `json:"sleep_stages,omitempty"`
}

type SessionPatchRequest struct {
	Title            *string               `json:"title,omitempty"`
	Description      *string               `json:"description,omitempty"`
	StartTime        *time.Time            `json:"start_time,omitempty"`
	EndTime          *time.Time            `json:"end_time,omitempty"`
	DurationHours    *float64              `json:"duration_hours,omitempty" validate:"omitempty,gte=0"`
	Source           *string               `json:"source,omitempty" validate:"omitempty,oneof=manual garmin"`
	Quality          *string               `json:"quality,omitempty" validate:"omitempty,oneof=poor fair good excellent"`
	Score            *float64              `json:"score,omitempty"`
	RestingHeartRate *float64              `json:"resting_heart_rate,omitempty"`
	SleepStages      []internal.SleepStage `json:"sleep_stages,omitempty"`
}

func GetFeed(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)
		feed, err := service.Feed(c.Request.Context(), app.Store(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch feed")
			return
		}
		HandleSuccess(c, app.Logger(), feed, nil)
	}
}

func GetStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)
		stats, err := service.UserStats(c.Request.Context(), app.Store(), user.ID, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch stats")
			return
		}
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}

func GetSessions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)
		userID := c.Query("user_id")
		if userID == "" {
			userID = user.ID
		}
		sessions, err := app.Store().ListSessionsByUser(c.Request.Context(), userID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch sessions")
			return
		}
		HandleSuccess(c, app.Logger(), sessions, nil)
	}
}

func PostSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)

		var body SessionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := validate.Struct(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		duration := body.DurationHours
		if duration == 0 {
			duration = body.EndTime.Sub(body.StartTime).Hours()
		}

		sess, err := app.Store().CreateSession(c.Request.Context(), internal.SleepSession{
			UserID:           user.ID,
			Title:            body.Title,
			Description:      body.Description,
			StartTime:        body.StartTime,
			EndTime:          body.EndTime,
			DurationHours:    duration,
			Source:           internal.SessionSource(body.Source),
			Quality:          internal.SleepQuality(body.Quality),
			Score:            body.Score,
			RestingHeartRate: body.RestingHeartRate,
			SleepStages:      body.SleepStages,
		})
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save session")
			return
		}
		c.JSON(http.StatusCreated, sess)
	}
}

func PatchSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body SessionPatchRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := validate.Struct(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		patch := store.SessionPatch{
			Title:            body.Title,
			Description:      body.Description,
			StartTime:        body.StartTime,
			EndTime:          body.EndTime,
			DurationHours:    body.DurationHours,
			Score:            body.Score,
			RestingHeartRate: body.RestingHeartRate,
			SleepStages:      body.SleepStages,
		}
		if body.Source != nil {
			source := internal.SessionSource(*body.Source)
			patch.Source = &source
		}
		if body.Quality != nil {
			quality := internal.SleepQuality(*body.Quality)
			patch.Quality = &quality
		}

		sess, err := app.Store().UpdateSession(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to update session")
			return
		}
		HandleSuccess(c, app.Logger(), sess, nil)
	}
}

func DeleteSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := app.Store().DeleteSession(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete session")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": ok})
	}
}

// ImportSessions accepts a Garmin CSV export, either as the raw request
// body or as a multipart "file" field. ?preview=true parses without
// committing; ?overwrite=true replaces conflicting sessions.
func ImportSessions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := activeUser(c)

		reader := c.Request.Body
		if file, _, err := c.Request.FormFile("file"); err == nil {
			defer file.Close()
			reader = file
		}

		if c.Query("preview") == "true" {
			preview, err := service.PreviewImport(c.Request.Context(), app.Store(), user.ID, reader)
			if err != nil {
				HandleError(c, app.Logger(), err, 400, "Failed to parse CSV")
				return
			}
			HandleSuccess(c, app.Logger(), preview, nil)
			return
		}

		overwrite := c.Query("overwrite") == "true"
		result, err := service.Import(c.Request.Context(), app.Store(), user.ID, reader, overwrite)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Failed to import CSV")
			return
		}
		HandleSuccess(c, app.Logger(), result, map[string]any{"overwrite": overwrite})
	}
}
