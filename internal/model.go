package internal

import (
	"encoding/json"
	"time"
)

// SleepQuality is the subjective rating attached to a session.
type SleepQuality string

const (
	QualityPoor      SleepQuality = "poor"
	QualityFair      SleepQuality = "fair"
	QualityGood      SleepQuality = "good"
	QualityExcellent SleepQuality = "excellent"
)

// SessionSource tells where a session came from.
type SessionSource string

const (
	SourceManual SessionSource = "manual"
	SourceGarmin SessionSource = "garmin"
)

type User struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Bio          string `json:"bio,omitempty"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
}

// SleepStage is one interval within a device-recorded night.
type SleepStage struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	StageType string    `json:"stage_type"` // light, deep, rem, awake
}

// SleepStages carries the stage intervals of a session. Older snapshots
// stored the list as a JSON-encoded string; unmarshalling accepts both
// forms so those blobs still load.
type SleepStages []SleepStage

func (s *SleepStages) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		if raw == "" {
			*s = nil
			return nil
		}
		var stages []SleepStage
		if err := json.Unmarshal([]byte(raw), &stages); err != nil {
			return err
		}
		*s = stages
		return nil
	}
	var stages []SleepStage
	if err := json.Unmarshal(data, &stages); err != nil {
		return err
	}
	*s = stages
	return nil
}

type SleepSession struct {
	ID               string        `json:"id"`
	UserID           string        `json:"user_id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	DurationHours    float64       `json:"duration_hours"`
	Source           SessionSource `json:"source"`
	Quality          SleepQuality  `json:"quality,omitempty"`
	Score            *float64      `json:"score,omitempty"`
	RestingHeartRate *float64      `json:"resting_heart_rate,omitempty"`
	SleepStages      SleepStages   `json:"sleep_stages,omitempty"`
	CreatedDate      time.Time     `json:"created_date"`
}

// Follow is a directed edge: the follower sees the followed user's sessions.
type Follow struct {
	ID          string `json:"id"`
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
}

type Like struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type Comment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	SessionID   string    `json:"session_id"`
	Text        string    `json:"text"`
	CreatedDate time.Time `json:"created_date"`
}

type CommentLike struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	CommentID string `json:"comment_id"`
}

// ValidQuality reports whether q is one of the known ratings. Empty means
// unset and is accepted.
func ValidQuality(q SleepQuality) bool {
	switch q {
	case "", QualityPoor, QualityFair, QualityGood, QualityExcellent:
		return true
	}
	return false
}
