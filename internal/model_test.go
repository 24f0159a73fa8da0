package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleepStagesUnmarshalStructuredForm(t *testing.T) {
	blob := `[{"start_time":"2024-01-01T23:00:00Z","end_time":"2024-01-02T01:00:00Z","stage_type":"deep"}]`
	var stages SleepStages
	assert.NoError(t, json.Unmarshal([]byte(blob), &stages))
	assert.Len(t, stages, 1)
	assert.Equal(t, "deep", stages[0].StageType)
}

func TestSleepStagesUnmarshalLegacyStringForm(t *testing.T) {
	// Older snapshots stored the list as an encoded string.
	blob := `"[{\"start_time\":\"2024-01-01T23:00:00Z\",\"end_time\":\"2024-01-02T01:00:00Z\",\"stage_type\":\"light\"}]"`
	var stages SleepStages
	assert.NoError(t, json.Unmarshal([]byte(blob), &stages))
	assert.Len(t, stages, 1)
	assert.Equal(t, "light", stages[0].StageType)

	var empty SleepStages
	assert.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.Nil(t, empty)
}

func TestSessionUnmarshalWithLegacyStages(t *testing.T) {
	blob := `{
		"id": "session-1",
		"user_id": "user-1",
		"title": "Solid 8 hours",
		"start_time": "2024-01-01T22:30:00Z",
		"end_time": "2024-01-02T06:30:00Z",
		"duration_hours": 8,
		"source": "garmin",
		"score": 88,
		"sleep_stages": "[{\"start_time\":\"2024-01-01T22:30:00Z\",\"end_time\":\"2024-01-02T00:30:00Z\",\"stage_type\":\"light\"}]",
		"created_date": "2024-01-02T06:30:00Z"
	}`
	var sess SleepSession
	assert.NoError(t, json.Unmarshal([]byte(blob), &sess))
	assert.Equal(t, SourceGarmin, sess.Source)
	assert.NotNil(t, sess.Score)
	assert.Equal(t, 88.0, *sess.Score)
	assert.Len(t, sess.SleepStages, 1)
}

func TestSnapshotCloneSharesNoMemory(t *testing.T) {
	score := 77.0
	snap := &Snapshot{
		CurrentUserID: "u1",
		Users:         []User{{ID: "u1", FullName: "Ava"}},
		Sessions: []SleepSession{{
			ID:     "s1",
			UserID: "u1",
			Score:  &score,
			SleepStages: SleepStages{
				{StartTime: time.Now(), EndTime: time.Now(), StageType: "light"},
			},
		}},
		Likes: []Like{{ID: "l1", UserID: "u1", SessionID: "s1"}},
	}

	clone := snap.Clone()
	clone.Users[0].FullName = "changed"
	*clone.Sessions[0].Score = 1
	clone.Sessions[0].SleepStages[0].StageType = "deep"
	clone.Likes[0].UserID = "u2"

	assert.Equal(t, "Ava", snap.Users[0].FullName)
	assert.Equal(t, 77.0, *snap.Sessions[0].Score)
	assert.Equal(t, "light", snap.Sessions[0].SleepStages[0].StageType)
	assert.Equal(t, "u1", snap.Likes[0].UserID)
}
