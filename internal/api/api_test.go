package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/pwslcc24-hash/Sleepr/internal"
	"github.com/pwslcc24-hash/Sleepr/internal/response"
	"github.com/pwslcc24-hash/Sleepr/internal/store"
)

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	seed := &internal.Snapshot{
		CurrentUserID: "user-1",
		Users: []internal.User{
			{ID: "user-1", FullName: "Ava Thompson"},
			{ID: "user-2", FullName: "Leo Brooks"},
		},
	}
	counter := 0
	st, err := store.Open(store.NewMemoryPersister(), seed,
		internal.NewZapLogger(zap.NewNop().Sugar()),
		store.WithClock(func() time.Time { return testTime }),
		store.WithIDGenerator(func(prefix string) string {
			counter++
			return fmt.Sprintf("%s-%d", prefix, counter)
		}),
	)
	assert.NoError(t, err)

	app := &Application{
		Log:   internal.NewZapLogger(zap.NewNop().Sugar()),
		Data:  st,
		Clock: func() time.Time { return testTime },
	}
	return NewRouter(app), st
}

func doJSON(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetMeResolvesCurrentUser(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, "GET", "/me", "", nil)
	assert.Equal(t, 200, w.Code)

	var resp response.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	user := resp.Data.(map[string]interface{})
	assert.Equal(t, "user-1", user["id"])
}

func TestActiveUserHeaderOverride(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, "GET", "/me", "", map[string]string{"X-User-ID": "user-2"})
	assert.Equal(t, 200, w.Code)
	var resp response.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	user := resp.Data.(map[string]interface{})
	assert.Equal(t, "user-2", user["id"])

	w = doJSON(r, "GET", "/me", "", map[string]string{"X-User-ID": "nobody"})
	assert.Equal(t, 401, w.Code)
}

func TestPostSession_ValidAndInvalid(t *testing.T) {
	r, _ := setupRouter(t)

	start := testTime.Add(-8 * time.Hour).Format(time.RFC3339)
	end := testTime.Format(time.RFC3339)

	// Valid
	body := `{"title":"Solid night","start_time":"` + start + `","end_time":"` + end + `","quality":"good"}`
	w := doJSON(r, "POST", "/sessions", body, nil)
	assert.Equal(t, 201, w.Code)

	var sess internal.SleepSession
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, internal.SourceManual, sess.Source)
	assert.InDelta(t, 8.0, sess.DurationHours, 0.0001)

	// Invalid: end before start
	body = `{"title":"Backwards","start_time":"` + end + `","end_time":"` + start + `"}`
	w = doJSON(r, "POST", "/sessions", body, nil)
	assert.Equal(t, 400, w.Code)

	// Invalid: missing title
	body = `{"start_time":"` + start + `","end_time":"` + end + `"}`
	w = doJSON(r, "POST", "/sessions", body, nil)
	assert.Equal(t, 400, w.Code)

	// Invalid: unknown quality
	body = `{"title":"Odd","start_time":"` + start + `","end_time":"` + end + `","quality":"stellar"}`
	w = doJSON(r, "POST", "/sessions", body, nil)
	assert.Equal(t, 400, w.Code)
}

func TestPatchSessionUnknownIDReturns404(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, "PATCH", "/sessions/session-missing", `{"title":"nope"}`, nil)
	assert.Equal(t, 404, w.Code)
}

func TestFeedShowsOwnAndFollowedSessions(t *testing.T) {
	r, st := setupRouter(t)
	ctx := httptest.NewRequest("GET", "/", nil).Context()

	_, err := st.CreateSession(ctx, internal.SleepSession{
		UserID:    "user-1",
		Title:     "mine",
		StartTime: testTime.Add(-24 * time.Hour),
		EndTime:   testTime.Add(-16 * time.Hour),
	})
	assert.NoError(t, err)
	_, err = st.CreateSession(ctx, internal.SleepSession{
		UserID:    "user-2",
		Title:     "theirs",
		StartTime: testTime.Add(-12 * time.Hour),
		EndTime:   testTime.Add(-4 * time.Hour),
	})
	assert.NoError(t, err)

	// Not following anyone: own sessions only.
	w := doJSON(r, "GET", "/feed", "", nil)
	assert.Equal(t, 200, w.Code)
	var resp response.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	feed := resp.Data.([]interface{})
	assert.Len(t, feed, 1)

	// Follow user-2 and the feed unions both.
	w = doJSON(r, "POST", "/follows", `{"following_id":"user-2"}`, nil)
	assert.Equal(t, 201, w.Code)

	w = doJSON(r, "GET", "/feed", "", nil)
	assert.Equal(t, 200, w.Code)
	resp = response.APIResponse{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	feed = resp.Data.([]interface{})
	assert.Len(t, feed, 2)
	first := feed[0].(map[string]interface{})
	assert.Equal(t, "theirs", first["title"])
}

func TestSelfFollowRejected(t *testing.T) {
	r, _ := setupRouter(t)
	w := doJSON(r, "POST", "/follows", `{"following_id":"user-1"}`, nil)
	assert.Equal(t, 400, w.Code)
}

func TestLikeMembershipEndpoints(t *testing.T) {
	r, st := setupRouter(t)
	ctx := httptest.NewRequest("GET", "/", nil).Context()

	sess, err := st.CreateSession(ctx, internal.SleepSession{
		UserID:    "user-2",
		Title:     "likeable",
		StartTime: testTime.Add(-12 * time.Hour),
		EndTime:   testTime.Add(-4 * time.Hour),
	})
	assert.NoError(t, err)

	w := doJSON(r, "PUT", "/sessions/"+sess.ID+"/like", "", nil)
	assert.Equal(t, 200, w.Code)

	// Liking again is a no-op.
	w = doJSON(r, "PUT", "/sessions/"+sess.ID+"/like", "", nil)
	assert.Equal(t, 200, w.Code)

	likes, err := st.ListLikesBySession(ctx, sess.ID)
	assert.NoError(t, err)
	assert.Len(t, likes, 1)

	w = doJSON(r, "DELETE", "/sessions/"+sess.ID+"/like", "", nil)
	assert.Equal(t, 200, w.Code)

	likes, err = st.ListLikesBySession(ctx, sess.ID)
	assert.NoError(t, err)
	assert.Empty(t, likes)
}

func TestCommentLifecycle(t *testing.T) {
	r, st := setupRouter(t)
	ctx := httptest.NewRequest("GET", "/", nil).Context()

	sess, err := st.CreateSession(ctx, internal.SleepSession{
		UserID:    "user-1",
		Title:     "discussed",
		StartTime: testTime.Add(-12 * time.Hour),
		EndTime:   testTime.Add(-4 * time.Hour),
	})
	assert.NoError(t, err)

	w := doJSON(r, "POST", "/sessions/"+sess.ID+"/comments", `{"text":"nice one"}`, map[string]string{"X-User-ID": "user-2"})
	assert.Equal(t, 201, w.Code)
	var comment internal.Comment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	assert.Equal(t, "user-2", comment.UserID)

	w = doJSON(r, "PUT", "/comments/"+comment.ID+"/like", "", nil)
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/sessions/"+sess.ID+"/comment-likes", "", nil)
	assert.Equal(t, 200, w.Code)
	var resp response.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.([]interface{}), 1)

	w = doJSON(r, "DELETE", "/comments/"+comment.ID, "", nil)
	assert.Equal(t, 200, w.Code)

	comments, err := st.ListCommentsBySession(ctx, sess.ID)
	assert.NoError(t, err)
	assert.Empty(t, comments)
}

func TestImportEndpoint(t *testing.T) {
	r, st := setupRouter(t)
	ctx := httptest.NewRequest("GET", "/", nil).Context()

	csv := "Sleep Score 4 Weeks,Score,Duration,Bedtime,Wake Time\n" +
		"2024-05-30,85,7h 45min,11:30 PM,7:15 AM\n"

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/sessions/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var resp response.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	result := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), result["imported"])

	sessions, err := st.ListSessionsByUser(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, internal.SourceGarmin, sessions[0].Source)
	assert.InDelta(t, 7.75, sessions[0].DurationHours, 0.0001)
}

func TestStatsEndpoint(t *testing.T) {
	r, st := setupRouter(t)
	ctx := httptest.NewRequest("GET", "/", nil).Context()

	_, err := st.CreateSession(ctx, internal.SleepSession{
		UserID:        "user-1",
		Title:         "recent",
		StartTime:     testTime.Add(-24 * time.Hour),
		EndTime:       testTime.Add(-16 * time.Hour),
		DurationHours: 8,
	})
	assert.NoError(t, err)

	w := doJSON(r, "GET", "/stats", "", nil)
	assert.Equal(t, 200, w.Code)
	var resp response.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	stats := resp.Data.(map[string]interface{})
	assert.InDelta(t, 8.0, stats["avg_7_days"].(float64), 0.0001)
	assert.Equal(t, float64(1), stats["total"])
}
