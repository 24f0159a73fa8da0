package service

import (
	"context"
	"sort"
	"time"

	"github.com/pwslcc24-hash/Sleepr/internal"
	"github.com/pwslcc24-hash/Sleepr/internal/store"
)

// Feed returns the user's own sessions unioned with sessions from everyone
// the user follows, most recent start first. Following nobody leaves only
// the user's own sessions.
func Feed(ctx context.Context, st *store.Store, userID string) ([]internal.SleepSession, error) {
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	follows, err := st.ListFollows(ctx)
	if err != nil {
		return nil, err
	}

	following := make(map[string]bool)
	for _, f := range follows {
		if f.FollowerID == userID {
			following[f.FollowingID] = true
		}
	}

	feed := make([]internal.SleepSession, 0, len(sessions))
	for _, sess := range sessions {
		if sess.UserID == userID || following[sess.UserID] {
			feed = append(feed, sess)
		}
	}
	sort.Slice(feed, func(i, j int) bool {
		return feed[i].StartTime.After(feed[j].StartTime)
	})
	return feed, nil
}

// Stats are the profile numbers: mean duration over rolling windows plus
// the total session count.
type Stats struct {
	Avg7Days  float64 `json:"avg_7_days"`
	Avg30Days float64 `json:"avg_30_days"`
	Total     int     `json:"total"`
}

// CalculateStats averages duration_hours over 7- and 30-day windows
// anchored at now. Empty windows default to zero.
func CalculateStats(sessions []internal.SleepSession, now time.Time) Stats {
	sevenDaysAgo := now.AddDate(0, 0, -7)
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	var sum7, sum30 float64
	var n7, n30 int
	for _, sess := range sessions {
		if !sess.StartTime.Before(sevenDaysAgo) {
			sum7 += sess.DurationHours
			n7++
		}
		if !sess.StartTime.Before(thirtyDaysAgo) {
			sum30 += sess.DurationHours
			n30++
		}
	}

	stats := Stats{Total: len(sessions)}
	if n7 > 0 {
		stats.Avg7Days = sum7 / float64(n7)
	}
	if n30 > 0 {
		stats.Avg30Days = sum30 / float64(n30)
	}
	return stats
}

// UserStats fetches the user's sessions and computes their profile stats.
func UserStats(ctx context.Context, st *store.Store, userID string, now time.Time) (Stats, error) {
	sessions, err := st.ListSessionsByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return CalculateStats(sessions, now), nil
}
