// Package seed holds the fixture the store falls back to when no persisted
// snapshot exists.
package seed

import (
	"time"

	"github.com/pwslcc24-hash/Sleepr/internal"
)

func ptr(v float64) *float64 { return &v }

// Snapshot builds the seed fixture anchored to now. Session dates are
// offsets from now so the feed and stats windows look alive on first run.
func Snapshot(now time.Time) *internal.Snapshot {
	day := func(offset float64) time.Time {
		return now.Add(-time.Duration(offset * 24 * float64(time.Hour)))
	}

	return &internal.Snapshot{
		CurrentUserID: "user-1",
		Users: []internal.User{
			{
				ID:           "user-1",
				FullName:     "Ava Thompson",
				Bio:          "Runner, coffee lover, sleep enthusiast",
				ProfilePhoto: "https://images.unsplash.com/photo-1544723795-3fb6469f5b39?auto=format&fit=crop&w=200&q=80",
			},
			{
				ID:           "user-2",
				FullName:     "Leo Brooks",
				Bio:          "Cyclist chasing REM goals",
				ProfilePhoto: "https://images.unsplash.com/photo-1504593811423-6dd665756598?auto=format&fit=crop&w=200&q=80",
			},
			{
				ID:           "user-3",
				FullName:     "Maya Patel",
				Bio:          "Product designer + new mom",
				ProfilePhoto: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?auto=format&fit=crop&w=200&q=80",
			},
		},
		Sessions: []internal.SleepSession{
			{
				ID:               "session-1",
				UserID:           "user-1",
				Title:            "Solid 8 hours",
				Description:      "Best sleep this week. Minimal wake-ups!",
				StartTime:        day(1),
				EndTime:          day(0.8),
				DurationHours:    8.2,
				Source:           internal.SourceGarmin,
				Score:            ptr(88),
				RestingHeartRate: ptr(52),
				Quality:          internal.QualityExcellent,
				CreatedDate:      day(1),
				SleepStages: internal.SleepStages{
					{StartTime: day(1), EndTime: day(0.95), StageType: "light"},
				},
			},
			{
				ID:            "session-2",
				UserID:        "user-2",
				Title:         "Late night debugging",
				Description:   "Too much caffeine but still ok",
				StartTime:     day(2.5),
				EndTime:       day(2.2),
				DurationHours: 6.1,
				Source:        internal.SourceManual,
				Quality:       internal.QualityFair,
				CreatedDate:   day(2.5),
			},
			{
				ID:            "session-3",
				UserID:        "user-3",
				Title:         "Newborn schedule",
				Description:   "Three wake-ups but feeling hopeful",
				StartTime:     day(3.2),
				EndTime:       day(3),
				DurationHours: 5.5,
				Source:        internal.SourceManual,
				Quality:       internal.QualityPoor,
				CreatedDate:   day(3.2),
			},
		},
		Follows: []internal.Follow{
			{ID: "follow-1", FollowerID: "user-1", FollowingID: "user-2"},
			{ID: "follow-2", FollowerID: "user-1", FollowingID: "user-3"},
		},
		Likes: []internal.Like{
			{ID: "like-1", UserID: "user-1", SessionID: "session-2"},
			{ID: "like-2", UserID: "user-2", SessionID: "session-1"},
		},
		Comments: []internal.Comment{
			{
				ID:          "comment-1",
				UserID:      "user-2",
				SessionID:   "session-1",
				Text:        "Crushing it!",
				CreatedDate: day(0.9),
			},
			{
				ID:          "comment-2",
				UserID:      "user-3",
				SessionID:   "session-1",
				Text:        "Teach me your wind-down routine",
				CreatedDate: day(0.85),
			},
		},
		CommentLikes: []internal.CommentLike{
			{ID: "cl-1", UserID: "user-1", CommentID: "comment-1"},
		},
	}
}
