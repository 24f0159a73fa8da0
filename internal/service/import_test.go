package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pwslcc24-hash/Sleepr/internal"
)

const exportHeader = "Sleep Score 4 Weeks,Score,Duration,Bedtime,Wake Time,Resting Heart Rate,Quality\n"

func TestImportSkipsConflictsWithoutOverwrite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	existing := addSession(t, s, "u1", time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC), 8)

	csv := exportHeader +
		"2024-01-01,85,7h 15min,11:30 PM,6:45 AM,52,Good\n" +
		"2024-01-05,80,6h 30min,11:00 PM,5:30 AM,50,Fair\n"

	result, err := Import(ctx, s, "u1", strings.NewReader(csv), false)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Deleted)
	assert.Empty(t, result.RowErrors)

	sessions, err := s.ListSessionsByUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, sessions, 2)

	// The conflicting stored session is untouched.
	var found bool
	for _, sess := range sessions {
		if sess.ID == existing.ID {
			found = true
			assert.Equal(t, internal.SourceManual, sess.Source)
		}
	}
	assert.True(t, found)
}

func TestImportOverwriteDeletesConflictingSessionsFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	existing := addSession(t, s, "u1", time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC), 8)
	_, err := s.AddLike(ctx, "u2", existing.ID)
	assert.NoError(t, err)

	csv := exportHeader +
		"2024-01-01,85,7h 15min,11:30 PM,6:45 AM,52,Good\n" +
		"2024-01-05,80,6h 30min,11:00 PM,5:30 AM,50,Fair\n"

	result, err := Import(ctx, s, "u1", strings.NewReader(csv), true)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 1, result.Deleted)

	sessions, err := s.ListSessionsByUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, sessions, 2)
	for _, sess := range sessions {
		assert.NotEqual(t, existing.ID, sess.ID)
		assert.Equal(t, internal.SourceGarmin, sess.Source)
		assert.Equal(t, "Imported from CSV", sess.Description)
		assert.True(t, strings.HasPrefix(sess.Title, "Imported Sleep - "))
	}

	// The replaced session's likes are gone with it.
	likes, err := s.ListLikesBySession(ctx, existing.ID)
	assert.NoError(t, err)
	assert.Empty(t, likes)
}

func TestImportCarriesRowErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	csv := exportHeader +
		"bad-date,85,7h 15min,11:30 PM,6:45 AM,52,Good\n" +
		"2024-01-05,80,6h 30min,11:00 PM,5:30 AM,50,Fair\n"

	result, err := Import(ctx, s, "u1", strings.NewReader(csv), false)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, result.RowErrors, 1)
	assert.Contains(t, result.RowErrors[0], "Invalid date format")
}

func TestPreviewImportDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	addSession(t, s, "u1", time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC), 8)

	csv := exportHeader + "2024-01-01,85,7h 15min,11:30 PM,6:45 AM,52,Good\n"
	preview, err := PreviewImport(ctx, s, "u1", strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Len(t, preview.Rows, 1)
	assert.Equal(t, 1, preview.Conflicts)

	sessions, err := s.ListSessionsByUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, sessions, 1)
}
