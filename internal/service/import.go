package service

import (
	"context"
	"fmt"
	"io"

	"github.com/pwslcc24-hash/Sleepr/internal"
	"github.com/pwslcc24-hash/Sleepr/internal/garmin"
	"github.com/pwslcc24-hash/Sleepr/internal/store"
)

// ImportPreview is what the caller shows before committing an import.
type ImportPreview struct {
	Rows      []garmin.Row `json:"rows"`
	RowErrors []string     `json:"row_errors"`
	Conflicts int          `json:"conflicts"`
}

// ImportResult reports what a committed import did.
type ImportResult struct {
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	Deleted   int      `json:"deleted"`
	RowErrors []string `json:"row_errors,omitempty"`
}

// PreviewImport parses the export against the user's existing sessions
// without mutating anything.
func PreviewImport(ctx context.Context, st *store.Store, userID string, r io.Reader) (*ImportPreview, error) {
	existing, err := st.ListSessionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	parsed, err := garmin.ParseExport(r, existing)
	if err != nil {
		return nil, err
	}
	preview := &ImportPreview{Rows: parsed.Rows, RowErrors: parsed.RowErrors}
	for _, row := range parsed.Rows {
		if row.HasConflict {
			preview.Conflicts++
		}
	}
	return preview, nil
}

// ImportRows commits parsed rows for the user. With overwrite off,
// conflicting rows are skipped and their stored sessions left untouched.
// With overwrite on, each conflicting stored session is deleted first and
// every row is created. Created sessions are tagged as garmin-sourced.
func ImportRows(ctx context.Context, st *store.Store, userID string, rows []garmin.Row, overwrite bool) (*ImportResult, error) {
	result := &ImportResult{}

	accepted := make([]garmin.Row, 0, len(rows))
	for _, row := range rows {
		if row.HasConflict && !overwrite {
			result.Skipped++
			continue
		}
		accepted = append(accepted, row)
	}

	if overwrite {
		for _, row := range accepted {
			if row.ExistingSessionID == "" {
				continue
			}
			if _, err := st.DeleteSession(ctx, row.ExistingSessionID); err != nil {
				return nil, err
			}
			result.Deleted++
		}
	}

	payloads := make([]internal.SleepSession, 0, len(accepted))
	for _, row := range accepted {
		payloads = append(payloads, internal.SleepSession{
			UserID:           userID,
			Title:            fmt.Sprintf("Imported Sleep - %s", row.Date),
			Description:      "Imported from CSV",
			StartTime:        row.StartTime,
			EndTime:          row.EndTime,
			DurationHours:    row.DurationHours,
			Source:           internal.SourceGarmin,
			Score:            row.Score,
			RestingHeartRate: row.RestingHeartRate,
			Quality:          row.Quality,
		})
	}
	if len(payloads) > 0 {
		if _, err := st.BulkCreateSessions(ctx, payloads); err != nil {
			return nil, err
		}
	}
	result.Imported = len(payloads)
	return result, nil
}

// Import parses and commits in one step, carrying row errors through to
// the result.
func Import(ctx context.Context, st *store.Store, userID string, r io.Reader, overwrite bool) (*ImportResult, error) {
	preview, err := PreviewImport(ctx, st, userID, r)
	if err != nil {
		return nil, err
	}
	result, err := ImportRows(ctx, st, userID, preview.Rows, overwrite)
	if err != nil {
		return nil, err
	}
	result.RowErrors = preview.RowErrors
	return result, nil
}
