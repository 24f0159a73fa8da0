// Package garmin parses Garmin Connect sleep export CSVs into session
// drafts and flags rows that collide with already-stored sessions.
package garmin

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pwslcc24-hash/Sleepr/internal"
)

const (
	colDate     = "Sleep Score 4 Weeks"
	colScore    = "Score"
	colDuration = "Duration"
	colBedtime  = "Bedtime"
	colWakeTime = "Wake Time"
	colRestHR   = "Resting Heart Rate"
	colQuality  = "Quality"
)

const dateLayout = "2006-01-02"

// Row is one parsed export line, ready to become a session draft.
type Row struct {
	Date              string
	StartTime         time.Time
	EndTime           time.Time
	DurationHours     float64
	Score             *float64
	RestingHeartRate  *float64
	Quality           internal.SleepQuality
	HasConflict       bool
	ExistingSessionID string
}

// ParseResult carries the accepted rows plus the per-row errors that did
// not stop the parse.
type ParseResult struct {
	Rows      []Row
	RowErrors []string
}

var (
	hoursRe   = regexp.MustCompile(`(\d+)h`)
	minutesRe = regexp.MustCompile(`(\d+)min`)
	clockRe   = regexp.MustCompile(`(?i)(\d+):(\d+)\s*(AM|PM)`)
)

// parseDuration converts the compact "7h 45min" form to fractional hours.
func parseDuration(s string) (float64, error) {
	if s == "" || s == "--" {
		return 0, fmt.Errorf("empty duration")
	}
	hm := hoursRe.FindStringSubmatch(s)
	mm := minutesRe.FindStringSubmatch(s)
	if hm == nil && mm == nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	hours := 0
	if hm != nil {
		hours, _ = strconv.Atoi(hm[1])
	}
	minutes := 0
	if mm != nil {
		minutes, _ = strconv.Atoi(mm[1])
	}
	return float64(hours) + float64(minutes)/60, nil
}

// parseClock reads a 12-hour "h:mm AM/PM" time of day.
func parseClock(s string) (hour, minute int, err error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time %q", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	switch strings.ToUpper(m[3]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return hour, minute, nil
}

func optionalNumber(cell string) *float64 {
	if cell == "" || cell == "--" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &v
}

type header struct {
	date, score, duration, bedtime, wakeTime int
	restHR, quality                          int
}

func indexHeader(cells []string) (*header, error) {
	idx := func(name string) int {
		for i, c := range cells {
			if c == name {
				return i
			}
		}
		return -1
	}
	h := &header{
		date:     idx(colDate),
		score:    idx(colScore),
		duration: idx(colDuration),
		bedtime:  idx(colBedtime),
		wakeTime: idx(colWakeTime),
		restHR:   idx(colRestHR),
		quality:  idx(colQuality),
	}
	var missing []string
	for _, req := range []struct {
		name string
		pos  int
	}{
		{colDate, h.date},
		{colScore, h.score},
		{colDuration, h.duration},
		{colBedtime, h.bedtime},
		{colWakeTime, h.wakeTime},
	} {
		if req.pos == -1 {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("garmin: CSV must include: %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ParseExport reads the export and matches each row's date against the
// user's existing sessions (by calendar date of the session start). Rows
// whose Score is missing or the "--" placeholder are skipped silently;
// other malformed rows collect an error and the parse continues. Only an
// entirely missing required column aborts.
func ParseExport(r io.Reader, existing []internal.SleepSession) (*ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("garmin: failed to read CSV: %w", err)
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		blank := true
		for _, c := range rec {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if !blank {
			rows = append(rows, rec)
		}
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("garmin: CSV file is empty or invalid")
	}

	headerCells := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		headerCells[i] = strings.TrimSpace(c)
	}
	h, err := indexHeader(headerCells)
	if err != nil {
		return nil, err
	}

	existingByDate := make(map[string]string, len(existing))
	for _, sess := range existing {
		date := sess.StartTime.Format(dateLayout)
		if _, ok := existingByDate[date]; !ok {
			existingByDate[date] = sess.ID
		}
	}

	result := &ParseResult{}
	for i, record := range rows[1:] {
		rowNum := i + 1

		dateStr := cell(record, h.date)
		scoreStr := cell(record, h.score)
		durationStr := cell(record, h.duration)
		bedtimeStr := cell(record, h.bedtime)
		wakeStr := cell(record, h.wakeTime)

		// Summary rows carry no score; they are not data.
		if scoreStr == "" || scoreStr == "--" {
			continue
		}

		if dateStr == "" || durationStr == "" || bedtimeStr == "" || wakeStr == "" {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("Row %d: Missing required fields", rowNum))
			continue
		}

		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("Row %d: Invalid date format", rowNum))
			continue
		}

		duration, err := parseDuration(durationStr)
		if err != nil {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("Row %d: Invalid duration format", rowNum))
			continue
		}

		bedHour, bedMin, err := parseClock(bedtimeStr)
		if err != nil {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("Row %d: Invalid time format", rowNum))
			continue
		}
		wakeHour, wakeMin, err := parseClock(wakeStr)
		if err != nil {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("Row %d: Invalid time format", rowNum))
			continue
		}

		bedtime := time.Date(date.Year(), date.Month(), date.Day(), bedHour, bedMin, 0, 0, time.UTC)
		wake := time.Date(date.Year(), date.Month(), date.Day(), wakeHour, wakeMin, 0, 0, time.UTC)
		// Sleep spanning midnight: wake rolls to the next day.
		if !wake.After(bedtime) {
			wake = wake.AddDate(0, 0, 1)
		}

		row := Row{
			Date:             date.Format(dateLayout),
			StartTime:        bedtime,
			EndTime:          wake,
			DurationHours:    duration,
			Score:            optionalNumber(scoreStr),
			RestingHeartRate: optionalNumber(cell(record, h.restHR)),
		}
		if q := cell(record, h.quality); q != "" && q != "--" {
			quality := internal.SleepQuality(strings.ToLower(q))
			if internal.ValidQuality(quality) {
				row.Quality = quality
			}
		}
		if id, ok := existingByDate[row.Date]; ok {
			row.HasConflict = true
			row.ExistingSessionID = id
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}
