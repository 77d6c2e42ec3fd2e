package domain

import (
	"fmt"
	"time"
)

// ReportWindow is a half-open time range [Start, End) a report covers
type ReportWindow struct {
	Start time.Time
	End   time.Time
	Label string // weekly, monthly or custom
}

// Contains reports whether ts falls into the window
func (w ReportWindow) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}

// WeeklyWindow returns the previous full calendar week (monday to monday, utc) relative to now
func WeeklyWindow(now time.Time) ReportWindow {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(today.Weekday()) + 6) % 7 // days since monday
	end := today.AddDate(0, 0, -offset)
	return ReportWindow{Start: end.AddDate(0, 0, -7), End: end, Label: "weekly"}
}

// MonthlyWindow returns the previous full calendar month relative to now
func MonthlyWindow(now time.Time) ReportWindow {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return ReportWindow{Start: end.AddDate(0, -1, 0), End: end, Label: "monthly"}
}

// LastDaysWindow returns the window covering the last n days up to now
func LastDaysWindow(now time.Time, days int) ReportWindow {
	now = now.UTC()
	return ReportWindow{Start: now.AddDate(0, 0, -days), End: now, Label: fmt.Sprintf("last_%dd", days)}
}

// ParseWindow builds a window from a timespan name ("weekly", "monthly") or a day count
func ParseWindow(now time.Time, timespan string, days int) (ReportWindow, error) {
	switch timespan {
	case "weekly":
		return WeeklyWindow(now), nil
	case "monthly":
		return MonthlyWindow(now), nil
	case "":
		if days <= 0 {
			return ReportWindow{}, fmt.Errorf("days must be positive, got %d", days)
		}
		return LastDaysWindow(now, days), nil
	default:
		return ReportWindow{}, fmt.Errorf("unknown timespan %q", timespan)
	}
}
