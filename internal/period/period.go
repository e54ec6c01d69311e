// Package period holds the pure calendar math used by reporting: named
// period windows, timezone-correct day keys and ISO week/month bucket
// keys. Everything here is deterministic given a reference time, so the
// same-day and bucketing rules can be tested without a database.
package period

import (
	"fmt"
	"time"

	"fleettrack-backend/internal/domain"
)

// Kind is the closed enumeration of named report periods. Each kind maps
// to a window of calendar days ending today in the reporting timezone.
type Kind string

const (
	KindToday    Kind = "today"
	KindWeek     Kind = "week"
	KindMonth    Kind = "month"
	KindQuarter  Kind = "quarter"
	KindSemester Kind = "semester"
	KindYear     Kind = "year"
	KindCustom   Kind = "custom"
)

// daysBack returns how many days before today the window starts.
// today is a 0-day window: start == end == today.
var daysBack = map[Kind]int{
	KindToday:    0,
	KindWeek:     7,
	KindMonth:    30,
	KindQuarter:  90,
	KindSemester: 180,
	KindYear:     365,
}

// ParseKind validates a period name from the API.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindToday, KindWeek, KindMonth, KindQuarter, KindSemester, KindYear, KindCustom:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", domain.ErrInvalidInput, s)
}

// Range is an inclusive span of calendar dates in a fixed timezone.
// Start and End are midnight in that timezone.
type Range struct {
	Start time.Time
	End   time.Time
}

const dateLayout = "2006-01-02"

// Resolve maps a period kind to a concrete date range relative to now.
// Custom ranges take explicit yyyy-mm-dd bounds; malformed or inverted
// bounds fail with ErrInvalidInput.
func Resolve(kind Kind, now time.Time, loc *time.Location, customStart, customEnd string) (Range, error) {
	if kind == KindCustom {
		start, err := time.ParseInLocation(dateLayout, customStart, loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: bad start date %q", domain.ErrInvalidInput, customStart)
		}
		end, err := time.ParseInLocation(dateLayout, customEnd, loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: bad end date %q", domain.ErrInvalidInput, customEnd)
		}
		if end.Before(start) {
			return Range{}, fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
		}
		return Range{Start: start, End: end}, nil
	}

	back, ok := daysBack[kind]
	if !ok {
		return Range{}, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidInput, kind)
	}
	end := Truncate(now, loc)
	return Range{Start: end.AddDate(0, 0, -back), End: end}, nil
}

// Truncate drops the time-of-day part of t in the given timezone.
func Truncate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// Days is the count of calendar days covered by the range, inclusive on
// both ends. A 0-day window ("today") yields 1, never 0; callers use it
// as an average divisor. Counting calendar dates rather than elapsed
// hours keeps the result stable across DST transitions, where a day can
// be 23 or 25 hours long.
func (r Range) Days() int {
	startDate := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	endDate := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDate.Sub(startDate).Hours()/24) + 1
}

// Contains reports whether t's calendar date in the range's timezone
// falls inside the range.
func (r Range) Contains(t time.Time) bool {
	day := Truncate(t, r.Start.Location())
	return !day.Before(r.Start) && !day.After(r.End)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
// This is the admin edit-window rule: a checkout closed "today" in the
// reporting timezone is correctable even when the UTC dates differ.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return Truncate(a, loc).Equal(Truncate(b, loc))
}

// DayKey formats t's local calendar date as yyyy-mm-dd.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// WeekKey formats t's ISO week as e.g. "2026-W05". The ISO year may
// differ from the calendar year around January 1st.
func WeekKey(t time.Time, loc *time.Location) string {
	year, week := t.In(loc).ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthKey formats t's local year-month as yyyy-mm.
func MonthKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01")
}

// BucketKey maps a timestamp to its grouping key for the granularity.
func BucketKey(g domain.ReportGranularity, t time.Time, loc *time.Location) (string, error) {
	switch g {
	case domain.GranularityDay:
		return DayKey(t, loc), nil
	case domain.GranularityWeek:
		return WeekKey(t, loc), nil
	case domain.GranularityMonth:
		return MonthKey(t, loc), nil
	}
	return "", fmt.Errorf("%w: unknown granularity %q", domain.ErrInvalidInput, g)
}

// ParseGranularity validates a granularity name from the API. Empty
// input defaults to day buckets.
func ParseGranularity(s string) (domain.ReportGranularity, error) {
	switch g := domain.ReportGranularity(s); g {
	case domain.GranularityDay, domain.GranularityWeek, domain.GranularityMonth:
		return g, nil
	case "":
		return domain.GranularityDay, nil
	}
	return "", fmt.Errorf("%w: unknown granularity %q", domain.ErrInvalidInput, s)
}
