package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleettrack-backend/internal/domain"
)

var zone = time.FixedZone("-03", -3*60*60)

func TestResolveNamedPeriods(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) // 11:00 local

	tests := []struct {
		kind  Kind
		start string
		days  int
	}{
		{KindToday, "2026-03-10", 1},
		{KindWeek, "2026-03-03", 8},
		{KindMonth, "2026-02-08", 31},
		{KindQuarter, "2025-12-10", 91},
		{KindSemester, "2025-09-11", 181},
		{KindYear, "2025-03-10", 366},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			r, err := Resolve(tt.kind, now, zone, "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start.Format("2006-01-02"))
			assert.Equal(t, "2026-03-10", r.End.Format("2006-01-02"))
			assert.Equal(t, tt.days, r.Days())
		})
	}
}

func TestResolveTodayNeverYieldsZeroDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 1, 0, zone)
	r, err := Resolve(KindToday, now, zone, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Days())
}

func TestResolveCustom(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	r, err := Resolve(KindCustom, now, zone, "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 31, r.Days())

	_, err = Resolve(KindCustom, now, zone, "2026-01-31", "2026-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Resolve(KindCustom, now, zone, "31/01/2026", "2026-02-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDaysAcrossSpringForward(t *testing.T) {
	// Midnights on either side of a spring-forward transition sit at
	// different UTC offsets, so the elapsed time is 47 hours over what
	// is three calendar days. Counting dates must still yield 3.
	est := time.FixedZone("EST", -5*60*60)
	edt := time.FixedZone("EDT", -4*60*60)
	r := Range{
		Start: time.Date(2026, 3, 7, 0, 0, 0, 0, est),
		End:   time.Date(2026, 3, 9, 0, 0, 0, 0, edt),
	}

	require.Equal(t, 47*time.Hour, r.End.Sub(r.Start))
	assert.Equal(t, 3, r.Days())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("week")
	require.NoError(t, err)
	assert.Equal(t, KindWeek, k)

	_, err = ParseKind("fortnight")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContainsUsesLocalCalendarDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	r, err := Resolve(KindToday, now, zone, "", "")
	require.NoError(t, err)

	// 01:00 UTC on March 10 is 22:00 March 9 local, outside "today".
	assert.False(t, r.Contains(time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)))
	// 14:00 UTC is 11:00 local, inside.
	assert.True(t, r.Contains(now))
	// Local midnight boundary is inclusive.
	assert.True(t, r.Contains(time.Date(2026, 3, 10, 0, 0, 0, 0, zone)))
}

func TestSameDayAcrossUTCBoundary(t *testing.T) {
	// Both instants are March 10 in UTC, but the first is still March 9
	// in the reporting timezone.
	a := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	assert.False(t, SameDay(a, b, zone))
	assert.True(t, SameDay(a, b, time.UTC))
	assert.True(t, SameDay(b, b.Add(5*time.Hour), zone))
}

func TestBucketKeys(t *testing.T) {
	ts := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	key, err := BucketKey(domain.GranularityDay, ts, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", key)

	// January 1st 2026 falls in ISO week 1 of 2026.
	key, err = BucketKey(domain.GranularityWeek, ts, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2026-W01", key)

	key, err = BucketKey(domain.GranularityMonth, ts, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2026-01", key)
}

func TestWeekKeyISOYearBoundary(t *testing.T) {
	// December 29 2025 belongs to ISO week 1 of 2026.
	ts := time.Date(2025, 12, 29, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W01", WeekKey(ts, time.UTC))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityDay, g)

	g, err = ParseGranularity("month")
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityMonth, g)

	_, err = ParseGranularity("hour")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
