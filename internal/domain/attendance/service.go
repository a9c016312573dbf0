package attendance

import (
	"context"
	"time"
)

// Service derives attendance reports from the raw punch log.
type Service interface {
	// GetRange produces one row per calendar day in the requested range,
	// ordered by date ascending, applying the holiday/absence/overtime
	// policy. An unknown employee yields all-absent rows, not an error.
	GetRange(ctx context.Context, req RangeRequest) ([]DailyAttendanceRow, error)

	// GetTodaySnapshot produces one row per known employee for the given
	// date (empty date means today, served from the refresher cache when
	// fresh). Absent employees appear with null times.
	GetTodaySnapshot(ctx context.Context, date string) ([]TodayPunchRow, error)

	// DaySnapshot is the typed variant of the single-day register used by
	// the relay run.
	DaySnapshot(ctx context.Context, day time.Time) ([]TodayPunch, error)

	// RefreshSnapshot recomputes the cached today snapshot. Scheduled on a
	// fixed interval; whichever refresh resolves last wins.
	RefreshSnapshot(ctx context.Context) error

	// GenerateAllReports aggregates the range for every known employee,
	// sequentially, reporting progress via Progress. Per-employee failures
	// are logged and counted, not fatal.
	GenerateAllReports(ctx context.Context, startDate, endDate string) (AllReportsResponse, error)

	// Progress reports the state of the most recent all-employee run.
	Progress() ReportProgress
}
