package attendance

import (
	"time"
)

// RawPunch is a single device-recorded presence event from one of the
// period-sharded device log tables. Punches are append-only and immutable;
// an employee may punch any number of times per day.
type RawPunch struct {
	DeviceUserID string
	Timestamp    time.Time
}

// DayPunchSummary is the collapsed first/last punch of one device user on a
// single day, as produced by the raw log source for snapshot queries.
type DayPunchSummary struct {
	DeviceUserID string
	FirstPunch   time.Time
	LastPunch    time.Time
}

// DailyAttendance is one employee-day derived from raw punches. It is
// materialized per query, never persisted, and carries no identity beyond
// (EmployeeID, Date). Nil FirstPunch means no punch was recorded that day.
type DailyAttendance struct {
	EmployeeID   int
	EmployeeName string
	Date         time.Time
	FirstPunch   *time.Time
	LastPunch    *time.Time
	Overtime     time.Duration
}

// TodayPunch is one employee's row in the single-day register. Absent
// employees are present with nil times. OutTime is set only when the day's
// last punch differs from the first.
type TodayPunch struct {
	EmployeeID   int
	EmployeeName string
	NumericCode  string
	Date         time.Time
	InTime       *time.Time
	OutTime      *time.Time
}
