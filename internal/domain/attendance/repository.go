package attendance

import (
	"context"
	"time"
)

// RawLogSource reads the period-sharded device punch log as one logical
// time-series store. Partition discovery and fan-out are the adapter's
// concern; callers reason about a single stream of punches.
type RawLogSource interface {
	// QueryRange returns all punches for one device user in
	// [start, endExclusive), ordered by timestamp ascending. Partitions are
	// unioned without double counting.
	QueryRange(ctx context.Context, deviceUserID string, start, endExclusive time.Time) ([]RawPunch, error)

	// QueryDay returns the first/last punch per device user for one calendar
	// day, across all partitions.
	QueryDay(ctx context.Context, day time.Time) ([]DayPunchSummary, error)
}
