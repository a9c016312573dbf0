package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/checkinhq/checkin-backend-go/internal/domain/attendance"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// The attendance hardware appends punches into per-period tables named
// device_logs_<period> (one per month of operation, created by the vendor
// software). The set of tables is discovered at query time so a report range
// spanning several periods needs no caller-side knowledge of the sharding.
type deviceLogRepository struct {
	db *database.DB
}

func NewDeviceLogRepository(db *database.DB) attendance.RawLogSource {
	return &deviceLogRepository{db: db}
}

// QueryRange implements attendance.RawLogSource.
func (r *deviceLogRepository) QueryRange(ctx context.Context, deviceUserID string, start, endExclusive time.Time) ([]attendance.RawPunch, error) {
	tables, err := r.partitionTables(ctx)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, nil
	}

	// Identifiers cannot be bound as parameters; the names come from
	// information_schema and are sanitized before interpolation.
	var union strings.Builder
	for i, table := range tables {
		if i > 0 {
			union.WriteString(" UNION ALL ")
		}
		fmt.Fprintf(&union,
			"SELECT user_id, log_date FROM %s WHERE user_id = $1 AND log_date >= $2 AND log_date < $3",
			pgx.Identifier{table}.Sanitize(),
		)
	}

	query := fmt.Sprintf(
		"SELECT user_id, log_date FROM (%s) AS all_device_logs ORDER BY log_date",
		union.String(),
	)

	rows, err := r.db.Query(ctx, query, deviceUserID, start, endExclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to query device logs: %w", err)
	}
	defer rows.Close()

	var punches []attendance.RawPunch
	for rows.Next() {
		var p attendance.RawPunch
		if err := rows.Scan(&p.DeviceUserID, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan device log row: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read device log rows: %w", err)
	}

	return punches, nil
}

// QueryDay implements attendance.RawLogSource.
func (r *deviceLogRepository) QueryDay(ctx context.Context, day time.Time) ([]attendance.DayPunchSummary, error) {
	tables, err := r.partitionTables(ctx)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, nil
	}

	var union strings.Builder
	for i, table := range tables {
		if i > 0 {
			union.WriteString(" UNION ALL ")
		}
		fmt.Fprintf(&union,
			"SELECT user_id, log_date FROM %s WHERE log_date >= $1 AND log_date < $2",
			pgx.Identifier{table}.Sanitize(),
		)
	}

	query := fmt.Sprintf(`
		SELECT user_id, MIN(log_date) AS first_punch, MAX(log_date) AS last_punch
		FROM (%s) AS day_logs
		GROUP BY user_id
	`, union.String())

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	rows, err := r.db.Query(ctx, query, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to query day logs: %w", err)
	}
	defer rows.Close()

	var summaries []attendance.DayPunchSummary
	for rows.Next() {
		var s attendance.DayPunchSummary
		if err := rows.Scan(&s.DeviceUserID, &s.FirstPunch, &s.LastPunch); err != nil {
			return nil, fmt.Errorf("failed to scan day log row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read day log rows: %w", err)
	}

	return summaries, nil
}

func (r *deviceLogRepository) partitionTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name LIKE 'device\_logs\_%'
		ORDER BY table_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to discover device log partitions: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan partition name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partition names: %w", err)
	}

	return tables, nil
}
