package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/checkinhq/checkin-backend-go/internal/domain/attendance"
	"github.com/checkinhq/checkin-backend-go/internal/domain/employee"
)

const (
	// Overtime accrues past this local hour on regular workdays.
	overtimeThresholdHour = 18

	// Fixed weekly holiday. Work on this day is credited at double time.
	weeklyHoliday = time.Friday

	holidayLabel = "Holiday"
	absentLabel  = "Leave / Absent"

	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	dateTimeLayout = "2006-01-02 15:04:05"
)

type AttendanceServiceImpl struct {
	logs      attendance.RawLogSource
	employees employee.Repository
	excluded  map[int]struct{}

	// Today-snapshot cache filled by the interval refresher. Refreshes
	// overwrite unconditionally: whichever fetch resolves last wins.
	mu           sync.RWMutex
	snapshot     []attendance.TodayPunch
	snapshotDate string

	progressCurrent atomic.Int64
	progressTotal   atomic.Int64
}

func NewAttendanceService(logs attendance.RawLogSource, employees employee.Repository, excludedEmployeeIDs []int) *AttendanceServiceImpl {
	excluded := make(map[int]struct{}, len(excludedEmployeeIDs))
	for _, id := range excludedEmployeeIDs {
		excluded[id] = struct{}{}
	}
	return &AttendanceServiceImpl{
		logs:      logs,
		employees: employees,
		excluded:  excluded,
	}
}

// GetRange implements attendance.Service.
func (s *AttendanceServiceImpl) GetRange(ctx context.Context, req attendance.RangeRequest) ([]attendance.DailyAttendanceRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, fmt.Errorf("failed to resolve employee: %w", err)
		}
		// Unknown employee or lost device mapping degrades to an all-absent
		// report rather than an error.
		emp = employee.Employee{ID: req.EmployeeID}
	}

	var punches []attendance.RawPunch
	if emp.CodeInDevice != "" {
		punches, err = s.logs.QueryRange(ctx, emp.CodeInDevice, start, end.AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("failed to query raw punches: %w", err)
		}
	}

	byDay := bucketByDay(punches)

	days := int(end.Sub(start).Hours()/24) + 1
	rows := make([]attendance.DailyAttendanceRow, 0, days)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		first, last := firstLastOfDay(byDay[day.Format(dateLayout)])
		rows = append(rows, buildDailyRow(emp, day, first, last))
	}

	return rows, nil
}

// GetTodaySnapshot implements attendance.Service.
func (s *AttendanceServiceImpl) GetTodaySnapshot(ctx context.Context, date string) ([]attendance.TodayPunchRow, error) {
	day := today()
	if date != "" {
		parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
		if err != nil {
			return nil, attendance.ErrInvalidRange
		}
		day = parsed
	} else if cached, ok := s.cachedSnapshot(day); ok {
		return toTodayRows(cached), nil
	}

	snapshot, err := s.DaySnapshot(ctx, day)
	if err != nil {
		return nil, err
	}
	return toTodayRows(snapshot), nil
}

// DaySnapshot implements attendance.Service.
func (s *AttendanceServiceImpl) DaySnapshot(ctx context.Context, day time.Time) ([]attendance.TodayPunch, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	summaries, err := s.logs.QueryDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query day punches: %w", err)
	}

	byDevice := make(map[string]attendance.DayPunchSummary, len(summaries))
	for _, summary := range summaries {
		byDevice[summary.DeviceUserID] = summary
	}

	snapshot := make([]attendance.TodayPunch, 0, len(employees))
	for _, emp := range employees {
		if _, skip := s.excluded[emp.ID]; skip {
			continue
		}

		punch := attendance.TodayPunch{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			NumericCode:  emp.NumericCode,
			Date:         day,
		}
		if summary, ok := byDevice[emp.CodeInDevice]; ok {
			in := summary.FirstPunch
			punch.InTime = &in
			if !summary.LastPunch.Equal(summary.FirstPunch) {
				out := summary.LastPunch
				punch.OutTime = &out
			}
		}
		snapshot = append(snapshot, punch)
	}

	return snapshot, nil
}

// RefreshSnapshot implements attendance.Service.
func (s *AttendanceServiceImpl) RefreshSnapshot(ctx context.Context) error {
	day := today()
	snapshot, err := s.DaySnapshot(ctx, day)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.snapshotDate = day.Format(dateLayout)
	s.mu.Unlock()

	return nil
}

// GenerateAllReports implements attendance.Service.
func (s *AttendanceServiceImpl) GenerateAllReports(ctx context.Context, startDate, endDate string) (attendance.AllReportsResponse, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return attendance.AllReportsResponse{}, err
	}

	employees, err := s.employees.List(ctx)
	if err != nil {
		return attendance.AllReportsResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	s.progressTotal.Store(int64(len(employees)))
	s.progressCurrent.Store(0)

	resp := attendance.AllReportsResponse{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Reports:   make([]attendance.EmployeeReport, 0, len(employees)),
	}

	// One employee at a time, one outstanding store query at a time: the run
	// is bounded and the progress counter moves monotonically.
	for _, emp := range employees {
		rows, err := s.GetRange(ctx, attendance.RangeRequest{
			EmployeeID: emp.ID,
			StartDate:  startDate,
			EndDate:    endDate,
		})
		if err != nil {
			slog.Error("Report generation failed for employee, skipping",
				"employee_id", emp.ID, "employee_name", emp.Name, "error", err)
			resp.Skipped++
			s.progressCurrent.Add(1)
			continue
		}

		resp.Reports = append(resp.Reports, attendance.EmployeeReport{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Rows:         rows,
		})
		s.progressCurrent.Add(1)
	}

	return resp, nil
}

// Progress implements attendance.Service.
func (s *AttendanceServiceImpl) Progress() attendance.ReportProgress {
	return attendance.ReportProgress{
		Current: int(s.progressCurrent.Load()),
		Total:   int(s.progressTotal.Load()),
	}
}

func (s *AttendanceServiceImpl) cachedSnapshot(day time.Time) ([]attendance.TodayPunch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshotDate != day.Format(dateLayout) {
		return nil, false
	}
	return s.snapshot, true
}

// parseRange validates and clamps a report range: end dates past today are
// silently pulled back to today, and a start past the clamped end is an
// invalid range.
func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, attendance.ErrInvalidRange
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, attendance.ErrInvalidRange
	}

	if t := today(); end.After(t) {
		end = t
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, attendance.ErrInvalidRange
	}

	return start, end, nil
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

func bucketByDay(punches []attendance.RawPunch) map[string][]time.Time {
	byDay := make(map[string][]time.Time)
	for _, p := range punches {
		key := p.Timestamp.In(time.Local).Format(dateLayout)
		byDay[key] = append(byDay[key], p.Timestamp.In(time.Local))
	}
	return byDay
}

// firstLastOfDay collapses a day's punches to its earliest and latest
// timestamps. The single-day register once ranked punches and took ranks 1
// and 2 instead; min/max is used everywhere now because it is invariant to
// how many times an employee punches.
func firstLastOfDay(punches []time.Time) (first, last *time.Time) {
	for i := range punches {
		p := punches[i]
		if first == nil || p.Before(*first) {
			first = &p
		}
		if last == nil || p.After(*last) {
			last = &p
		}
	}
	return first, last
}

func buildDailyRow(emp employee.Employee, day time.Time, first, last *time.Time) attendance.DailyAttendanceRow {
	row := attendance.DailyAttendanceRow{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		PunchDate:    day.Format(dateLayout),
	}

	isHolidayWeekday := day.Weekday() == weeklyHoliday

	if first == nil {
		if isHolidayWeekday {
			row.InTime = holidayLabel
			holiday := holidayLabel
			row.OutTime = &holiday
		} else {
			row.InTime = absentLabel
		}
		row.OvertimeHours = formatOvertime(0)
		return row
	}

	row.InTime = first.Format(clockLayout)

	// A lone punch is an IN with no OUT, never an absence and never overtime.
	if last.Equal(*first) {
		row.OvertimeHours = formatOvertime(0)
		return row
	}

	out := last.Format(clockLayout)
	row.OutTime = &out
	row.OvertimeHours = formatOvertime(overtimeFor(day, *first, *last))

	return row
}

// overtimeFor applies the overtime policy: holiday-weekday work is credited
// at double the full worked duration; otherwise only time past the 18:00
// threshold counts.
func overtimeFor(day time.Time, first, last time.Time) time.Duration {
	if day.Weekday() == weeklyHoliday {
		return 2 * last.Sub(first)
	}

	threshold := time.Date(day.Year(), day.Month(), day.Day(), overtimeThresholdHour, 0, 0, 0, time.Local)
	if last.After(threshold) {
		return last.Sub(threshold)
	}
	return 0
}

func formatOvertime(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes <= 0 {
		return "0 minutes"
	}
	return fmt.Sprintf("%d hour %d minutes", minutes/60, minutes%60)
}

func toTodayRows(snapshot []attendance.TodayPunch) []attendance.TodayPunchRow {
	rows := make([]attendance.TodayPunchRow, 0, len(snapshot))
	for _, p := range snapshot {
		row := attendance.TodayPunchRow{
			EmployeeID:          p.EmployeeID,
			EmployeeName:        p.EmployeeName,
			EmployeeNumericCode: p.NumericCode,
			AttendanceDate:      p.Date.Format(dateLayout),
		}
		if p.InTime != nil {
			in := p.InTime.Format(dateTimeLayout)
			row.InTime = &in
		}
		if p.OutTime != nil {
			out := p.OutTime.Format(dateTimeLayout)
			row.OutTime = &out
		}
		rows = append(rows, row)
	}
	return rows
}
