package attendance

import (
	"github.com/checkinhq/checkin-backend-go/internal/pkg/validator"
)

// Response field names follow the device-log reporting contract the previous
// tooling around this store already speaks, hence the PascalCase keys.

// RangeRequest selects one employee's attendance over an inclusive date
// range. EndDate values past today are clamped, not rejected.
type RangeRequest struct {
	EmployeeID int    `json:"EmployeeId"`
	StartDate  string `json:"StartDate"` // YYYY-MM-DD
	EndDate    string `json:"EndDate"`   // YYYY-MM-DD
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee selection is required",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start date is required",
		})
	} else if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end date is required",
		})
	} else if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DailyAttendanceRow is one rendered day of the range report.
//
// InTime is "HH:MM", "Holiday" or "Leave / Absent". OutTime is "HH:MM",
// "Holiday", or null (single-punch or absent weekday). OvertimeHours is
// "<N> hour <M> minutes", or "0 minutes" when no overtime accrued.
type DailyAttendanceRow struct {
	EmployeeID    int     `json:"EmployeeId"`
	EmployeeName  string  `json:"EmployeeName"`
	PunchDate     string  `json:"PunchDate"`
	InTime        string  `json:"InTime"`
	OutTime       *string `json:"OutTime"`
	OvertimeHours string  `json:"OvertimeHours"`
}

// TodayPunchRow is one rendered row of the single-day register. Times are
// full local timestamps ("YYYY-MM-DD HH:MM:SS") so the relay can repost them
// verbatim.
type TodayPunchRow struct {
	EmployeeID          int     `json:"EmployeeId"`
	EmployeeName        string  `json:"EmployeeName"`
	EmployeeNumericCode string  `json:"EmployeeNumericCode"`
	AttendanceDate      string  `json:"AttendanceDate"`
	InTime              *string `json:"InTime"`
	OutTime             *string `json:"OutTime"`
}

// EmployeeReport is one employee's slice of the all-employee report run.
type EmployeeReport struct {
	EmployeeID   int                  `json:"EmployeeId"`
	EmployeeName string               `json:"EmployeeName"`
	Rows         []DailyAttendanceRow `json:"Rows"`
}

// AllReportsResponse is the result of a sequential all-employee report run.
type AllReportsResponse struct {
	StartDate string           `json:"StartDate"`
	EndDate   string           `json:"EndDate"`
	Reports   []EmployeeReport `json:"Reports"`
	Skipped   int              `json:"Skipped"`
}

// ReportProgress is the caller-visible counter of an all-employee run.
type ReportProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}
