package http

import (
	"net/http"
	"strconv"

	"github.com/checkinhq/checkin-backend-go/internal/domain/attendance"
	"github.com/checkinhq/checkin-backend-go/internal/handler/http/response"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Range(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Range implements AttendanceHandler.
func (h *attendanceHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	employeeIDParam := query.Get("employee_id")
	if validator.IsEmpty(employeeIDParam) {
		response.BadRequest(w, "Employee selection is required", nil)
		return
	}
	if !validator.IsNumeric(employeeIDParam) {
		response.BadRequest(w, "employee_id must be a number", nil)
		return
	}
	employeeID, err := strconv.Atoi(employeeIDParam)
	if err != nil {
		response.BadRequest(w, "employee_id must be a number", nil)
		return
	}

	req := attendance.RangeRequest{
		EmployeeID: employeeID,
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.attendanceService.GetRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	rows, err := h.attendanceService.GetTodaySnapshot(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}
