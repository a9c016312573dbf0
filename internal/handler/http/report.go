package http

import (
	"net/http"

	"github.com/checkinhq/checkin-backend-go/internal/domain/attendance"
	"github.com/checkinhq/checkin-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Range(w http.ResponseWriter, r *http.Request)
	Progress(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	attendanceService attendance.Service
}

func NewReportHandler(attendanceService attendance.Service) ReportHandler {
	return &reportHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Range implements ReportHandler. Aggregates the requested range for every
// known employee, one at a time.
func (h *reportHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.attendanceService.GenerateAllReports(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Progress implements ReportHandler.
func (h *reportHandlerImpl) Progress(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.Progress())
}
