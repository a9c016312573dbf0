package http

import (
	"net/http"

	"github.com/checkinhq/checkin-backend-go/internal/domain/employee"
	"github.com/checkinhq/checkin-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeRepo employee.Repository
}

func NewEmployeeHandler(employeeRepo employee.Repository) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeRepo: employeeRepo,
	}
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows := make([]employee.EmployeeRow, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, employee.ToRow(e))
	}

	response.Success(w, rows)
}
