package response

import (
	"errors"
	"net/http"

	"github.com/checkinhq/checkin-backend-go/internal/domain/attendance"
	"github.com/checkinhq/checkin-backend-go/internal/domain/employee"
	"github.com/checkinhq/checkin-backend-go/internal/domain/relay"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/erp"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidRange):
		BadRequest(w, "Invalid date range", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Relay / HR bridge errors
	case errors.Is(err, erp.ErrInvalidCredentials):
		Unauthorized(w, "Wrong username or password")
	case errors.Is(err, relay.ErrUpstreamUnavailable):
		BadGateway(w, "Upstream system unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
