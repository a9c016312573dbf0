package relay

import (
	"github.com/checkinhq/checkin-backend-go/internal/pkg/validator"
)

// RunRequest starts one relay run. The HR credential is exchanged and held
// only for the duration of the run; the coordinates are the caller's current
// position and are stamped on every event the run posts.
type RunRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      string  `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *RunRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RunResult summarizes one relay run. Posted counts individual IN/OUT
// events; Skipped counts punches with no matching profile; Failed counts
// events the HR system rejected. A run with failures still completes.
type RunResult struct {
	Date    string `json:"date"`
	Posted  int    `json:"posted"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}
