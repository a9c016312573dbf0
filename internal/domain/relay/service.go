package relay

import (
	"context"
)

// Service posts one day's reconciled punches to the external HR system.
type Service interface {
	// Run logs in, fetches the employee directory, matches each local punch
	// to a profile and posts IN/OUT events sequentially. Per-event failures
	// are logged and counted without aborting the run; a login, directory or
	// store failure aborts the whole run.
	Run(ctx context.Context, req RunRequest) (RunResult, error)
}
