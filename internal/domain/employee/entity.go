package employee

// Employee is one row of the local employee directory. CodeInDevice is the
// identifier the attendance hardware reports in its punch logs; the
// directory is assumed to hold at most one active employee per device code
// within any queried period.
type Employee struct {
	ID           int
	Name         string
	NumericCode  string
	CodeInDevice string
}
