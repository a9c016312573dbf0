package employee

import (
	"context"
)

// Repository reads the employee directory.
type Repository interface {
	// List returns all employees sorted by name.
	List(ctx context.Context) ([]Employee, error)

	// GetByID returns one employee or ErrEmployeeNotFound.
	GetByID(ctx context.Context, id int) (Employee, error)
}
