package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/checkinhq/checkin-backend-go/internal/domain/employee"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	query := `
		SELECT employee_id, employee_name, numeric_code, employee_code_in_device
		FROM employees
		ORDER BY employee_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.NumericCode, &e.CodeInDevice); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, nil
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id int) (employee.Employee, error) {
	query := `
		SELECT employee_id, employee_name, numeric_code, employee_code_in_device
		FROM employees
		WHERE employee_id = $1
	`

	var e employee.Employee
	err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.NumericCode, &e.CodeInDevice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return e, nil
}
