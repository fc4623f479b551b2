package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeDirectory struct {
	db *database.DB
}

// NewEmployeeDirectory serves directory lookups from the local employees table.
func NewEmployeeDirectory(db *database.DB) employee.Directory {
	return &employeeDirectory{db: db}
}

// Lookup implements employee.Directory. Inactive employees still resolve so historical
// rows keep their labels.
func (e *employeeDirectory) Lookup(ctx context.Context, ids []string) (map[string]employee.Employee, error) {
	result := make(map[string]employee.Employee, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id::text, full_name, COALESCE(position, '')
		FROM employees
		WHERE id::text = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Position); err != nil {
			return nil, err
		}
		result[emp.ID] = emp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return result, nil
}

// GetByID implements employee.Directory. Inactive employees are reported as not found.
func (e *employeeDirectory) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id::text, full_name, COALESCE(position, '')
		FROM employees
		WHERE id::text = $1 AND is_active = TRUE
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(&emp.ID, &emp.Name, &emp.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}
