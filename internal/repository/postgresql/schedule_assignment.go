package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type scheduleAssignmentRepository struct {
	db *database.DB
}

func NewScheduleAssignmentRepository(db *database.DB) schedule.AssignmentRepository {
	return &scheduleAssignmentRepository{db: db}
}

const assignmentSelect = `
	SELECT sa.id, sa.employee_id, e.full_name, sa.work_date, sa.shift, sa.leave_type, sa.created_at, sa.updated_at
	FROM %s sa
	JOIN employees e ON e.id = sa.employee_id
`

const assignmentOrder = `
	ORDER BY sa.work_date,
		CASE sa.shift WHEN 'morning' THEN 0 WHEN 'afternoon' THEN 1 ELSE 2 END,
		sa.created_at
`

// Create implements schedule.AssignmentRepository.
func (r *scheduleAssignmentRepository) Create(ctx context.Context, a schedule.Assignment) (schedule.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	employeeID, err := schedule.NormalizeEmployeeID(a.Employee)
	if err != nil {
		return schedule.Assignment{}, err
	}
	if a.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return schedule.Assignment{}, fmt.Errorf("failed to generate id: %w", err)
		}
		a.ID = id.String()
	}

	query := `
		WITH sa AS (
			INSERT INTO schedule_assignments (id, employee_id, work_date, shift, leave_type, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING *
		)` + fmt.Sprintf(assignmentSelect, "sa")

	return scanAssignment(q.QueryRow(ctx, query,
		a.ID, employeeID, a.Date, string(a.Shift), leaveTypeParam(a.LeaveType),
	))
}

// GetByID implements schedule.AssignmentRepository.
func (r *scheduleAssignmentRepository) GetByID(ctx context.Context, id string) (schedule.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(assignmentSelect, "schedule_assignments") + ` WHERE sa.id = $1`
	return scanAssignment(q.QueryRow(ctx, query, id))
}

// List implements schedule.AssignmentRepository.
func (r *scheduleAssignmentRepository) List(ctx context.Context, filter schedule.AssignmentFilter) ([]schedule.Assignment, error) {
	whereClauses := []string{"sa.work_date BETWEEN $1 AND $2"}
	args := []interface{}{filter.Start, filter.End}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		whereClauses = append(whereClauses, fmt.Sprintf("sa.employee_id = $%d", len(args)))
	}

	query := fmt.Sprintf(assignmentSelect, "schedule_assignments") +
		" WHERE " + strings.Join(whereClauses, " AND ") + assignmentOrder
	return r.list(ctx, query, args...)
}

// ListOvertime implements schedule.AssignmentRepository.
func (r *scheduleAssignmentRepository) ListOvertime(ctx context.Context, start, end time.Time) ([]schedule.Assignment, error) {
	query := fmt.Sprintf(assignmentSelect, "schedule_assignments") +
		` WHERE sa.work_date BETWEEN $1 AND $2 AND sa.leave_type = 'overtime'` + assignmentOrder
	return r.list(ctx, query, start, end)
}

func (r *scheduleAssignmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]schedule.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule assignments: %w", err)
	}
	defer rows.Close()

	var assignments []schedule.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule assignments: %w", err)
	}
	return assignments, nil
}

// UpdateLeaveType implements schedule.AssignmentRepository.
func (r *scheduleAssignmentRepository) UpdateLeaveType(ctx context.Context, id string, leaveType *schedule.LeaveType) (schedule.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH sa AS (
			UPDATE schedule_assignments SET leave_type = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)` + fmt.Sprintf(assignmentSelect, "sa")

	return scanAssignment(q.QueryRow(ctx, query, id, leaveTypeParam(leaveType)))
}

// Delete implements schedule.AssignmentRepository.
func (r *scheduleAssignmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM schedule_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment with id %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAssignment(row pgx.Row) (schedule.Assignment, error) {
	var (
		a          schedule.Assignment
		employeeID string
		shiftName  string
		leaveType  *string
	)
	err := row.Scan(&a.ID, &employeeID, &a.EmployeeName, &a.Date, &shiftName, &leaveType, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return schedule.Assignment{}, err
	}
	a.Employee = schedule.RefFromID(employeeID)
	a.Shift = shift.Shift(shiftName)
	if leaveType != nil {
		lt := schedule.LeaveType(*leaveType)
		a.LeaveType = &lt
	}
	return a, nil
}

func leaveTypeParam(lt *schedule.LeaveType) *string {
	if lt == nil {
		return nil
	}
	s := string(*lt)
	return &s
}
