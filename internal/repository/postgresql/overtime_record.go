package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/overtime"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type overtimeRecordRepository struct {
	db *database.DB
}

func NewOvertimeRecordRepository(db *database.DB) overtime.RecordRepository {
	return &overtimeRecordRepository{db: db}
}

const overtimeRecordSelect = `
	SELECT o.id, o.employee_id, e.full_name, o.work_date, o.hours, o.description, o.status, o.source,
		o.reviewed_by, o.reviewed_at, o.created_at, o.updated_at
	FROM %s o
	JOIN employees e ON e.id = o.employee_id
`

// Create implements overtime.RecordRepository.
func (r *overtimeRecordRepository) Create(ctx context.Context, record overtime.Record) (overtime.Record, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return overtime.Record{}, fmt.Errorf("failed to generate id: %w", err)
		}
		record.ID = id.String()
	}

	query := `
		WITH o AS (
			INSERT INTO overtime_records (id, employee_id, work_date, hours, description, status, source, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING *
		)` + fmt.Sprintf(overtimeRecordSelect, "o")

	return scanOvertimeRecord(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.Hours, record.Description,
		string(record.Status), string(record.Source),
	))
}

// GetByID implements overtime.RecordRepository.
func (r *overtimeRecordRepository) GetByID(ctx context.Context, id string) (overtime.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(overtimeRecordSelect, "overtime_records") + ` WHERE o.id = $1`
	return scanOvertimeRecord(q.QueryRow(ctx, query, id))
}

// List implements overtime.RecordRepository.
func (r *overtimeRecordRepository) List(ctx context.Context, filter overtime.RecordFilter) ([]overtime.Record, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"o.work_date BETWEEN $1 AND $2"}
	args := []interface{}{filter.Start, filter.End}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		whereClauses = append(whereClauses, fmt.Sprintf("o.employee_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		whereClauses = append(whereClauses, fmt.Sprintf("o.status = $%d", len(args)))
	}

	query := fmt.Sprintf(overtimeRecordSelect, "overtime_records") +
		" WHERE " + strings.Join(whereClauses, " AND ") +
		" ORDER BY o.work_date, o.created_at"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overtime records: %w", err)
	}
	defer rows.Close()

	var records []overtime.Record
	for rows.Next() {
		rec, err := scanOvertimeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overtime records: %w", err)
	}
	return records, nil
}

// Update implements overtime.RecordRepository. Only pending records are editable; any other
// status yields pgx.ErrNoRows.
func (r *overtimeRecordRepository) Update(ctx context.Context, record overtime.Record) (overtime.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH o AS (
			UPDATE overtime_records
			SET work_date = $2, hours = $3, description = $4, updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		)` + fmt.Sprintf(overtimeRecordSelect, "o")

	return scanOvertimeRecord(q.QueryRow(ctx, query, record.ID, record.Date, record.Hours, record.Description))
}

// UpdateStatus implements overtime.RecordRepository. The transition only applies to a
// pending record; otherwise pgx.ErrNoRows is returned.
func (r *overtimeRecordRepository) UpdateStatus(ctx context.Context, id string, status overtime.Status, reviewedBy string, reviewedAt time.Time) (overtime.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH o AS (
			UPDATE overtime_records
			SET status = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		)` + fmt.Sprintf(overtimeRecordSelect, "o")

	return scanOvertimeRecord(q.QueryRow(ctx, query, id, string(status), reviewedBy, reviewedAt))
}

// Delete implements overtime.RecordRepository.
func (r *overtimeRecordRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM overtime_records WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete overtime record with id %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanOvertimeRecord(row pgx.Row) (overtime.Record, error) {
	var (
		rec    overtime.Record
		status string
		source string
	)
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Date, &rec.Hours, &rec.Description,
		&status, &source, &rec.ReviewedBy, &rec.ReviewedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return overtime.Record{}, err
	}
	rec.Status = overtime.Status(status)
	rec.Source = overtime.Source(source)
	return rec, nil
}
