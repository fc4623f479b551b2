package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/overtime"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type overtimeTotalsRepository struct {
	db *database.DB
}

func NewOvertimeTotalsRepository(db *database.DB) overtime.TotalsRepository {
	return &overtimeTotalsRepository{db: db}
}

// Totals implements overtime.TotalsRepository. Schedule-derived hours use the active window
// of each shift, falling back to the built-in defaults like the application does, rounded to
// the 16 places decimal division keeps.
func (r *overtimeTotalsRepository) Totals(ctx context.Context, start, end time.Time) (overtime.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH windows AS (
			SELECT d.shift,
				COALESCE(c.start_time, d.start_time) AS start_time,
				COALESCE(c.end_time, d.end_time) AS end_time
			FROM (VALUES
				('morning', '08:30', '12:00'),
				('afternoon', '15:00', '18:00'),
				('evening', '19:00', '20:30')
			) AS d(shift, start_time, end_time)
			LEFT JOIN shift_time_configs c ON c.shift = d.shift AND c.is_active = TRUE
		),
		shift_hours AS (
			SELECT shift,
				ROUND(EXTRACT(EPOCH FROM (end_time::time - start_time::time))::numeric / 3600, 16) AS hours
			FROM windows
		),
		combined AS (
			SELECT employee_id, hours
			FROM overtime_records
			WHERE work_date BETWEEN $1 AND $2
			UNION ALL
			SELECT sa.employee_id, sh.hours
			FROM schedule_assignments sa
			JOIN shift_hours sh ON sh.shift = sa.shift
			WHERE sa.work_date BETWEEN $1 AND $2 AND sa.leave_type = 'overtime'
		)
		SELECT employee_id, SUM(hours)
		FROM combined
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query overtime totals: %w", err)
	}
	defer rows.Close()

	totals := make(overtime.Totals)
	for rows.Next() {
		var (
			employeeID string
			hours      decimal.Decimal
		)
		if err := rows.Scan(&employeeID, &hours); err != nil {
			return nil, err
		}
		totals[employeeID] = hours
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overtime totals: %w", err)
	}
	return totals, nil
}
