package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftTimeConfigRepository struct {
	db *database.DB
}

func NewShiftTimeConfigRepository(db *database.DB) shift.ShiftTimeConfigRepository {
	return &shiftTimeConfigRepository{db: db}
}

const shiftTimeConfigColumns = `id, shift, start_time, end_time, is_active, created_at, updated_at`

// List implements shift.ShiftTimeConfigRepository.
func (r *shiftTimeConfigRepository) List(ctx context.Context) ([]shift.ShiftTimeConfig, error) {
	return r.query(ctx, `SELECT `+shiftTimeConfigColumns+` FROM shift_time_configs ORDER BY
		CASE shift WHEN 'morning' THEN 0 WHEN 'afternoon' THEN 1 ELSE 2 END`)
}

// ListActive implements shift.ShiftTimeConfigRepository.
func (r *shiftTimeConfigRepository) ListActive(ctx context.Context) ([]shift.ShiftTimeConfig, error) {
	return r.query(ctx, `SELECT `+shiftTimeConfigColumns+` FROM shift_time_configs WHERE is_active = TRUE`)
}

func (r *shiftTimeConfigRepository) query(ctx context.Context, query string, args ...interface{}) ([]shift.ShiftTimeConfig, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift time configs: %w", err)
	}
	defer rows.Close()

	var configs []shift.ShiftTimeConfig
	for rows.Next() {
		c, err := scanShiftTimeConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift time configs: %w", err)
	}
	return configs, nil
}

// Upsert implements shift.ShiftTimeConfigRepository. A shift has at most one config row;
// writing it again replaces the window and reactivates it.
func (r *shiftTimeConfigRepository) Upsert(ctx context.Context, config shift.ShiftTimeConfig) (shift.ShiftTimeConfig, error) {
	q := GetQuerier(ctx, r.db)

	if config.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return shift.ShiftTimeConfig{}, fmt.Errorf("failed to generate id: %w", err)
		}
		config.ID = id.String()
	}

	query := `
		INSERT INTO shift_time_configs (id, shift, start_time, end_time, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (shift) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time   = EXCLUDED.end_time,
			is_active  = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING ` + shiftTimeConfigColumns

	saved, err := scanShiftTimeConfig(q.QueryRow(ctx, query,
		config.ID, string(config.Shift), config.StartTime, config.EndTime, config.IsActive,
	))
	if err != nil {
		return shift.ShiftTimeConfig{}, err
	}
	return saved, nil
}

// Deactivate implements shift.ShiftTimeConfigRepository. Deactivating an inactive config is a
// no-op; only a shift with no stored config returns pgx.ErrNoRows.
func (r *shiftTimeConfigRepository) Deactivate(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE shift_time_configs
		SET is_active = FALSE,
			updated_at = CASE WHEN is_active THEN NOW() ELSE updated_at END
		WHERE shift = $1
	`, string(s))
	if err != nil {
		return fmt.Errorf("failed to deactivate shift config %s: %w", s, err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanShiftTimeConfig(row pgx.Row) (shift.ShiftTimeConfig, error) {
	var (
		c         shift.ShiftTimeConfig
		shiftName string
	)
	err := row.Scan(&c.ID, &shiftName, &c.StartTime, &c.EndTime, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return shift.ShiftTimeConfig{}, err
	}
	c.Shift = shift.Shift(shiftName)
	return c, nil
}
