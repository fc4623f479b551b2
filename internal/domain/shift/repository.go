package shift

import "context"

type ShiftTimeConfigRepository interface {
	List(ctx context.Context) ([]ShiftTimeConfig, error)
	ListActive(ctx context.Context) ([]ShiftTimeConfig, error)
	Upsert(ctx context.Context, config ShiftTimeConfig) (ShiftTimeConfig, error)
	Deactivate(ctx context.Context, s Shift) error
}
