package overtime

import (
	"context"
	"time"
)

type RecordRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter RecordFilter) ([]Record, error)
	Update(ctx context.Context, record Record) (Record, error)
	UpdateStatus(ctx context.Context, id string, status Status, reviewedBy string, reviewedAt time.Time) (Record, error)
	Delete(ctx context.Context, id string) error
}

// TotalsRepository computes per-employee overtime hours over [start, end] from both
// independent records and overtime-tagged assignments.
type TotalsRepository interface {
	Totals(ctx context.Context, start, end time.Time) (Totals, error)
}
