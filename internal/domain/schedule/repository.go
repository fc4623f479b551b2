package schedule

import (
	"context"
	"time"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment Assignment) (Assignment, error)
	GetByID(ctx context.Context, id string) (Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]Assignment, error)
	// ListOvertime returns the assignments tagged overtime whose date lies in [start, end].
	ListOvertime(ctx context.Context, start, end time.Time) ([]Assignment, error)
	UpdateLeaveType(ctx context.Context, id string, leaveType *LeaveType) (Assignment, error)
	Delete(ctx context.Context, id string) error
}
