package schedule

import "context"

type ScheduleService interface {
	Assign(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	Unassign(ctx context.Context, id string) error
	SetLeaveType(ctx context.Context, req UpdateLeaveTypeRequest) (AssignmentResponse, error)
	List(ctx context.Context, filter AssignmentFilter) ([]AssignmentResponse, error)

	// Daily groups the assignments of the period by date and shift and totals each
	// employee's hours per category.
	Daily(ctx context.Context, filter AssignmentFilter) (DailyScheduleResponse, error)
}
