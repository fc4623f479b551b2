package overtime

import "context"

type OvertimeService interface {
	// Estimate proposes an hours value for a new entry. An empty at means now.
	Estimate(ctx context.Context, at string) (Estimate, error)

	Create(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)
	Update(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)
	Approve(ctx context.Context, id string) (RecordResponse, error)
	Reject(ctx context.Context, id string) (RecordResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter RecordFilter) ([]RecordResponse, error)

	Summary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
	Merge(ctx context.Context, req MergeRequest) (SummaryResponse, error)
}
