package employee

import "context"

// Directory resolves employee ids to display data. Unknown ids are absent from the
// result rather than an error.
type Directory interface {
	Lookup(ctx context.Context, ids []string) (map[string]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
}
