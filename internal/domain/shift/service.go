package shift

import "context"

type ShiftService interface {
	// GetTimes returns the effective window of every shift, active configs overriding defaults.
	GetTimes(ctx context.Context) (TimesMap, error)
	ListEffectiveTimes(ctx context.Context) ([]EffectiveShiftTimes, error)

	ListConfigs(ctx context.Context) ([]ShiftTimeConfigResponse, error)
	UpsertConfig(ctx context.Context, req UpsertShiftTimeConfigRequest) (ShiftTimeConfigResponse, error)
	DeactivateConfig(ctx context.Context, s Shift) error

	ComputeHours(ctx context.Context, start, end string) (ShiftHoursResponse, error)
}
