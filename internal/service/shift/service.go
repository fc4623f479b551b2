package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/jackc/pgx/v5"
)

type shiftServiceImpl struct {
	configRepo shift.ShiftTimeConfigRepository
}

func NewShiftService(configRepo shift.ShiftTimeConfigRepository) shift.ShiftService {
	return &shiftServiceImpl{configRepo: configRepo}
}

// GetTimes implements shift.ShiftService.
func (s *shiftServiceImpl) GetTimes(ctx context.Context) (shift.TimesMap, error) {
	configs, err := s.configRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shift.ErrShiftTimesUnavailable, err)
	}
	return shift.EffectiveTimes(configs), nil
}

// ListEffectiveTimes implements shift.ShiftService.
func (s *shiftServiceImpl) ListEffectiveTimes(ctx context.Context) ([]shift.EffectiveShiftTimes, error) {
	configs, err := s.configRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shift.ErrShiftTimesUnavailable, err)
	}
	times := shift.EffectiveTimes(configs)

	result := make([]shift.EffectiveShiftTimes, 0, len(shift.Shifts))
	for _, sh := range shift.Shifts {
		t := times.For(sh)
		hours, err := times.Hours(sh)
		if err != nil {
			return nil, err
		}
		result = append(result, shift.EffectiveShiftTimes{
			Shift:     string(sh),
			StartTime: t.Start,
			EndTime:   t.End,
			Hours:     hours,
			IsDefault: !hasActive(configs, sh),
		})
	}
	return result, nil
}

// ListConfigs implements shift.ShiftService.
func (s *shiftServiceImpl) ListConfigs(ctx context.Context) ([]shift.ShiftTimeConfigResponse, error) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift configs: %w", err)
	}

	responses := make([]shift.ShiftTimeConfigResponse, 0, len(configs))
	for _, c := range configs {
		responses = append(responses, toConfigResponse(c))
	}
	return responses, nil
}

// UpsertConfig implements shift.ShiftService.
func (s *shiftServiceImpl) UpsertConfig(ctx context.Context, req shift.UpsertShiftTimeConfigRequest) (shift.ShiftTimeConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftTimeConfigResponse{}, err
	}
	if !shift.IsValidRange(req.StartTime, req.EndTime) {
		return shift.ShiftTimeConfigResponse{}, fmt.Errorf("%w: %s-%s", shift.ErrInvalidTimeRange, req.StartTime, req.EndTime)
	}

	// Stored times are zero-padded so the table's CHECKs and string ordering hold.
	start, err := shift.CanonicalClock(req.StartTime)
	if err != nil {
		return shift.ShiftTimeConfigResponse{}, err
	}
	end, err := shift.CanonicalClock(req.EndTime)
	if err != nil {
		return shift.ShiftTimeConfigResponse{}, err
	}

	saved, err := s.configRepo.Upsert(ctx, shift.ShiftTimeConfig{
		Shift:     shift.Shift(req.Shift),
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	})
	if err != nil {
		return shift.ShiftTimeConfigResponse{}, fmt.Errorf("failed to save shift config: %w", err)
	}
	return toConfigResponse(saved), nil
}

// DeactivateConfig implements shift.ShiftService.
func (s *shiftServiceImpl) DeactivateConfig(ctx context.Context, sh shift.Shift) error {
	if !sh.IsValid() {
		return fmt.Errorf("%w: %q", shift.ErrInvalidShift, sh)
	}
	if err := s.configRepo.Deactivate(ctx, sh); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrShiftConfigNotFound
		}
		return fmt.Errorf("failed to deactivate shift config: %w", err)
	}
	return nil
}

// ComputeHours implements shift.ShiftService.
func (s *shiftServiceImpl) ComputeHours(ctx context.Context, start, end string) (shift.ShiftHoursResponse, error) {
	hours, err := shift.ComputeShiftHours(start, end)
	if err != nil {
		return shift.ShiftHoursResponse{}, err
	}
	if !hours.IsPositive() {
		return shift.ShiftHoursResponse{}, fmt.Errorf("%w: %s-%s", shift.ErrInvalidTimeRange, start, end)
	}
	return shift.ShiftHoursResponse{StartTime: start, EndTime: end, Hours: hours}, nil
}

func hasActive(configs []shift.ShiftTimeConfig, sh shift.Shift) bool {
	for _, c := range configs {
		if c.Shift == sh && c.IsActive && shift.IsValidRange(c.StartTime, c.EndTime) {
			return true
		}
	}
	return false
}

func toConfigResponse(c shift.ShiftTimeConfig) shift.ShiftTimeConfigResponse {
	return shift.ShiftTimeConfigResponse{
		ID:        c.ID,
		Shift:     string(c.Shift),
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
