package shift

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfigRepo struct {
	configs []shift.ShiftTimeConfig
	err     error
	saved   []shift.ShiftTimeConfig
}

func (f *fakeConfigRepo) List(ctx context.Context) ([]shift.ShiftTimeConfig, error) {
	return f.configs, f.err
}

func (f *fakeConfigRepo) ListActive(ctx context.Context) ([]shift.ShiftTimeConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	var active []shift.ShiftTimeConfig
	for _, c := range f.configs {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (f *fakeConfigRepo) Upsert(ctx context.Context, c shift.ShiftTimeConfig) (shift.ShiftTimeConfig, error) {
	c.ID = "0199a1b2-0000-7000-8000-00000000000a"
	f.saved = append(f.saved, c)
	return c, nil
}

func (f *fakeConfigRepo) Deactivate(ctx context.Context, s shift.Shift) error {
	for i := range f.configs {
		if f.configs[i].Shift == s {
			f.configs[i].IsActive = false
			return nil
		}
	}
	return pgx.ErrNoRows
}

func TestShiftService_GetTimes(t *testing.T) {
	repo := &fakeConfigRepo{configs: []shift.ShiftTimeConfig{
		{Shift: shift.Morning, StartTime: "07:00", EndTime: "11:00", IsActive: true},
		{Shift: shift.Evening, StartTime: "18:00", EndTime: "22:00", IsActive: false},
	}}
	svc := NewShiftService(repo)

	times, err := svc.GetTimes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, shift.Times{Start: "07:00", End: "11:00"}, times[shift.Morning])
	assert.Equal(t, shift.DefaultsFor(shift.Afternoon), times[shift.Afternoon])
	assert.Equal(t, shift.DefaultsFor(shift.Evening), times[shift.Evening])
}

func TestShiftService_GetTimes_RepositoryFailure(t *testing.T) {
	svc := NewShiftService(&fakeConfigRepo{err: errors.New("connection refused")})

	_, err := svc.GetTimes(context.Background())
	assert.ErrorIs(t, err, shift.ErrShiftTimesUnavailable)
}

func TestShiftService_ListEffectiveTimes(t *testing.T) {
	repo := &fakeConfigRepo{configs: []shift.ShiftTimeConfig{
		{Shift: shift.Afternoon, StartTime: "14:00", EndTime: "18:30", IsActive: true},
	}}
	svc := NewShiftService(repo)

	list, err := svc.ListEffectiveTimes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "morning", list[0].Shift)
	assert.True(t, list[0].IsDefault)
	assert.True(t, decimal.RequireFromString("3.5").Equal(list[0].Hours))

	assert.Equal(t, "afternoon", list[1].Shift)
	assert.False(t, list[1].IsDefault)
	assert.True(t, decimal.RequireFromString("4.5").Equal(list[1].Hours))

	assert.True(t, decimal.RequireFromString("1.5").Equal(list[2].Hours))
}

func TestShiftService_UpsertConfig(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewShiftService(repo)

	resp, err := svc.UpsertConfig(context.Background(), shift.UpsertShiftTimeConfigRequest{
		Shift: "evening", StartTime: "19:00", EndTime: "21:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "evening", resp.Shift)
	assert.True(t, resp.IsActive)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, shift.Evening, repo.saved[0].Shift)
}

func TestShiftService_UpsertConfig_StoresZeroPaddedTimes(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewShiftService(repo)

	resp, err := svc.UpsertConfig(context.Background(), shift.UpsertShiftTimeConfigRequest{
		Shift: "morning", StartTime: "8:30", EndTime: "12:00",
	})
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "08:30", repo.saved[0].StartTime)
	assert.Equal(t, "12:00", repo.saved[0].EndTime)
	assert.Equal(t, "08:30", resp.StartTime)

	_, err = svc.UpsertConfig(context.Background(), shift.UpsertShiftTimeConfigRequest{
		Shift: "afternoon", StartTime: "9:00", EndTime: "17:00",
	})
	require.NoError(t, err)
	require.Len(t, repo.saved, 2)
	assert.Equal(t, "09:00", repo.saved[1].StartTime)
	assert.Less(t, repo.saved[1].StartTime, repo.saved[1].EndTime)
}

func TestShiftService_UpsertConfig_Rejects(t *testing.T) {
	svc := NewShiftService(&fakeConfigRepo{})

	t.Run("reversed range", func(t *testing.T) {
		_, err := svc.UpsertConfig(context.Background(), shift.UpsertShiftTimeConfigRequest{
			Shift: "morning", StartTime: "12:00", EndTime: "08:30",
		})
		assert.ErrorIs(t, err, shift.ErrInvalidTimeRange)
	})

	t.Run("empty range", func(t *testing.T) {
		_, err := svc.UpsertConfig(context.Background(), shift.UpsertShiftTimeConfigRequest{
			Shift: "morning", StartTime: "08:30", EndTime: "08:30",
		})
		assert.ErrorIs(t, err, shift.ErrInvalidTimeRange)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := svc.UpsertConfig(context.Background(), shift.UpsertShiftTimeConfigRequest{
			Shift: "morning", StartTime: "8:5", EndTime: "25:00",
		})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "start_time")
		assert.Contains(t, verrs.ToMap(), "end_time")
	})

	t.Run("unknown shift", func(t *testing.T) {
		_, err := svc.UpsertConfig(context.Background(), shift.UpsertShiftTimeConfigRequest{
			Shift: "night", StartTime: "21:00", EndTime: "23:00",
		})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "shift")
	})
}

func TestShiftService_DeactivateConfig(t *testing.T) {
	repo := &fakeConfigRepo{configs: []shift.ShiftTimeConfig{
		{Shift: shift.Morning, StartTime: "07:00", EndTime: "11:00", IsActive: true},
	}}
	svc := NewShiftService(repo)

	require.NoError(t, svc.DeactivateConfig(context.Background(), shift.Morning))
	require.NoError(t, svc.DeactivateConfig(context.Background(), shift.Morning))
	times, err := svc.GetTimes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, shift.DefaultsFor(shift.Morning), times[shift.Morning])

	assert.ErrorIs(t, svc.DeactivateConfig(context.Background(), shift.Evening), shift.ErrShiftConfigNotFound)
	assert.ErrorIs(t, svc.DeactivateConfig(context.Background(), shift.Shift("night")), shift.ErrInvalidShift)
}

func TestShiftService_ComputeHours(t *testing.T) {
	svc := NewShiftService(&fakeConfigRepo{})

	resp, err := svc.ComputeHours(context.Background(), "08:30", "12:00")
	require.NoError(t, err)
	assert.Equal(t, "3.5", resp.Hours.String())

	_, err = svc.ComputeHours(context.Background(), "25:00", "12:00")
	assert.ErrorIs(t, err, shift.ErrInvalidTimeFormat)

	_, err = svc.ComputeHours(context.Background(), "12:00", "08:30")
	assert.ErrorIs(t, err, shift.ErrInvalidTimeRange)
}
