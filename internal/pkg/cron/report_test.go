package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeReportService struct {
	report.ReportService
	mu       sync.Mutex
	requests []report.MonthlyHoursRequest
	err      error
}

func (f *fakeReportService) ArchiveMonthlyHours(ctx context.Context, req report.MonthlyHoursRequest) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", false, f.err
	}
	return "reports/monthly-hours.xlsx", len(f.requests) == 1, nil
}

func (f *fakeReportService) calls() []report.MonthlyHoursRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]report.MonthlyHoursRequest(nil), f.requests...)
}

func TestReportJobs_ExportPreviousMonth(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want report.MonthlyHoursRequest
	}{
		{"mid year", time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC), report.MonthlyHoursRequest{Year: 2025, Month: 2}},
		{"january rolls back a year", time.Date(2025, time.January, 1, 0, 5, 0, 0, time.UTC), report.MonthlyHoursRequest{Year: 2024, Month: 12}},
		{"end of month", time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC), report.MonthlyHoursRequest{Year: 2025, Month: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeReportService{}
			jobs := NewReportJobs(svc, discardLogger, time.UTC)
			jobs.now = func() time.Time { return tt.now }

			require.NoError(t, jobs.ExportPreviousMonth(context.Background()))
			assert.Equal(t, []report.MonthlyHoursRequest{tt.want}, svc.calls())
		})
	}
}

func TestReportJobs_ExportPreviousMonth_Error(t *testing.T) {
	svc := &fakeReportService{err: errors.New("disk full")}
	jobs := NewReportJobs(svc, discardLogger, time.UTC)

	err := jobs.ExportPreviousMonth(context.Background())
	assert.ErrorContains(t, err, "disk full")
}

func TestScheduler_RunsRegisteredJobs(t *testing.T) {
	svc := &fakeReportService{}
	jobs := NewReportJobs(svc, discardLogger, time.UTC)

	scheduler := NewScheduler(context.Background(), discardLogger)
	jobs.RegisterJobs(scheduler, time.Hour)

	scheduler.RunOnce(context.Background())
	assert.Len(t, svc.calls(), 1)

	scheduler.Start()
	assert.Eventually(t, func() bool { return len(svc.calls()) == 2 }, time.Second, 10*time.Millisecond)
	scheduler.Stop()

	scheduler.AddJob("late", time.Minute, func(ctx context.Context) error { return nil })
	assert.Len(t, scheduler.jobs, 1)
}
