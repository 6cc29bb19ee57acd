package cron

import (
	"context"
	"log/slog"
	"time"

	attendanceService "github.com/instituteops/attendance-sync-go/internal/service/attendance"
	payrollService "github.com/instituteops/attendance-sync-go/internal/service/payroll"

	"github.com/instituteops/attendance-sync-go/internal/pkg/timeutil"
)

// SyncJobs wires the pipeline into the scheduler: a daily attendance sync for
// the previous day and a monthly slip batch for the previous month. Both tick
// hourly and fire only in the configured local hour, the same guard idiom the
// rest of our batch jobs use.
type SyncJobs struct {
	syncSvc    *attendanceService.SyncService
	payrollSvc *payrollService.PayrollService
	cal        *timeutil.Calendar
	runHour    int
}

func NewSyncJobs(
	syncSvc *attendanceService.SyncService,
	payrollSvc *payrollService.PayrollService,
	cal *timeutil.Calendar,
	runHour int,
) *SyncJobs {
	return &SyncJobs{
		syncSvc:    syncSvc,
		payrollSvc: payrollSvc,
		cal:        cal,
		runHour:    runHour,
	}
}

func (j *SyncJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("attendance_sync", 1*time.Hour, j.DailySync)
	scheduler.AddJob("monthly_salary_slips", 1*time.Hour, j.MonthlySlips)
}

// DailySync reconciles yesterday's attendance.
func (j *SyncJobs) DailySync(ctx context.Context) error {
	now := time.Now().In(j.cal.Location())
	if now.Hour() != j.runHour {
		return nil
	}

	yesterday := j.cal.DayOf(now.AddDate(0, 0, -1))
	slog.Info("Cron: starting attendance sync", "date", yesterday.Format("2006-01-02"))

	summary, err := j.syncSvc.RunForDate(ctx, yesterday)
	if err != nil {
		return err
	}

	slog.Info("Cron: attendance sync finished",
		"date", yesterday.Format("2006-01-02"),
		"punch_records", summary.PunchRecords,
		"backfilled", summary.Backfilled)
	return nil
}

// MonthlySlips generates last month's salary slips on the 1st.
func (j *SyncJobs) MonthlySlips(ctx context.Context) error {
	now := time.Now().In(j.cal.Location())
	if now.Day() != 1 || now.Hour() != j.runHour {
		return nil
	}

	month := now.AddDate(0, -1, 0).Format("2006-01")
	slog.Info("Cron: starting monthly slip generation", "month", month)

	result, err := j.payrollSvc.GenerateMonth(ctx, month)
	if err != nil {
		return err
	}

	slog.Info("Cron: monthly slip generation finished",
		"month", month, "generated", result.Generated, "failed", len(result.Failures))
	return nil
}
