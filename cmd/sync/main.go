package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/config"
	appHTTP "github.com/instituteops/attendance-sync-go/internal/handler/http"
	"github.com/instituteops/attendance-sync-go/internal/pkg/cron"
	"github.com/instituteops/attendance-sync-go/internal/pkg/database"
	"github.com/instituteops/attendance-sync-go/internal/pkg/timeutil"
	"github.com/instituteops/attendance-sync-go/internal/repository/postgresql"
	"github.com/instituteops/attendance-sync-go/internal/repository/punchsource"
	attendanceService "github.com/instituteops/attendance-sync-go/internal/service/attendance"
	payrollService "github.com/instituteops/attendance-sync-go/internal/service/payroll"
)

const usage = `Usage:
  sync run   -date YYYY-MM-DD          reconcile attendance for one day
  sync range -from YYYY-MM-DD -to YYYY-MM-DD
                                       reconcile attendance for a date span
  sync slips -month YYYY-MM            generate salary slips for a month
  sync serve                           run the scheduler and HTTP triggers
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	setupLogger(cfg.App.LogLevel)

	cal, err := timeutil.NewCalendar(cfg.Sync.Timezone)
	if err != nil {
		slog.Error("Invalid institute timezone", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	source, err := punchsource.NewMySQLSource(cfg.PunchDB.DSN, cal.Location())
	if err != nil {
		slog.Error("Failed to connect to punch log", "error", err)
		os.Exit(1)
	}
	defer source.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	incentiveRepo := postgresql.NewIncentiveRepository(db)
	advanceRepo := postgresql.NewAdvanceRepaymentRepository(db)
	slipRepo := postgresql.NewSalarySlipRepository(db)

	bands := attendanceService.Bands{
		LateGrace:     cfg.Classifier.LateGraceMinutes,
		MuchLateLimit: cfg.Classifier.MuchLateLimitMinutes,
		EarlyLeave:    cfg.Classifier.EarlyLeaveLimitMinutes,
	}
	syncSvc := attendanceService.NewSyncService(
		source, employeeRepo, leaveRepo, holidayRepo, attendanceRepo,
		cal, bands, cfg.Sync.EmployeeCodeWidth,
	)
	payrollSvc := payrollService.NewPayrollService(
		attendanceRepo, employeeRepo, incentiveRepo, advanceRepo, slipRepo, cal,
	)

	ctx := context.Background()

	switch os.Args[1] {
	case "run":
		fs := flag.NewFlagSet("run", flag.ExitOnError)
		dateStr := fs.String("date", "", "day to reconcile (YYYY-MM-DD)")
		_ = fs.Parse(os.Args[2:])

		day, err := cal.ParseDate(*dateStr)
		if err != nil {
			slog.Error("Invalid -date", "error", err)
			os.Exit(2)
		}
		if _, err := syncSvc.RunForDate(ctx, day); err != nil {
			slog.Error("Sync run failed", "error", err)
			os.Exit(1)
		}

	case "range":
		fs := flag.NewFlagSet("range", flag.ExitOnError)
		fromStr := fs.String("from", "", "first day (YYYY-MM-DD)")
		toStr := fs.String("to", "", "last day, inclusive (YYYY-MM-DD)")
		_ = fs.Parse(os.Args[2:])

		from, err := cal.ParseDate(*fromStr)
		if err != nil {
			slog.Error("Invalid -from", "error", err)
			os.Exit(2)
		}
		to, err := cal.ParseDate(*toStr)
		if err != nil {
			slog.Error("Invalid -to", "error", err)
			os.Exit(2)
		}
		if _, err := syncSvc.RunForRange(ctx, from, to); err != nil {
			slog.Error("Sync run failed", "error", err)
			os.Exit(1)
		}

	case "slips":
		fs := flag.NewFlagSet("slips", flag.ExitOnError)
		month := fs.String("month", "", "payroll month (YYYY-MM)")
		_ = fs.Parse(os.Args[2:])

		result, err := payrollSvc.GenerateMonth(ctx, *month)
		if err != nil {
			slog.Error("Slip generation failed", "error", err)
			os.Exit(1)
		}
		// Row-level failures are reported, not fatal.
		for _, failure := range result.Failures {
			slog.Warn("Slip skipped", "employee_code", failure.EmployeeCode, "reason", failure.Reason)
		}

	case "serve":
		serve(cfg, cal, syncSvc, payrollSvc)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func serve(
	cfg *config.Config,
	cal *timeutil.Calendar,
	syncSvc *attendanceService.SyncService,
	payrollSvc *payrollService.PayrollService,
) {
	scheduler := cron.NewScheduler()
	jobs := cron.NewSyncJobs(syncSvc, payrollSvc, cal, cfg.Sync.RunHour)
	jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	syncHandler := appHTTP.NewSyncHandler(syncSvc, cal)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	router := appHTTP.NewRouter(cfg.App.Env, syncHandler, payrollHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
