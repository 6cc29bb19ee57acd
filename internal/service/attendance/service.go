package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/attendance"
	"github.com/instituteops/attendance-sync-go/internal/domain/employee"
	"github.com/instituteops/attendance-sync-go/internal/domain/holiday"
	"github.com/instituteops/attendance-sync-go/internal/domain/leave"
	"github.com/instituteops/attendance-sync-go/internal/domain/punch"
	"github.com/instituteops/attendance-sync-go/internal/pkg/timeutil"
)

// SyncService runs the reconciliation pipeline: aggregate punches, classify
// each employee-day, upsert ledger records, then backfill every active
// employee the punches never mentioned. Re-running any range is safe; every
// write is an upsert and the sweep skips employees that already have records.
type SyncService struct {
	source         punch.Source
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRequestRepository
	holidayRepo    holiday.HolidayRepository
	attendanceRepo attendance.AttendanceRepository
	cal            *timeutil.Calendar
	bands          Bands
	agg            *Aggregator
}

func NewSyncService(
	source punch.Source,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	holidayRepo holiday.HolidayRepository,
	attendanceRepo attendance.AttendanceRepository,
	cal *timeutil.Calendar,
	bands Bands,
	codeWidth int,
) *SyncService {
	return &SyncService{
		source:         source,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		holidayRepo:    holidayRepo,
		attendanceRepo: attendanceRepo,
		cal:            cal,
		bands:          bands,
		agg:            NewAggregator(cal, codeWidth),
	}
}

// RunSummary is the end-of-run report. Row-level problems are counted here
// and logged; only source/store connectivity failures abort a run.
type RunSummary struct {
	From            time.Time
	To              time.Time
	PunchRecords    int // ledger records written from punches
	Backfilled      int // ledger records written by the sweep
	UnknownCodes    int // punch tuples whose code resolves to no employee
	UnmatchedShifts int // punches that fell back to the default status
}

func (s *SyncService) RunForDate(ctx context.Context, day time.Time) (RunSummary, error) {
	return s.RunForRange(ctx, day, day)
}

// RunForRange processes every day of the inclusive [from, to] span. The punch
// fetch covers the whole span up front: if the source is unreachable the run
// aborts before anything is written.
func (s *SyncService) RunForRange(ctx context.Context, from, to time.Time) (RunSummary, error) {
	fromDay, toDay := s.cal.DayOf(from), s.cal.DayOf(to)
	summary := RunSummary{From: fromDay, To: toDay}

	if toDay.Before(fromDay) {
		return summary, fmt.Errorf("range end %s is before start %s",
			toDay.Format("2006-01-02"), fromDay.Format("2006-01-02"))
	}

	rangeStart, _ := s.cal.DayRange(fromDay)
	_, rangeEnd := s.cal.DayRange(toDay)

	events, err := s.source.FetchRange(ctx, rangeStart, rangeEnd)
	if err != nil {
		return summary, fmt.Errorf("fetch punch log: %w", err)
	}

	tuples := s.agg.Aggregate(events)
	byDay := make(map[string][]punch.DayPunch)
	for _, t := range tuples {
		k := t.Day.Format("2006-01-02")
		byDay[k] = append(byDay[k], t)
	}

	active, err := s.employeeRepo.FindActive(ctx)
	if err != nil {
		return summary, fmt.Errorf("list active employees: %w", err)
	}

	// Codes outside the active list (resigned employees still punching,
	// typos) are looked up individually and cached for the run.
	employeesByCode := make(map[string]*employee.Employee, len(active))
	for i := range active {
		employeesByCode[active[i].Code] = &active[i]
	}

	for _, day := range s.cal.Days(fromDay, toDay) {
		if err := s.processDay(ctx, day, byDay[day.Format("2006-01-02")], active, employeesByCode, &summary); err != nil {
			return summary, err
		}
	}

	slog.Info("Sync: run complete",
		"from", fromDay.Format("2006-01-02"),
		"to", toDay.Format("2006-01-02"),
		"punch_records", summary.PunchRecords,
		"backfilled", summary.Backfilled,
		"unknown_codes", summary.UnknownCodes,
		"unmatched_shifts", summary.UnmatchedShifts,
	)

	return summary, nil
}

// processDay classifies the day's punch tuples, then sweeps the active list
// for employees with no record at all.
func (s *SyncService) processDay(
	ctx context.Context,
	day time.Time,
	punches []punch.DayPunch,
	active []employee.Employee,
	employeesByCode map[string]*employee.Employee,
	summary *RunSummary,
) error {
	hol, err := s.holidayRepo.FindCovering(ctx, day)
	if err != nil {
		return fmt.Errorf("holiday lookup for %s: %w", day.Format("2006-01-02"), err)
	}
	onHoliday := hol != nil
	sunday := s.cal.IsSunday(day)

	for i := range punches {
		p := punches[i]

		emp, err := s.lookupEmployee(ctx, employeesByCode, p.EmployeeCode)
		if err != nil {
			return err
		}
		if emp == nil {
			slog.Warn("Sync: punch for unknown employee code, skipping",
				"employee_code", p.EmployeeCode, "date", day.Format("2006-01-02"))
			summary.UnknownCodes++
			continue
		}

		lv, err := s.leaveRepo.FindApprovedCovering(ctx, emp.ID, day)
		if err != nil {
			return fmt.Errorf("leave lookup for employee %s: %w", emp.Code, err)
		}
		facts := DayFacts{OnLeave: lv != nil, OnHoliday: onHoliday, Sunday: sunday}

		shift := ResolveShift(emp.Shifts, p.DeviceName)
		if shift == nil && !facts.OnLeave && !facts.OnHoliday {
			slog.Warn("Sync: punch device matches no shift assignment, keeping default status",
				"employee_code", emp.Code, "device", p.DeviceName, "date", day.Format("2006-01-02"))
			summary.UnmatchedShifts++
		}

		status := ClassifyDay(&p, shift, facts, s.bands)

		record := attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       day,
			Branch:     branchFor(shift, p.DeviceName),
			Status:     status,
		}
		// Leave and holiday records carry no punch times even when the
		// employee punched; the day is not a working day.
		if status != attendance.StatusLeave && status != attendance.StatusHoliday {
			logIn, logOut := p.LogIn, p.LogOut
			record.LogIn, record.LogOut = &logIn, &logOut
		}

		if _, err := s.attendanceRepo.Upsert(ctx, record); err != nil {
			return fmt.Errorf("upsert attendance for employee %s on %s: %w",
				emp.Code, day.Format("2006-01-02"), err)
		}
		summary.PunchRecords++
	}

	return s.backfillDay(ctx, day, onHoliday, sunday, active, summary)
}

// backfillDay writes default-status records for every active employee that
// ended the day with no ledger record: leave/holiday if covered, Sunday if
// the day is one, absent otherwise. One record per assigned branch; the
// "unknown" sentinel when the employee has no assignments. The existing-
// record guard makes re-runs no-ops.
func (s *SyncService) backfillDay(
	ctx context.Context,
	day time.Time,
	onHoliday, sunday bool,
	active []employee.Employee,
	summary *RunSummary,
) error {
	ids, err := s.attendanceRepo.EmployeeIDsWithRecordOn(ctx, day)
	if err != nil {
		return fmt.Errorf("list recorded employees for %s: %w", day.Format("2006-01-02"), err)
	}
	recorded := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		recorded[id] = struct{}{}
	}

	for i := range active {
		emp := &active[i]
		if _, ok := recorded[emp.ID]; ok {
			continue
		}

		lv, err := s.leaveRepo.FindApprovedCovering(ctx, emp.ID, day)
		if err != nil {
			return fmt.Errorf("leave lookup for employee %s: %w", emp.Code, err)
		}
		status := ClassifyDay(nil, nil, DayFacts{OnLeave: lv != nil, OnHoliday: onHoliday, Sunday: sunday}, s.bands)

		branches := make([]string, 0, len(emp.Shifts))
		for _, shift := range emp.Shifts {
			branches = append(branches, shift.BranchID)
		}
		if len(branches) == 0 {
			branches = []string{attendance.BranchUnknown}
		}

		records := make([]attendance.Attendance, 0, len(branches))
		for _, branch := range branches {
			records = append(records, attendance.Attendance{
				EmployeeID: emp.ID,
				Date:       day,
				Branch:     branch,
				Status:     status,
			})
		}

		if err := s.attendanceRepo.UpsertMany(ctx, records); err != nil {
			return fmt.Errorf("backfill employee %s on %s: %w", emp.Code, day.Format("2006-01-02"), err)
		}
		summary.Backfilled += len(records)
	}

	return nil
}

func (s *SyncService) lookupEmployee(ctx context.Context, cache map[string]*employee.Employee, code string) (*employee.Employee, error) {
	if emp, ok := cache[code]; ok {
		return emp, nil
	}
	emp, err := s.employeeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("lookup employee code %s: %w", code, err)
	}
	cache[code] = emp // negative results cached too
	return emp, nil
}

// branchFor picks the ledger branch for a punch-derived record. Unmatched
// devices keep their raw name so the record stays traceable for review.
func branchFor(shift *employee.ShiftAssignment, deviceName string) string {
	if shift != nil {
		return shift.BranchID
	}
	if deviceName == "" {
		return attendance.BranchUnknown
	}
	return deviceName
}
