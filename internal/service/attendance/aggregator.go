package attendance

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"

	"github.com/instituteops/attendance-sync-go/internal/domain/punch"
	"github.com/instituteops/attendance-sync-go/internal/pkg/timeutil"
)

// Aggregator reduces raw punch events to one tuple per
// (employee, institute-local day, device): earliest timestamp as log-in,
// latest as log-out. It performs no I/O.
type Aggregator struct {
	cal    *timeutil.Calendar
	codeRe *regexp.Regexp
}

// NewAggregator builds an aggregator that accepts only fixed-width numeric
// employee codes of the given width; anything else is logged and dropped.
func NewAggregator(cal *timeutil.Calendar, codeWidth int) *Aggregator {
	return &Aggregator{
		cal:    cal,
		codeRe: regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d}$`, codeWidth)),
	}
}

// Aggregate groups events into DayPunch tuples. Output is sorted by
// (day, employee code, device) so runs log deterministically.
func (a *Aggregator) Aggregate(events []punch.Event) []punch.DayPunch {
	type key struct {
		code   string
		day    string
		device string
	}

	byKey := make(map[key]*punch.DayPunch)
	badCodes := make(map[string]struct{})

	for _, ev := range events {
		if !a.codeRe.MatchString(ev.EmployeeCode) {
			if _, logged := badCodes[ev.EmployeeCode]; !logged {
				slog.Warn("Sync: dropping punches with malformed employee code",
					"employee_code", ev.EmployeeCode, "device", ev.DeviceName)
				badCodes[ev.EmployeeCode] = struct{}{}
			}
			continue
		}

		ts := ev.Timestamp.In(a.cal.Location())
		day := a.cal.DayOf(ts)
		k := key{code: ev.EmployeeCode, day: day.Format("2006-01-02"), device: ev.DeviceName}

		dp, ok := byKey[k]
		if !ok {
			byKey[k] = &punch.DayPunch{
				EmployeeCode: ev.EmployeeCode,
				Day:          day,
				DeviceName:   ev.DeviceName,
				LogIn:        ts,
				LogOut:       ts,
			}
			continue
		}
		if ts.Before(dp.LogIn) {
			dp.LogIn = ts
		}
		if ts.After(dp.LogOut) {
			dp.LogOut = ts
		}
	}

	out := make([]punch.DayPunch, 0, len(byKey))
	for _, dp := range byKey {
		out = append(out, *dp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Day.Equal(out[j].Day) {
			return out[i].Day.Before(out[j].Day)
		}
		if out[i].EmployeeCode != out[j].EmployeeCode {
			return out[i].EmployeeCode < out[j].EmployeeCode
		}
		return out[i].DeviceName < out[j].DeviceName
	})

	return out
}
