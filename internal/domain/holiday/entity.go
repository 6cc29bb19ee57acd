package holiday

import "time"

type HolidayType string

const (
	TypeOneDay HolidayType = "one_day"
	TypeLong   HolidayType = "long"
)

// Holiday covers the inclusive [StartDate, EndDate] range; a one-day holiday
// has StartDate == EndDate.
type Holiday struct {
	ID        string
	Name      string
	Type      HolidayType
	StartDate time.Time
	EndDate   time.Time
}
