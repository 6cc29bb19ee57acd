package punch

import "time"

// Event is one raw biometric punch row from the device log.
type Event struct {
	EmployeeCode string
	Timestamp    time.Time
	DeviceName   string
}

// DayPunch is the aggregate of all of one employee's punches at one device on
// one institute-local day: earliest timestamp as LogIn, latest as LogOut.
type DayPunch struct {
	EmployeeCode string
	Day          time.Time
	DeviceName   string
	LogIn        time.Time
	LogOut       time.Time
}
