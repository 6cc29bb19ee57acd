package payroll

// SlipFailure records one employee whose slip could not be generated during a
// batch run. The batch keeps going past these.
type SlipFailure struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Reason       string `json:"reason"`
}

type BatchResult struct {
	Month     string        `json:"month"`
	Generated int           `json:"generated"`
	Failures  []SlipFailure `json:"failures,omitempty"`
}
