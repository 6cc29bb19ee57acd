package payroll

import "errors"

var (
	ErrSlipNotFound = errors.New("salary slip not found")
	ErrInvalidMonth = errors.New("invalid payroll month")
)
