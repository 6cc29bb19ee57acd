package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrMissingSalary    = errors.New("employee has no base salary on file")
)
