package employee

import "context"

// EmployeeRepository reads the employee directory. This core never mutates it.
type EmployeeRepository interface {
	// FindActive returns every active employee, shift assignments included.
	FindActive(ctx context.Context) ([]Employee, error)

	// FindByCode resolves a biometric employee code. Returns (nil, nil) when
	// no employee carries the code; the caller skips the row with a warning.
	FindByCode(ctx context.Context, code string) (*Employee, error)
}
