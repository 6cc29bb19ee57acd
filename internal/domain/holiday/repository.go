package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// FindCovering returns a holiday whose range contains the given day,
	// or (nil, nil) when there is none.
	FindCovering(ctx context.Context, day time.Time) (*Holiday, error)
}
