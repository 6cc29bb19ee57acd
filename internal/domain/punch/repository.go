package punch

import (
	"context"
	"time"
)

// Source reads the external punch log. A failed read aborts the whole sync
// invocation; re-running the same range later is safe because everything
// downstream is upsert-based.
type Source interface {
	// FetchRange returns raw events with from <= timestamp < to.
	FetchRange(ctx context.Context, from, to time.Time) ([]Event, error)
}
