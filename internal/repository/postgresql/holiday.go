package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/instituteops/attendance-sync-go/internal/domain/holiday"
	"github.com/instituteops/attendance-sync-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// FindCovering implements holiday.HolidayRepository.
func (h *holidayRepository) FindCovering(ctx context.Context, day time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, name, type, start_date, end_date
		FROM holidays
		WHERE start_date <= $1
		  AND end_date >= $1
		LIMIT 1
	`

	var hol holiday.Holiday
	var holType string
	err := q.QueryRow(ctx, query, day).Scan(
		&hol.ID, &hol.Name, &holType, &hol.StartDate, &hol.EndDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find holiday: %w", err)
	}
	hol.Type = holiday.HolidayType(holType)

	return &hol, nil
}
