package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// usageEventsQuery feeds the aggregator: closed checkout deltas keyed by
// end_time and trip distances keyed by depart_time. Both kinds count,
// matching the system of record's additive totals.
const usageEventsQuery = `
	SELECT 'checkout' AS kind, c.vehicle_id, c.user_id, c.end_odometer - c.start_odometer AS distance, c.end_time AS occurred_at
	FROM checkouts c
	WHERE c.end_time IS NOT NULL AND c.end_odometer IS NOT NULL
	UNION ALL
	SELECT 'trip' AS kind, c.vehicle_id, c.user_id, t.distance, t.depart_time AS occurred_at
	FROM trips t
	JOIN checkouts c ON c.id = t.checkout_id
	WHERE t.distance IS NOT NULL`

func (r *reportRepository) UsageEvents(ctx context.Context, from, to time.Time) ([]domain.UsageEvent, error) {
	query := `SELECT kind, vehicle_id, user_id, distance, occurred_at FROM (` + usageEventsQuery + `) ev
	          WHERE ev.occurred_at >= $1 AND ev.occurred_at < $2
	          ORDER BY ev.occurred_at`
	return r.query(ctx, query, from, to)
}

func (r *reportRepository) UsageEventsByUser(ctx context.Context, userID int32, from, to time.Time) ([]domain.UsageEvent, error) {
	query := `SELECT kind, vehicle_id, user_id, distance, occurred_at FROM (` + usageEventsQuery + `) ev
	          WHERE ev.user_id = $1 AND ev.occurred_at >= $2 AND ev.occurred_at < $3
	          ORDER BY ev.occurred_at`
	return r.query(ctx, query, userID, from, to)
}

func (r *reportRepository) AllUsageEvents(ctx context.Context) ([]domain.UsageEvent, error) {
	query := `SELECT kind, vehicle_id, user_id, distance, occurred_at FROM (` + usageEventsQuery + `) ev
	          ORDER BY ev.occurred_at`
	return r.query(ctx, query)
}

func (r *reportRepository) query(ctx context.Context, query string, args ...any) ([]domain.UsageEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.UsageEvent
	for rows.Next() {
		var ev domain.UsageEvent
		if err := rows.Scan(&ev.Kind, &ev.VehicleID, &ev.UserID, &ev.Distance, &ev.When); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
