package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleettrack-backend/internal/domain"
)

func TestReportRepository_UsageEvents(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := NewReportRepository(db)

	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	when := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT kind, vehicle_id, user_id, distance, occurred_at FROM`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"kind", "vehicle_id", "user_id", "distance", "occurred_at"}).
			AddRow("trip", int32(7), int32(1), 50.0, when).
			AddRow("checkout", int32(7), int32(1), 150.0, when))

	events, err := repo.UsageEvents(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.UsageEventTrip, events[0].Kind)
	assert.Equal(t, 50.0, events[0].Distance)
	assert.Equal(t, domain.UsageEventCheckout, events[1].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_UsageEventsByUser(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := NewReportRepository(db)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT kind, vehicle_id, user_id, distance, occurred_at FROM`).
		WithArgs(int32(1), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"kind", "vehicle_id", "user_id", "distance", "occurred_at"}))

	events, err := repo.UsageEventsByUser(ctx, 1, from, to)
	require.NoError(t, err)
	assert.Empty(t, events)
}
