package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleettrack-backend/internal/domain"
)

var uniqueViolationErr = pq.Error{Code: "23505"}

func TestVehicleRepository_ListAvailable(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := NewVehicleRepository(db)

	created := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM vehicles v\s+WHERE v\.active = true\s+AND NOT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "plate", "make", "model", "year", "current_odometer", "active", "created_on",
		}).
			AddRow(int32(7), "ABC1D23", "Fiat", "Strada", int32(2024), 1150.0, true, created).
			AddRow(int32(8), "XYZ9K88", "VW", "Saveiro", int32(2023), 800.0, true, created))

	vehicles, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "ABC1D23", vehicles[0].Plate)
	assert.Equal(t, 1150.0, vehicles[0].CurrentOdometer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepository_Create_DuplicatePlate(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := NewVehicleRepository(db)

	mock.ExpectQuery(`INSERT INTO vehicles`).
		WithArgs("ABC1D23", "Fiat", "Strada", int32(2024), 0.0).
		WillReturnError(&uniqueViolationErr)

	err := repo.Create(ctx, &domain.Vehicle{Plate: "ABC1D23", Make: "Fiat", Model: "Strada", Year: 2024})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestVehicleRepository_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewVehicleRepository(db)

		mock.ExpectExec(`UPDATE vehicles SET active = false WHERE id = \$1`).
			WithArgs(int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Deactivate(ctx, 7))
	})

	t.Run("Unknown", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewVehicleRepository(db)

		mock.ExpectExec(`UPDATE vehicles SET active = false WHERE id = \$1`).
			WithArgs(int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Deactivate(ctx, 99), domain.ErrNotFound)
	})
}
