package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"carrental-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func carRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "brand", "type", "daily_price", "price_with_driver", "featured",
		"description", "image_url", "transmission", "fuel_type", "seats", "year",
		"mileage", "features", "created_at", "updated_at",
	})
}

func TestCarRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCarRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := carRows().AddRow(
			"car-1", "Avanza", "Toyota", "mpv", 500000.0, 200000.0, true,
			"Family car", "/img/avanza.jpg", "manual", "petrol", 7, 2023,
			"20000 km", `{"AC","Bluetooth"}`, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT (.+) FROM cars WHERE id = \$1`).
			WithArgs("car-1").
			WillReturnRows(rows)

		car, err := repo.GetByID(ctx, "car-1")
		assert.NoError(t, err)
		assert.Equal(t, "Avanza", car.Name)
		assert.Equal(t, []string{"AC", "Bluetooth"}, car.Features)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM cars WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		car, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, car)
	})
}

func TestCarRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCarRepository(db)
	ctx := context.Background()

	t.Run("FilterAndSort", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM cars`).
			WithArgs("toy", "mpv").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := carRows().AddRow(
			"car-1", "Avanza", "Toyota", "mpv", 500000.0, 0.0, false,
			"", "", "", "", 0, 0, "", "{}", time.Now(), time.Now())
		mock.ExpectQuery(`SELECT (.+) FROM cars WHERE 1=1 AND \(name ILIKE (.+)\) AND type = \$2 ORDER BY daily_price ASC LIMIT \$3 OFFSET \$4`).
			WithArgs("toy", "mpv", 10, 0).
			WillReturnRows(rows)

		cars, total, err := repo.List(ctx, domain.CarFilter{
			Search: "toy",
			Type:   "mpv",
			SortBy: domain.CarSortPriceAsc,
			Page:   1,
			Limit:  10,
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, cars, 1)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM cars`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT (.+) FROM cars WHERE 1=1 ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 0).
			WillReturnRows(carRows())

		cars, total, err := repo.List(ctx, domain.CarFilter{Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, cars)
	})
}

func TestCarRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCarRepository(db)

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE cars SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &domain.Car{ID: "missing"})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
