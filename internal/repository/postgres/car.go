package postgres

import (
	"context"
	"database/sql"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, name, brand, type, daily_price, price_with_driver, featured, description, image_url, transmission, fuel_type, seats, year, mileage, features, created_at, updated_at`

func scanCar(row interface{ Scan(...any) error }) (*domain.Car, error) {
	c := &domain.Car{}
	var features pq.StringArray
	err := row.Scan(&c.ID, &c.Name, &c.Brand, &c.Type, &c.DailyPrice, &c.PriceWithDriver, &c.Featured, &c.Description, &c.ImageURL, &c.Transmission, &c.FuelType, &c.Seats, &c.Year, &c.Mileage, &features, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Features = features
	return c, nil
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	query := `INSERT INTO cars (id, name, brand, type, daily_price, price_with_driver, featured, description, image_url, transmission, fuel_type, seats, year, mileage, features, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Brand, c.Type, c.DailyPrice, c.PriceWithDriver, c.Featured, c.Description, c.ImageURL, c.Transmission, c.FuelType, c.Seats, c.Year, c.Mileage, pq.Array(c.Features), c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	return scanCar(r.db.QueryRowContext(ctx, query, id))
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET name=$1, brand=$2, type=$3, daily_price=$4, price_with_driver=$5, featured=$6, description=$7, image_url=$8, transmission=$9, fuel_type=$10, seats=$11, year=$12, mileage=$13, features=$14, updated_at=$15 WHERE id=$16`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Brand, c.Type, c.DailyPrice, c.PriceWithDriver, c.Featured, c.Description, c.ImageURL, c.Transmission, c.FuelType, c.Seats, c.Year, c.Mileage, pq.Array(c.Features), time.Now(), c.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *carRepository) List(ctx context.Context, filter domain.CarFilter) ([]domain.Car, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		where += ` AND (name ILIKE '%' || $1 || '%' OR brand ILIKE '%' || $1 || '%')`
		args = append(args, filter.Search)
		argIdx++
	}
	if filter.Type != "" {
		where += ` AND type = $` + itoa(argIdx)
		args = append(args, filter.Type)
		argIdx++
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM cars`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	orderBy := ` ORDER BY created_at DESC`
	switch filter.SortBy {
	case domain.CarSortPriceAsc:
		orderBy = ` ORDER BY daily_price ASC`
	case domain.CarSortPriceDesc:
		orderBy = ` ORDER BY daily_price DESC`
	case domain.CarSortNameAsc:
		orderBy = ` ORDER BY name ASC`
	case domain.CarSortNameDesc:
		orderBy = ` ORDER BY name DESC`
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `SELECT ` + carColumns + ` FROM cars` + where + orderBy +
		` LIMIT $` + itoa(argIdx) + ` OFFSET $` + itoa(argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, 0, err
		}
		cars = append(cars, *c)
	}
	return cars, count, rows.Err()
}
