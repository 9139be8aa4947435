package postgres

import (
	"context"
	"database/sql"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/google/uuid"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `b.id, b.car_id, b.user_id, b.customer_name, b.customer_email, b.customer_phone, b.start_date, b.end_date, b.with_driver,
	b.base_price, b.driver_price, b.cleaning_fee, b.damage_fee, b.overtime_fee, b.fuel_fee, b.other_fees, b.fees_notes,
	b.total_price, b.deposit_amount, b.paid_amount, b.notes, b.status,
	b.verified_at, b.confirmed_at, b.delivered_at, b.delivery_date, b.delivery_notes,
	b.completed_at, b.actual_return_date, b.return_notes, b.created_at, b.updated_at`

func scanBooking(row interface{ Scan(...any) error }, extra ...any) (*domain.Booking, error) {
	b := &domain.Booking{}
	dest := []any{
		&b.ID, &b.CarID, &b.UserID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.StartDate, &b.EndDate, &b.WithDriver,
		&b.BasePrice, &b.DriverPrice, &b.CleaningFee, &b.DamageFee, &b.OvertimeFee, &b.FuelFee, &b.OtherFees, &b.FeesNotes,
		&b.TotalPrice, &b.DepositAmount, &b.PaidAmount, &b.Notes, &b.Status,
		&b.VerifiedAt, &b.ConfirmedAt, &b.DeliveredAt, &b.DeliveryDate, &b.DeliveryNotes,
		&b.CompletedAt, &b.ActualReturnDate, &b.ReturnNotes, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = domain.BookingStatusPending
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	query := `INSERT INTO bookings (id, car_id, user_id, customer_name, customer_email, customer_phone, start_date, end_date, with_driver,
	            base_price, driver_price, fees_notes, total_price, deposit_amount, paid_amount, notes, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.CarID, b.UserID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.StartDate, b.EndDate, b.WithDriver,
		b.BasePrice, b.DriverPrice, b.FeesNotes, b.TotalPrice, b.DepositAmount, b.PaidAmount, b.Notes, b.Status, b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `, c.name, c.brand, c.type, c.daily_price, c.price_with_driver
	          FROM bookings b JOIN cars c ON c.id = b.car_id WHERE b.id = $1`
	car := domain.Car{}
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id),
		&car.Name, &car.Brand, &car.Type, &car.DailyPrice, &car.PriceWithDriver)
	if err != nil {
		return nil, err
	}
	car.ID = b.CarID
	b.Car = &car
	b.CarName = car.Name
	return b, nil
}

func (r *bookingRepository) List(ctx context.Context, status string, page, limit int) ([]domain.Booking, int, error) {
	where := ``
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		where = ` WHERE b.status = $1`
		args = append(args, status)
		argIdx++
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings b`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := `SELECT ` + bookingColumns + `, c.name, u.id, u.name, u.email
	          FROM bookings b
	          JOIN cars c ON c.id = b.car_id
	          JOIN users u ON u.id = b.user_id` + where +
		` ORDER BY b.created_at DESC LIMIT $` + itoa(argIdx) + ` OFFSET $` + itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var carName string
		user := domain.UserSummary{}
		b, err := scanBooking(rows, &carName, &user.ID, &user.Name, &user.Email)
		if err != nil {
			return nil, 0, err
		}
		b.CarName = carName
		b.User = &user
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `, c.name
	          FROM bookings b JOIN cars c ON c.id = b.car_id
	          WHERE b.user_id = $1 ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var carName string
		b, err := scanBooking(rows, &carName)
		if err != nil {
			return nil, err
		}
		b.CarName = carName
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `, c.name
	          FROM bookings b JOIN cars c ON c.id = b.car_id
	          WHERE b.status = 'confirmed' AND b.start_date >= $1 AND b.start_date < $2
	          ORDER BY b.start_date`
	return r.listWithCarName(ctx, query, from, to)
}

func (r *bookingRepository) ListActivePastEndDate(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `, c.name
	          FROM bookings b JOIN cars c ON c.id = b.car_id
	          WHERE b.status = 'active' AND b.end_date < $1
	          ORDER BY b.end_date`
	return r.listWithCarName(ctx, query, asOf)
}

func (r *bookingRepository) listWithCarName(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var carName string
		b, err := scanBooking(rows, &carName)
		if err != nil {
			return nil, err
		}
		b.CarName = carName
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, upd *repository.BookingStatusUpdate) error {
	// Nil timestamps and notes leave the stored values in place, so only
	// the transitions that stamp fields touch them.
	query := `UPDATE bookings SET status = $1,
	            verified_at = COALESCE($2, verified_at),
	            confirmed_at = COALESCE($3, confirmed_at),
	            delivered_at = COALESCE($4, delivered_at),
	            delivery_date = COALESCE($5, delivery_date),
	            delivery_notes = COALESCE($6, delivery_notes),
	            completed_at = COALESCE($7, completed_at),
	            actual_return_date = COALESCE($8, actual_return_date),
	            return_notes = COALESCE($9, return_notes),
	            updated_at = $10
	          WHERE id = $11`
	res, err := r.db.ExecContext(ctx, query, upd.Status,
		upd.VerifiedAt, upd.ConfirmedAt, upd.DeliveredAt, upd.DeliveryDate, upd.DeliveryNotes,
		upd.CompletedAt, upd.ActualReturnDate, upd.ReturnNotes, time.Now(), id)
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

func (r *bookingRepository) UpdateCharges(ctx context.Context, id string, upd *repository.BookingChargesUpdate) error {
	// Fees and the re-derived total land in one UPDATE so the persisted
	// total always matches the persisted fee values.
	query := `UPDATE bookings SET cleaning_fee = $1, damage_fee = $2, overtime_fee = $3, fuel_fee = $4, other_fees = $5,
	            fees_notes = COALESCE($6, fees_notes), total_price = $7, updated_at = $8
	          WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query, upd.CleaningFee, upd.DamageFee, upd.OvertimeFee, upd.FuelFee, upd.OtherFees,
		upd.FeesNotes, upd.TotalPrice, time.Now(), id)
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

func (r *bookingRepository) UpdatePayment(ctx context.Context, id string, paidAmount float64, notes *string) error {
	query := `UPDATE bookings SET paid_amount = $1, notes = COALESCE($2, notes), updated_at = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, paidAmount, notes, time.Now(), id)
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

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
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

func (r *bookingRepository) Stats(ctx context.Context, monthlySince time.Time) (*domain.BookingStats, error) {
	stats := &domain.BookingStats{RevenueByMonth: map[string]float64{}}

	countQuery := `SELECT
	                 count(*),
	                 count(*) FILTER (WHERE status = 'pending'),
	                 count(*) FILTER (WHERE status = 'confirmed'),
	                 count(*) FILTER (WHERE status = 'completed'),
	                 count(*) FILTER (WHERE status = 'cancelled'),
	                 COALESCE(sum(total_price) FILTER (WHERE status IN ('confirmed', 'completed')), 0)
	               FROM bookings`
	err := r.db.QueryRowContext(ctx, countQuery).Scan(
		&stats.TotalBookings, &stats.PendingBookings, &stats.ConfirmedBookings,
		&stats.CompletedBookings, &stats.CancelledBookings, &stats.TotalRevenue)
	if err != nil {
		return nil, err
	}

	monthQuery := `SELECT date_trunc('month', created_at), COALESCE(sum(total_price), 0)
	               FROM bookings
	               WHERE status IN ('confirmed', 'completed') AND created_at >= $1
	               GROUP BY 1 ORDER BY 1`
	rows, err := r.db.QueryContext(ctx, monthQuery, monthlySince)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var month time.Time
		var revenue float64
		if err := rows.Scan(&month, &revenue); err != nil {
			return nil, err
		}
		stats.RevenueByMonth[month.Format("01/2006")] = revenue
	}
	return stats, rows.Err()
}
