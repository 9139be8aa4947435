package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/pricing"
	"carrental-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	carRepo     repository.CarRepository
	notifier    NotificationService
}

func NewBookingService(bookingRepo repository.BookingRepository, carRepo repository.CarRepository, notifier NotificationService) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		notifier:    notifier,
	}
}

// parseBookingDate accepts the client's ISO datetime strings as well as
// plain dates.
func parseBookingDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, in *CreateBookingInput) (*domain.Booking, error) {
	car, err := s.carRepo.GetByID(ctx, in.CarID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	start, err := parseBookingDate(in.StartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end, err := parseBookingDate(in.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	days := pricing.Days(start, end)
	if days < 1 {
		return nil, ErrInvalidDateRange
	}

	basePrice, driverPrice, totalPrice := pricing.Quote(car.DailyPrice, car.PriceWithDriver, days, in.WithDriver)

	booking := &domain.Booking{
		CarID:         in.CarID,
		UserID:        userID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		StartDate:     start,
		EndDate:       end,
		WithDriver:    in.WithDriver,
		BasePrice:     basePrice,
		DriverPrice:   driverPrice,
		TotalPrice:    totalPrice,
		DepositAmount: pricing.Deposit(totalPrice),
		PaidAmount:    0,
		Notes:         in.Notes,
		Status:        domain.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	booking.Car = car
	booking.CarName = car.Name
	s.notifier.BookingCreated(ctx, booking)

	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, status string, page, limit int) ([]domain.Booking, int, error) {
	if status != "" && !domain.ValidBookingStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.bookingRepo.List(ctx, status, page, limit)
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *bookingService) GetBooking(ctx context.Context, id, requesterID string, requesterIsAdmin bool) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !requesterIsAdmin && booking.UserID != requesterID {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id, status, notes string) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, ErrInvalidStatus
	}

	// Any of the eight statuses is accepted regardless of the current one;
	// only the transitions below stamp timestamps.
	upd := &repository.BookingStatusUpdate{Status: domain.BookingStatus(status)}
	now := time.Now()
	switch upd.Status {
	case domain.BookingStatusVerified:
		upd.VerifiedAt = &now
	case domain.BookingStatusConfirmed:
		upd.ConfirmedAt = &now
	case domain.BookingStatusDelivered:
		upd.DeliveredAt = &now
		upd.DeliveryDate = &now
		if notes != "" {
			upd.DeliveryNotes = &notes
		}
	case domain.BookingStatusCompleted:
		upd.CompletedAt = &now
		upd.ActualReturnDate = &now
		if notes != "" {
			upd.ReturnNotes = &notes
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.BookingStatusChanged(ctx, booking)
	return booking, nil
}

func (s *bookingService) UpdateCharges(ctx context.Context, id string, in *ChargesInput) (*domain.Booking, error) {
	for _, fee := range []*float64{in.CleaningFee, in.DamageFee, in.OvertimeFee, in.FuelFee, in.OtherFees} {
		if fee != nil && *fee < 0 {
			return nil, ErrNegativeFee
		}
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Merge supplied fees over the stored ones, then re-derive the total
	// from the full set. Repeating a call with identical fees is a no-op.
	fees := pricing.Fees{
		Cleaning: booking.CleaningFee,
		Damage:   booking.DamageFee,
		Overtime: booking.OvertimeFee,
		Fuel:     booking.FuelFee,
		Other:    booking.OtherFees,
	}
	if in.CleaningFee != nil {
		fees.Cleaning = *in.CleaningFee
	}
	if in.DamageFee != nil {
		fees.Damage = *in.DamageFee
	}
	if in.OvertimeFee != nil {
		fees.Overtime = *in.OvertimeFee
	}
	if in.FuelFee != nil {
		fees.Fuel = *in.FuelFee
	}
	if in.OtherFees != nil {
		fees.Other = *in.OtherFees
	}

	upd := &repository.BookingChargesUpdate{
		CleaningFee: fees.Cleaning,
		DamageFee:   fees.Damage,
		OvertimeFee: fees.Overtime,
		FuelFee:     fees.Fuel,
		OtherFees:   fees.Other,
		FeesNotes:   in.FeesNotes,
		TotalPrice:  pricing.TotalWithFees(booking.BasePrice, booking.DriverPrice, fees),
	}
	if err := s.bookingRepo.UpdateCharges(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) UpdatePayment(ctx context.Context, id string, paidAmount float64, paymentNotes string) (*domain.Booking, error) {
	var notes *string
	if paymentNotes != "" {
		notes = &paymentNotes
	}
	if err := s.bookingRepo.UpdatePayment(ctx, id, paidAmount, notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *bookingService) GetStats(ctx context.Context) (*domain.BookingStats, error) {
	return s.bookingRepo.Stats(ctx, time.Now().AddDate(0, -6, 0))
}
