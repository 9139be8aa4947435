package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBookingService(bookingRepo *mockBookingRepo, carRepo *mockCarRepo) BookingService {
	return NewBookingService(bookingRepo, carRepo, noopNotifier{})
}

func TestCreateBooking_PricesFixedAtCreation(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	carRepo := new(mockCarRepo)
	svc := newBookingService(bookingRepo, carRepo)

	car := &domain.Car{ID: "car-1", Name: "Avanza", DailyPrice: 500000, PriceWithDriver: 200000}
	carRepo.On("GetByID", mock.Anything, "car-1").Return(car, nil)
	bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	booking, err := svc.CreateBooking(context.Background(), "user-1", &CreateBookingInput{
		CarID:         "car-1",
		StartDate:     "2026-09-01",
		EndDate:       "2026-09-04",
		WithDriver:    true,
		CustomerName:  "Budi",
		CustomerEmail: "budi@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, float64(1500000), booking.BasePrice)
	assert.Equal(t, float64(600000), booking.DriverPrice)
	assert.Equal(t, float64(2100000), booking.TotalPrice)
	assert.Equal(t, float64(630000), booking.DepositAmount)
	assert.Equal(t, float64(0), booking.PaidAmount)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "Avanza", booking.CarName)
	bookingRepo.AssertExpectations(t)
	carRepo.AssertExpectations(t)
}

func TestCreateBooking_PartialDayRoundsUp(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	carRepo := new(mockCarRepo)
	svc := newBookingService(bookingRepo, carRepo)

	car := &domain.Car{ID: "car-1", Name: "Jazz", DailyPrice: 400000}
	carRepo.On("GetByID", mock.Anything, "car-1").Return(car, nil)
	bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	// 36 hours charges two days.
	booking, err := svc.CreateBooking(context.Background(), "user-1", &CreateBookingInput{
		CarID:     "car-1",
		StartDate: "2026-09-01T08:00:00Z",
		EndDate:   "2026-09-02T20:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(800000), booking.BasePrice)
	assert.Equal(t, float64(0), booking.DriverPrice)
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	carRepo := new(mockCarRepo)
	svc := newBookingService(bookingRepo, carRepo)

	carRepo.On("GetByID", mock.Anything, "car-1").Return(&domain.Car{ID: "car-1"}, nil)

	_, err := svc.CreateBooking(context.Background(), "user-1", &CreateBookingInput{
		CarID:     "car-1",
		StartDate: "2026-09-04",
		EndDate:   "2026-09-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_CarNotFound(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	carRepo := new(mockCarRepo)
	svc := newBookingService(bookingRepo, carRepo)

	carRepo.On("GetByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

	_, err := svc.CreateBooking(context.Background(), "user-1", &CreateBookingInput{
		CarID:     "missing",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-04",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newBookingService(bookingRepo, new(mockCarRepo))

	_, err := svc.UpdateStatus(context.Background(), "b-1", "teleported", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_DeliveredStampsDeliveryFields(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newBookingService(bookingRepo, new(mockCarRepo))

	bookingRepo.On("UpdateStatus", mock.Anything, "b-1", mock.MatchedBy(func(upd *repository.BookingStatusUpdate) bool {
		return upd.Status == domain.BookingStatusDelivered &&
			upd.DeliveredAt != nil && upd.DeliveryDate != nil &&
			upd.DeliveryNotes != nil && *upd.DeliveryNotes == "keys in the glovebox" &&
			upd.CompletedAt == nil && upd.VerifiedAt == nil
	})).Return(nil)
	bookingRepo.On("GetByID", mock.Anything, "b-1").
		Return(&domain.Booking{ID: "b-1", Status: domain.BookingStatusDelivered}, nil)

	booking, err := svc.UpdateStatus(context.Background(), "b-1", "delivered", "keys in the glovebox")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusDelivered, booking.Status)
	bookingRepo.AssertExpectations(t)
}

func TestUpdateStatus_CompletedStampsReturnFields(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newBookingService(bookingRepo, new(mockCarRepo))

	bookingRepo.On("UpdateStatus", mock.Anything, "b-1", mock.MatchedBy(func(upd *repository.BookingStatusUpdate) bool {
		return upd.Status == domain.BookingStatusCompleted &&
			upd.CompletedAt != nil && upd.ActualReturnDate != nil &&
			upd.ReturnNotes == nil
	})).Return(nil)
	bookingRepo.On("GetByID", mock.Anything, "b-1").
		Return(&domain.Booking{ID: "b-1", Status: domain.BookingStatusCompleted}, nil)

	_, err := svc.UpdateStatus(context.Background(), "b-1", "completed", "")
	require.NoError(t, err)
	bookingRepo.AssertExpectations(t)
}

func TestUpdateCharges_MergesOverStoredFees(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newBookingService(bookingRepo, new(mockCarRepo))

	stored := &domain.Booking{
		ID:          "b-1",
		BasePrice:   1500000,
		DriverPrice: 600000,
		CleaningFee: 50000,
		TotalPrice:  2150000,
	}
	bookingRepo.On("GetByID", mock.Anything, "b-1").Return(stored, nil)

	damage := float64(100000)
	bookingRepo.On("UpdateCharges", mock.Anything, "b-1", mock.MatchedBy(func(upd *repository.BookingChargesUpdate) bool {
		// The untouched cleaning fee survives and the total covers both fees.
		return upd.CleaningFee == 50000 && upd.DamageFee == 100000 &&
			upd.TotalPrice == 2250000
	})).Return(nil)

	_, err := svc.UpdateCharges(context.Background(), "b-1", &ChargesInput{DamageFee: &damage})
	require.NoError(t, err)
	bookingRepo.AssertExpectations(t)
}

func TestUpdateCharges_RepeatWithSameFeesIsStable(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newBookingService(bookingRepo, new(mockCarRepo))

	stored := &domain.Booking{
		ID:          "b-1",
		BasePrice:   1000000,
		CleaningFee: 50000,
		DamageFee:   100000,
		TotalPrice:  1150000,
	}
	bookingRepo.On("GetByID", mock.Anything, "b-1").Return(stored, nil)

	cleaning, dmg := float64(50000), float64(100000)
	bookingRepo.On("UpdateCharges", mock.Anything, "b-1", mock.MatchedBy(func(upd *repository.BookingChargesUpdate) bool {
		return upd.TotalPrice == stored.TotalPrice
	})).Return(nil)

	_, err := svc.UpdateCharges(context.Background(), "b-1", &ChargesInput{
		CleaningFee: &cleaning,
		DamageFee:   &dmg,
	})
	require.NoError(t, err)
	bookingRepo.AssertExpectations(t)
}

func TestUpdateCharges_RejectsNegativeFee(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newBookingService(bookingRepo, new(mockCarRepo))

	cleaning := float64(-900000)
	_, err := svc.UpdateCharges(context.Background(), "b-1", &ChargesInput{CleaningFee: &cleaning})
	assert.ErrorIs(t, err, ErrNegativeFee)
	bookingRepo.AssertNotCalled(t, "UpdateCharges", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBooking_OwnerAndAdminAccess(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newBookingService(bookingRepo, new(mockCarRepo))

	booking := &domain.Booking{ID: "b-1", UserID: "owner"}
	bookingRepo.On("GetByID", mock.Anything, "b-1").Return(booking, nil)

	_, err := svc.GetBooking(context.Background(), "b-1", "owner", false)
	assert.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), "b-1", "someone-else", false)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetBooking(context.Background(), "b-1", "someone-else", true)
	assert.NoError(t, err)
}

func TestUpdatePayment_OverwritesPaidAmount(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newBookingService(bookingRepo, new(mockCarRepo))

	bookingRepo.On("UpdatePayment", mock.Anything, "b-1", float64(630000), (*string)(nil)).Return(nil)
	bookingRepo.On("GetByID", mock.Anything, "b-1").
		Return(&domain.Booking{ID: "b-1", PaidAmount: 630000}, nil)

	booking, err := svc.UpdatePayment(context.Background(), "b-1", 630000, "")
	require.NoError(t, err)
	assert.Equal(t, float64(630000), booking.PaidAmount)
	bookingRepo.AssertExpectations(t)
}

func TestGetStats_UsesSixMonthWindow(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newBookingService(bookingRepo, new(mockCarRepo))

	bookingRepo.On("Stats", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return time.Since(since) > 5*30*24*time.Hour
	})).Return(&domain.BookingStats{TotalBookings: 3}, nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBookings)
}
