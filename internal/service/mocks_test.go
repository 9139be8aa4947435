package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpsertByEmail(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, page, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepo) ListPendingVerification(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateDocuments(ctx context.Context, id string, idCardURL, driverLicenseURL *string, status domain.VerificationStatus) error {
	return m.Called(ctx, id, idCardURL, driverLicenseURL, status).Error(0)
}

func (m *mockUserRepo) UpdateVerification(ctx context.Context, id string, status domain.VerificationStatus, notes string) error {
	return m.Called(ctx, id, status, notes).Error(0)
}

func (m *mockUserRepo) Stats(ctx context.Context) (*domain.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

type mockCarRepo struct {
	mock.Mock
}

func (m *mockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	return m.Called(ctx, car).Error(0)
}

func (m *mockCarRepo) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *mockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	return m.Called(ctx, car).Error(0)
}

func (m *mockCarRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCarRepo) List(ctx context.Context, filter domain.CarFilter) ([]domain.Car, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Car), args.Int(1), args.Error(2)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, status string, page, limit int) ([]domain.Booking, int, error) {
	args := m.Called(ctx, status, page, limit)
	return args.Get(0).([]domain.Booking), args.Int(1), args.Error(2)
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, upd *repository.BookingStatusUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockBookingRepo) UpdateCharges(ctx context.Context, id string, upd *repository.BookingChargesUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockBookingRepo) UpdatePayment(ctx context.Context, id string, paidAmount float64, notes *string) error {
	return m.Called(ctx, id, paidAmount, notes).Error(0)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingRepo) Stats(ctx context.Context, monthlySince time.Time) (*domain.BookingStats, error) {
	args := m.Called(ctx, monthlySince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingStats), args.Error(1)
}

func (m *mockBookingRepo) ListConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListActivePastEndDate(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type mockConfigRepo struct {
	mock.Mock
}

func (m *mockConfigRepo) Get(ctx context.Context, key string) (*domain.AppConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppConfig), args.Error(1)
}

func (m *mockConfigRepo) List(ctx context.Context) ([]domain.AppConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AppConfig), args.Error(1)
}

func (m *mockConfigRepo) Upsert(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

// noopNotifier satisfies NotificationService for tests that do not care
// about email side effects.
type noopNotifier struct{}

func (noopNotifier) BookingCreated(context.Context, *domain.Booking)       {}
func (noopNotifier) BookingStatusChanged(context.Context, *domain.Booking) {}
func (noopNotifier) SendPickupReminder(context.Context, *domain.Booking) error {
	return nil
}
func (noopNotifier) SendReturnReminder(context.Context, *domain.Booking) error {
	return nil
}
