package repository

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// UpsertByEmail creates the user or, when the email already exists,
	// overwrites name, password hash and admin flag (setup wizard re-runs).
	UpsertByEmail(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page, limit int) ([]domain.User, int, error)
	ListPendingVerification(ctx context.Context) ([]domain.User, error)
	UpdateDocuments(ctx context.Context, id string, idCardURL, driverLicenseURL *string, status domain.VerificationStatus) error
	UpdateVerification(ctx context.Context, id string, status domain.VerificationStatus, notes string) error
	Stats(ctx context.Context) (*domain.UserStats, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.CarFilter) ([]domain.Car, int, error)
}

// BookingStatusUpdate carries a status change plus the timestamps the
// transition stamps. Nil fields are left untouched by the UPDATE.
type BookingStatusUpdate struct {
	Status           domain.BookingStatus
	VerifiedAt       *time.Time
	ConfirmedAt      *time.Time
	DeliveredAt      *time.Time
	DeliveryDate     *time.Time
	DeliveryNotes    *string
	CompletedAt      *time.Time
	ActualReturnDate *time.Time
	ReturnNotes      *string
}

// BookingChargesUpdate carries the full merged fee set and the re-derived
// total so fees and total are persisted in a single UPDATE.
type BookingChargesUpdate struct {
	CleaningFee float64
	DamageFee   float64
	OvertimeFee float64
	FuelFee     float64
	OtherFees   float64
	FeesNotes   *string
	TotalPrice  float64
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, status string, page, limit int) ([]domain.Booking, int, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, upd *BookingStatusUpdate) error
	UpdateCharges(ctx context.Context, id string, upd *BookingChargesUpdate) error
	UpdatePayment(ctx context.Context, id string, paidAmount float64, notes *string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, monthlySince time.Time) (*domain.BookingStats, error)

	// Reminder queries for the cron jobs. Both embed the car name.
	ListConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
	ListActivePastEndDate(ctx context.Context, asOf time.Time) ([]domain.Booking, error)
}

type AppConfigRepository interface {
	Get(ctx context.Context, key string) (*domain.AppConfig, error)
	List(ctx context.Context) ([]domain.AppConfig, error)
	Upsert(ctx context.Context, key, value string) error
}
