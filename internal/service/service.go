package service

import (
	"context"
	"errors"

	"carrental-backend/internal/domain"
)

// Sentinel errors mapped to HTTP statuses by the REST layer.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrForbidden             = errors.New("forbidden")
	ErrSelfDeletion          = errors.New("cannot delete your own account")
	ErrInvalidDateRange      = errors.New("end date must be after start date")
	ErrInvalidStatus         = errors.New("invalid status value")
	ErrNegativeFee           = errors.New("fees must be non-negative")
	ErrRejectionNoteRequired = errors.New("rejection reason is required")
	ErrUnknownSettingKey     = errors.New("unknown setting key")
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	// Login returns the authenticated user and a signed session token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetCurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

type CarService interface {
	ListCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, int, error)
	GetCar(ctx context.Context, id string) (*domain.Car, error)
	CreateCar(ctx context.Context, car *domain.Car) error
	UpdateCar(ctx context.Context, car *domain.Car) error
	DeleteCar(ctx context.Context, id string) error
}

// CreateBookingInput is the authenticated booking request; the user ID is
// always taken from the session, never from the payload.
type CreateBookingInput struct {
	CarID         string
	StartDate     string
	EndDate       string
	WithDriver    bool
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// ChargesInput is a partial fee update; nil fields keep their stored values.
type ChargesInput struct {
	CleaningFee *float64
	DamageFee   *float64
	OvertimeFee *float64
	FuelFee     *float64
	OtherFees   *float64
	FeesNotes   *string
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, in *CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, status string, page, limit int) ([]domain.Booking, int, error)
	ListMyBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id, requesterID string, requesterIsAdmin bool) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id, status, notes string) (*domain.Booking, error)
	UpdateCharges(ctx context.Context, id string, in *ChargesInput) (*domain.Booking, error)
	UpdatePayment(ctx context.Context, id string, paidAmount float64, paymentNotes string) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*domain.BookingStats, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, phone, address string) (*domain.User, error)
	// UploadDocuments records the stored document URLs and moves the user
	// to pending review. Nil URLs keep previously uploaded documents.
	UploadDocuments(ctx context.Context, userID string, idCardURL, driverLicenseURL *string) (*domain.User, error)
	SetVerification(ctx context.Context, userID string, status domain.VerificationStatus, note string) (*domain.User, error)

	ListUsers(ctx context.Context, page, limit int) ([]domain.User, int, error)
	ListPendingVerification(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, email, name, password string, isAdmin bool) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, email, name, password *string, isAdmin *bool) (*domain.User, error)
	DeleteUser(ctx context.Context, id, requesterID string) error
	GetStats(ctx context.Context) (*domain.UserStats, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (map[string]string, error)
	// UpdateSettings upserts each supplied key; keys outside the known
	// settings whitelist are rejected.
	UpdateSettings(ctx context.Context, values map[string]string) error
	GetSetting(ctx context.Context, key string) (*domain.AppConfig, error)
	IsConfigured(ctx context.Context) (bool, error)
}

// SetupInput is the first-run provisioning payload.
type SetupInput struct {
	AppURL        string
	ServerPort    int
	ClientPort    int
	DBMode        string // "local" or "external"
	DBHost        string
	DBPort        int
	DBName        string
	DBUser        string
	DBPassword    string
	DBSSLMode     string
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// SetupStatus is what GET /api/setup reports: the configured flag and the
// saved non-secret configuration.
type SetupStatus struct {
	Configured bool
	AppURL     string
	ServerPort int
	ClientPort int
	DBMode     string
}

// TestDBInput carries candidate database credentials for the setup wizard's
// connection test.
type TestDBInput struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

type SetupService interface {
	Status(ctx context.Context) (*SetupStatus, error)
	Run(ctx context.Context, in *SetupInput) error
	TestDatabase(ctx context.Context, in *TestDBInput) error
}

// EmailSender delivers a single message through a provider backend.
type EmailSender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// NotificationService sends best-effort customer emails; failures are
// logged, never surfaced to the request that triggered them.
type NotificationService interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
	BookingStatusChanged(ctx context.Context, booking *domain.Booking)
	SendPickupReminder(ctx context.Context, booking *domain.Booking) error
	SendReturnReminder(ctx context.Context, booking *domain.Booking) error
}
