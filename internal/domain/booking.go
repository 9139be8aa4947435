package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusVerified  BookingStatus = "verified"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDelivered BookingStatus = "delivered"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusReturning BookingStatus = "returning"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is one of the eight booking statuses.
// The status endpoint accepts any of them regardless of the current status;
// the client is the one offering only the canonical next step.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusVerified, BookingStatusConfirmed,
		BookingStatusDelivered, BookingStatusActive, BookingStatusReturning,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID            string  `json:"id"`
	CarID         string  `json:"carId"`
	UserID        string  `json:"userId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`

	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	WithDriver bool      `json:"withDriver"`

	// Price breakdown. BasePrice and DriverPrice are fixed at creation;
	// TotalPrice is re-derived whenever fees change.
	BasePrice     float64 `json:"basePrice"`
	DriverPrice   float64 `json:"driverPrice"`
	CleaningFee   float64 `json:"cleaningFee"`
	DamageFee     float64 `json:"damageFee"`
	OvertimeFee   float64 `json:"overtimeFee"`
	FuelFee       float64 `json:"fuelFee"`
	OtherFees     float64 `json:"otherFees"`
	FeesNotes     string  `json:"feesNotes,omitempty"`
	TotalPrice    float64 `json:"totalPrice"`
	DepositAmount float64 `json:"depositAmount"`
	PaidAmount    float64 `json:"paidAmount"`

	Notes  string        `json:"notes,omitempty"`
	Status BookingStatus `json:"status"`

	VerifiedAt       *time.Time `json:"verifiedAt,omitempty"`
	ConfirmedAt      *time.Time `json:"confirmedAt,omitempty"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`
	DeliveryDate     *time.Time `json:"deliveryDate,omitempty"`
	DeliveryNotes    string     `json:"deliveryNotes,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	ActualReturnDate *time.Time `json:"actualReturnDate,omitempty"`
	ReturnNotes      string     `json:"returnNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated on reads that join related rows
	CarName string       `json:"carName,omitempty"`
	Car     *Car         `json:"car,omitempty"`
	User    *UserSummary `json:"user,omitempty"`
}

// UserSummary is the slim user shape embedded in booking list responses
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingStats aggregates booking counts and revenue for the admin dashboard.
// Revenue counts confirmed and completed bookings only.
type BookingStats struct {
	TotalBookings     int                `json:"totalBookings"`
	PendingBookings   int                `json:"pendingBookings"`
	ConfirmedBookings int                `json:"confirmedBookings"`
	CompletedBookings int                `json:"completedBookings"`
	CancelledBookings int                `json:"cancelledBookings"`
	TotalRevenue      float64            `json:"totalRevenue"`
	RevenueByMonth    map[string]float64 `json:"revenueByMonth"`
}
