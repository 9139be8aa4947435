// Package pricing holds the rental price calculations. Everything here is
// pure; persistence and validation live in the booking service.
package pricing

import (
	"math"
	"time"
)

// DepositRate is the fraction of the initial total collected as deposit.
const DepositRate = 0.30

// Days returns the rental day count for a date range: the ceiling of the
// span divided by 24 hours. A zero or negative span yields a value <= 0,
// which callers must reject.
func Days(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// Quote computes the creation-time price breakdown for a rental.
// The driver surcharge applies only when requested and the car has a
// positive per-day driver price.
func Quote(dailyPrice, priceWithDriver float64, days int, withDriver bool) (basePrice, driverPrice, totalPrice float64) {
	basePrice = dailyPrice * float64(days)
	if withDriver && priceWithDriver > 0 {
		driverPrice = priceWithDriver * float64(days)
	}
	totalPrice = basePrice + driverPrice
	return basePrice, driverPrice, totalPrice
}

// Deposit returns the deposit owed for a total price. It is computed once
// at booking creation and never recomputed when fees change.
func Deposit(totalPrice float64) float64 {
	return totalPrice * DepositRate
}

// Fees is the set of post-rental additional charges.
type Fees struct {
	Cleaning float64
	Damage   float64
	Overtime float64
	Fuel     float64
	Other    float64
}

// Sum returns the combined additional charges.
func (f Fees) Sum() float64 {
	return f.Cleaning + f.Damage + f.Overtime + f.Fuel + f.Other
}

// TotalWithFees re-derives a booking's total price from its fixed base and
// driver components plus the full fee set. Charge updates merge supplied
// fields over stored values before calling this, so repeated updates with
// identical fees are idempotent.
func TotalWithFees(basePrice, driverPrice float64, fees Fees) float64 {
	return basePrice + driverPrice + fees.Sum()
}
