// Package fees computes overdue fines, optionally reduced by a library
// discount.
package fees

import (
	"errors"
	"math"
)

var (
	ErrNegativeDays    = errors.New("days overdue must not be negative")
	ErrNegativeFine    = errors.New("daily fine must not be negative")
	ErrInvalidDiscount = errors.New("discount percentage must be between 0 and 100")
)

// Estimate is the result of a fine calculation.
type Estimate struct {
	DaysOverdue     int     `json:"daysOverdue"`
	DailyFine       float64 `json:"dailyFine"`
	Gross           float64 `json:"gross"`
	DiscountPercent int     `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	Total           float64 `json:"total"`
}

// Calculate computes the fine for a number of overdue days at a per-day
// rate, applying an optional percentage discount. Amounts are rounded
// to whole cents.
func Calculate(daysOverdue int, dailyFine float64, discountPercent int) (*Estimate, error) {
	if daysOverdue < 0 {
		return nil, ErrNegativeDays
	}
	if dailyFine < 0 {
		return nil, ErrNegativeFine
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, ErrInvalidDiscount
	}

	gross := roundCents(float64(daysOverdue) * dailyFine)
	discount := roundCents(gross * float64(discountPercent) / 100)

	return &Estimate{
		DaysOverdue:     daysOverdue,
		DailyFine:       dailyFine,
		Gross:           gross,
		DiscountPercent: discountPercent,
		DiscountAmount:  discount,
		Total:           roundCents(gross - discount),
	}, nil
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
