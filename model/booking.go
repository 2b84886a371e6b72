// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingCompleted BookingStatus = "completed"
)

type Booking struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	VehicleID   int64         `json:"vehicle_id"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	TotalAmount float64       `json:"total_amount"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`

	// populated for presentation, not stored on the booking row
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	VehicleModel string `json:"vehicle_model,omitempty"`
}

// RentalHistory is the denormalized copy persisted alongside a confirmed
// booking. Written once, never updated.
type RentalHistory struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	VehicleID   int64     `json:"vehicle_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`

	VehicleModel string `json:"vehicle_model,omitempty"`
}
