// model/vehicle.go
package model

import "time"

type Vehicle struct {
	ID          int64     `json:"id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Type        string    `json:"type"`
	PricePerDay float64   `json:"price_per_day"`
	Available   bool      `json:"availability"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// VehicleFilter holds optional search predicates combined with AND.
type VehicleFilter struct {
	Type      *string
	MinPrice  *float64
	MaxPrice  *float64
	Available *bool
}

// DateRange is one booked interval of a vehicle.
type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}
