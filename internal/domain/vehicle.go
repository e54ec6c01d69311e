package domain

import "time"

// Vehicle is a fleet vehicle available for checkout. CurrentOdometer is
// the last known reading in kilometers, updated when a checkout closes.
// Deleting a vehicle only clears the Active flag; history is preserved.
type Vehicle struct {
	ID              int32     `json:"id"`
	Plate           string    `json:"plate"`
	Make            string    `json:"make"`
	Model           string    `json:"model"`
	Year            int32     `json:"year"`
	CurrentOdometer float64   `json:"current_odometer"`
	Active          bool      `json:"active"`
	CreatedOn       time.Time `json:"created_on"`
}
