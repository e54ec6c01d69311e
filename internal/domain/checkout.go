package domain

import "time"

type CheckoutState string

const (
	// CheckoutStateOpen: vehicle is out, no trip in progress.
	CheckoutStateOpen CheckoutState = "OPEN"
	// CheckoutStateTripOpen: vehicle is out and a trip is in progress.
	CheckoutStateTripOpen CheckoutState = "TRIP_OPEN"
	// CheckoutStateClosed: vehicle devolved. Terminal.
	CheckoutStateClosed CheckoutState = "CLOSED"
)

// Checkout is one retrieval-to-return episode of a vehicle by a user.
// At most one checkout per user and one per vehicle may be active at any
// time. Checkouts are append-only history and are never deleted.
type Checkout struct {
	ID            int32      `json:"id"`
	UserID        int32      `json:"user_id"`
	VehicleID     int32      `json:"vehicle_id"`
	Vehicle       *Vehicle   `json:"vehicle,omitempty"` // Populated when fetching checkout details
	StartTime     time.Time  `json:"start_time"`
	StartOdometer float64    `json:"start_odometer"`
	StartNotes    string     `json:"start_notes,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	EndOdometer   *float64   `json:"end_odometer,omitempty"`
	EndNotes      string     `json:"end_notes,omitempty"`
	Active        bool       `json:"active"`
	Trips         []Trip     `json:"trips,omitempty"`
	CreatedOn     time.Time  `json:"created_on"`
	UpdatedOn     time.Time  `json:"updated_on"`
}

// State derives the lifecycle state. A checkout may only transition to
// CLOSED from OPEN; closing with an open trip is rejected upstream.
func (c *Checkout) State() CheckoutState {
	if !c.Active {
		return CheckoutStateClosed
	}
	for i := range c.Trips {
		if c.Trips[i].ReturnTime == nil {
			return CheckoutStateTripOpen
		}
	}
	return CheckoutStateOpen
}

// Trip is a depart/return sub-excursion within an open checkout.
// Sequence numbers are contiguous starting at 1 per checkout.
type Trip struct {
	ID             int32      `json:"id"`
	CheckoutID     int32      `json:"checkout_id"`
	Sequence       int32      `json:"sequence"`
	DepartTime     time.Time  `json:"depart_time"`
	DepartOdometer float64    `json:"depart_odometer"`
	DepartNotes    string     `json:"depart_notes,omitempty"`
	ReturnTime     *time.Time `json:"return_time,omitempty"`
	ReturnOdometer *float64   `json:"return_odometer,omitempty"`
	ReturnNotes    string     `json:"return_notes,omitempty"`
	Distance       *float64   `json:"distance,omitempty"` // return_odometer - depart_odometer, set at close
	CreatedOn      time.Time  `json:"created_on"`
}

// Open reports whether the trip has departed but not yet returned.
func (t *Trip) Open() bool {
	return t.ReturnTime == nil
}

// OdometerCorrection is the admin command for fixing checkout odometer
// readings inside the same-day edit window. Nil fields keep the stored
// value.
type OdometerCorrection struct {
	StartOdometer *float64 `json:"start_odometer,omitempty"`
	EndOdometer   *float64 `json:"end_odometer,omitempty"`
}
