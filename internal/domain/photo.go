package domain

import "time"

type PhotoStage string

const (
	PhotoStageDepart PhotoStage = "depart"
	PhotoStageReturn PhotoStage = "return"
)

// Photo is evidence attached to a checkout. Path is the blob store key;
// CreatedOn is stored in UTC. Photos are cascade-deleted with their
// checkout and purged by the retention job after the configured window.
type Photo struct {
	ID         int32      `json:"id"`
	CheckoutID int32      `json:"checkout_id"`
	Stage      PhotoStage `json:"stage"`
	Path       string     `json:"path"`
	CreatedOn  time.Time  `json:"created_on"`
}

// PhotoDayGroup buckets one user's photos by UTC calendar day for the
// admin gallery view.
type PhotoDayGroup struct {
	Date   string  `json:"date"`
	Photos []Photo `json:"photos"`
}
