package domain

import "time"

type ReportGranularity string

const (
	GranularityDay   ReportGranularity = "day"
	GranularityWeek  ReportGranularity = "week" // ISO week numbering
	GranularityMonth ReportGranularity = "month"
)

type UsageEventKind string

const (
	UsageEventCheckout UsageEventKind = "checkout"
	UsageEventTrip     UsageEventKind = "trip"
)

// UsageEvent is one distance-producing record read from the ledger: a
// closed checkout (end minus start odometer) or a closed trip. Checkout
// deltas and trip deltas are both counted, matching the system of record.
// When is the checkout's end time or the trip's depart time.
type UsageEvent struct {
	Kind      UsageEventKind `json:"kind"`
	VehicleID int32          `json:"vehicle_id"`
	UserID    int32          `json:"user_id"`
	Distance  float64        `json:"distance"`
	When      time.Time      `json:"when"`
}

// VehicleUsage summarizes one vehicle over a report range.
type VehicleUsage struct {
	VehicleID   int32   `json:"vehicle_id"`
	Plate       string  `json:"plate"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	TotalKM     float64 `json:"total_km"`
	Events      int32   `json:"events"`
	AvgPerEvent float64 `json:"avg_km_per_event"`
	AvgPerDay   float64 `json:"avg_km_per_day"`
}

// UserUsage summarizes one driver over a report range.
type UserUsage struct {
	UserID      int32   `json:"user_id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	TotalKM     float64 `json:"total_km"`
	Events      int32   `json:"events"`
	AvgPerEvent float64 `json:"avg_km_per_event"`
	AvgPerDay   float64 `json:"avg_km_per_day"`
}

// PeriodBucket is one day/ISO-week/month grouping of usage events.
type PeriodBucket struct {
	Key      string  `json:"key"`
	TotalKM  float64 `json:"total_km"`
	Events   int32   `json:"events"`
	Vehicles int32   `json:"vehicles"` // distinct vehicles in the bucket
	Users    int32   `json:"users"`    // distinct drivers in the bucket
}

// PeriodReport is the full aggregation for one requested range.
type PeriodReport struct {
	Start       string            `json:"start"` // yyyy-mm-dd, local reporting timezone
	End         string            `json:"end"`
	Days        int               `json:"days"` // calendar days in range, always >= 1
	Granularity ReportGranularity `json:"granularity"`
	TotalKM     float64           `json:"total_km"`
	Events      int32             `json:"events"`
	AvgPerEvent float64           `json:"avg_km_per_event"`
	AvgPerDay   float64           `json:"avg_km_per_day"`
	Vehicles    []VehicleUsage    `json:"vehicles"`
	Users       []UserUsage       `json:"users"`
	Buckets     []PeriodBucket    `json:"buckets"` // descending by key
	Series      []PeriodBucket    `json:"series"`  // ascending, for charting
}

// VehicleQuickSummary is the rolling km summary shown on the admin
// dashboard: fixed today/week/month/total windows per vehicle.
type VehicleQuickSummary struct {
	VehicleID int32   `json:"vehicle_id"`
	Plate     string  `json:"plate"`
	Make      string  `json:"make"`
	Model     string  `json:"model"`
	KMToday   float64 `json:"km_today"`
	KMWeek    float64 `json:"km_week"`
	KMMonth   float64 `json:"km_month"`
	KMTotal   float64 `json:"km_total"`
}

// UserVehicleDetail is one vehicle block inside a user detail report,
// with the raw checkout and trip lines that produced the totals.
type UserVehicleDetail struct {
	VehicleID int32      `json:"vehicle_id"`
	Plate     string     `json:"plate"`
	Make      string     `json:"make"`
	Model     string     `json:"model"`
	TotalKM   float64    `json:"total_km"`
	Events    int32      `json:"events"`
	Checkouts []Checkout `json:"checkouts"`
}

// UserDetailReport is the drill-down report for one driver.
type UserDetailReport struct {
	UserID   int32               `json:"user_id"`
	Code     string              `json:"code"`
	Name     string              `json:"name"`
	TotalKM  float64             `json:"total_km"`
	Events   int32               `json:"events"`
	Vehicles []UserVehicleDetail `json:"vehicles"`
}
