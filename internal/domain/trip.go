package domain

import "time"

type TripStatus string

const (
	TripStatusPlanned    TripStatus = "PLANNED"
	TripStatusConfirmed  TripStatus = "CONFIRMED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusOngoing    TripStatus = "ONGOING"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// IsInProgress accepts both spellings the persistence API is known to return.
func (s TripStatus) IsInProgress() bool {
	return s == TripStatusInProgress || s == TripStatusOngoing
}

type DurationType string

const (
	DurationHours DurationType = "HOURS"
	DurationDays  DurationType = "DAYS"
)

// SelectedActivity is one persisted line item of a trip.
// Invariant: Subtotal = UnitPrice * DurationValue * Quantity.
type SelectedActivity struct {
	ActivityID    string       `json:"activity_id"`
	ActivityName  string       `json:"activity_name"`
	DurationType  DurationType `json:"duration_type"`
	DurationValue int          `json:"duration_value"`
	Quantity      int          `json:"quantity"`
	UnitPrice     int64        `json:"unit_price"`
	Subtotal      int64        `json:"subtotal"`
}

// Trip is owned by the remote persistence service; this process holds a cache
// of the list and replaces entries with the service's responses after writes.
type Trip struct {
	ID                 string             `json:"id"`
	CityID             string             `json:"city_id"`
	StartDate          time.Time          `json:"start_date"`
	DurationDays       int                `json:"duration_days"`
	Status             TripStatus         `json:"status"`
	SelectedActivities []SelectedActivity `json:"selected_activities"`
	TotalCost          int64              `json:"total_cost"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// EndDate is the last day of the trip: a one-day trip ends on its start date.
func (t Trip) EndDate() time.Time {
	days := t.DurationDays
	if days < 1 {
		days = 1
	}
	return t.StartDate.AddDate(0, 0, days-1)
}

type TravelerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
