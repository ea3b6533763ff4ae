package domain

import "time"

type City struct {
	ID        string `json:"id"`
	CountryID string `json:"country_id"`
	Name      string `json:"name"`
}

// Activity is a bookable catalog entry. A rate of 0 means the activity is not
// offered at that granularity.
type Activity struct {
	ID          string `json:"id"`
	CityID      string `json:"city_id"`
	Name        string `json:"name"`
	HourlyPrice int64  `json:"hourly_price"`
	DailyPrice  int64  `json:"daily_price"`
}

// Rate returns the unit price for the given duration type.
func (a Activity) Rate(dt DurationType) int64 {
	if dt == DurationHours {
		return a.HourlyPrice
	}
	return a.DailyPrice
}

// AvailableDate is a departure window of a provider package.
// SpotsLeft == 0 makes the date unselectable.
type AvailableDate struct {
	ID            string    `json:"id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	SpotsLeft     int       `json:"spots_left"`
	PriceModifier float64   `json:"price_modifier"`
}

// PackageTrip is a provider package from the catalog: a base price plus the
// dated departures it can be booked on.
type PackageTrip struct {
	ID             string          `json:"id"`
	CityID         string          `json:"city_id"`
	Name           string          `json:"name"`
	BasePrice      int64           `json:"base_price"`
	AvailableDates []AvailableDate `json:"available_dates"`
}

// FirstOpenDate returns the first date with spots left, or nil.
func (p PackageTrip) FirstOpenDate() *AvailableDate {
	for i := range p.AvailableDates {
		if p.AvailableDates[i].SpotsLeft > 0 {
			return &p.AvailableDates[i]
		}
	}
	return nil
}

// DateByID returns the available date with the given id, or nil.
func (p PackageTrip) DateByID(id string) *AvailableDate {
	for i := range p.AvailableDates {
		if p.AvailableDates[i].ID == id {
			return &p.AvailableDates[i]
		}
	}
	return nil
}

// OpenDateByID returns the date with the given id, or nil when it is missing
// or sold out. Dates with zero spots left are never selectable.
func (p PackageTrip) OpenDateByID(id string) *AvailableDate {
	d := p.DateByID(id)
	if d == nil || d.SpotsLeft <= 0 {
		return nil
	}
	return d
}
