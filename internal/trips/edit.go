package trips

import (
	"time"

	"github.com/voyago/tripengine/internal/domain"
	"github.com/voyago/tripengine/internal/pricing"
	"github.com/voyago/tripengine/internal/remote"
)

const (
	minDurationDays = 1
	maxDurationDays = 30
)

// ActivityEdit carries a partial change to one line of the edit draft; nil
// fields are untouched. A duration type switch comes with the matching unit
// price, since hourly and daily rates differ.
type ActivityEdit struct {
	DurationType  *domain.DurationType `json:"duration_type"`
	DurationValue *int                 `json:"duration_value"`
	Quantity      *int                 `json:"quantity"`
	UnitPrice     *int64               `json:"unit_price"`
}

// EditDraft is the single mutable draft of an existing trip. Every field
// change recomputes the affected line subtotal and the grand total, so the
// displayed numbers are consistent before anything is submitted.
type EditDraft struct {
	tripID       string
	cityID       string
	startDate    time.Time
	durationDays int
	lines        []domain.SelectedActivity
}

func NewEditDraft(trip domain.Trip) *EditDraft {
	lines := make([]domain.SelectedActivity, len(trip.SelectedActivities))
	copy(lines, trip.SelectedActivities)
	for i := range lines {
		lines[i].Subtotal = pricing.LineTotal(lines[i].UnitPrice, lines[i].DurationValue, lines[i].Quantity)
	}
	return &EditDraft{
		tripID:       trip.ID,
		cityID:       trip.CityID,
		startDate:    trip.StartDate,
		durationDays: clampDurationDays(trip.DurationDays),
		lines:        lines,
	}
}

func (d *EditDraft) TripID() string {
	return d.tripID
}

func (d *EditDraft) StartDate() time.Time {
	return d.startDate
}

func (d *EditDraft) DurationDays() int {
	return d.durationDays
}

func (d *EditDraft) SetStartDate(t time.Time) {
	d.startDate = t
}

// SetDurationDays clamps to the allowed 1..30 day range.
func (d *EditDraft) SetDurationDays(days int) {
	d.durationDays = clampDurationDays(days)
}

// UpdateActivity merges fields into one line and recomputes its subtotal.
// No-op when the activity is not part of the draft.
func (d *EditDraft) UpdateActivity(activityID string, fields ActivityEdit) {
	for i := range d.lines {
		if d.lines[i].ActivityID != activityID {
			continue
		}
		if fields.DurationType != nil {
			d.lines[i].DurationType = *fields.DurationType
		}
		if fields.DurationValue != nil {
			d.lines[i].DurationValue = *fields.DurationValue
		}
		if fields.Quantity != nil {
			d.lines[i].Quantity = *fields.Quantity
		}
		if fields.UnitPrice != nil {
			d.lines[i].UnitPrice = *fields.UnitPrice
		}
		d.lines[i].Subtotal = pricing.LineTotal(d.lines[i].UnitPrice, d.lines[i].DurationValue, d.lines[i].Quantity)
		return
	}
}

// RemoveActivity drops a line from the draft entirely; the submitted list
// simply no longer contains it.
func (d *EditDraft) RemoveActivity(activityID string) {
	for i := range d.lines {
		if d.lines[i].ActivityID == activityID {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the draft's activity lines.
func (d *EditDraft) Lines() []domain.SelectedActivity {
	out := make([]domain.SelectedActivity, len(d.lines))
	copy(out, d.lines)
	return out
}

// GrandTotal is the sum of the line subtotals under the current draft state.
func (d *EditDraft) GrandTotal() int64 {
	var total int64
	for i := range d.lines {
		total += d.lines[i].Subtotal
	}
	return total
}

// Payload mirrors the create payload shape, as the update endpoint expects.
func (d *EditDraft) Payload() remote.TripPayload {
	return remote.TripPayload{
		CityID:             d.cityID,
		StartDate:          d.startDate,
		DurationDays:       d.durationDays,
		SelectedActivities: d.Lines(),
	}
}

func clampDurationDays(days int) int {
	if days < minDurationDays {
		return minDurationDays
	}
	if days > maxDurationDays {
		return maxDurationDays
	}
	return days
}
