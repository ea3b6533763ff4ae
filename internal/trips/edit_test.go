package trips

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/voyago/tripengine/internal/domain"
)

func draftTrip() domain.Trip {
	return domain.Trip{
		ID:           "trip-1",
		CityID:       "city-1",
		StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		DurationDays: 5,
		Status:       domain.TripStatusPlanned,
		SelectedActivities: []domain.SelectedActivity{
			{ActivityID: "act-1", ActivityName: "Kayak tour", DurationType: domain.DurationHours, DurationValue: 1, Quantity: 1, UnitPrice: 2000, Subtotal: 2000},
			{ActivityID: "act-2", ActivityName: "Desert safari", DurationType: domain.DurationDays, DurationValue: 2, Quantity: 1, UnitPrice: 9000, Subtotal: 18000},
		},
		TotalCost: 20000,
	}
}

func TestEditDraft_UpdateActivity_RecomputesBeforeAnyNetworkCall(t *testing.T) {
	draft := NewEditDraft(draftTrip())
	before := draft.GrandTotal()
	assert.Equal(t, int64(20000), before)

	// $20 unit, quantity 1: duration 1 -> 3 moves the line from $20 to $60
	// and the grand total up by $40.
	dv := 3
	draft.UpdateActivity("act-1", ActivityEdit{DurationValue: &dv})

	lines := draft.Lines()
	assert.Equal(t, int64(6000), lines[0].Subtotal)
	assert.Equal(t, before+4000, draft.GrandTotal())
}

func TestEditDraft_UpdateActivity_DurationTypeSwitchUsesNewUnitPrice(t *testing.T) {
	draft := NewEditDraft(draftTrip())

	dt := domain.DurationDays
	unit := int64(12000)
	draft.UpdateActivity("act-1", ActivityEdit{DurationType: &dt, UnitPrice: &unit})

	lines := draft.Lines()
	assert.Equal(t, domain.DurationDays, lines[0].DurationType)
	assert.Equal(t, int64(12000), lines[0].Subtotal)
}

func TestEditDraft_UpdateActivity_UnknownIDIsNoOp(t *testing.T) {
	draft := NewEditDraft(draftTrip())

	dv := 9
	draft.UpdateActivity("act-ghost", ActivityEdit{DurationValue: &dv})

	assert.Equal(t, int64(20000), draft.GrandTotal())
}

func TestEditDraft_RemoveActivity(t *testing.T) {
	draft := NewEditDraft(draftTrip())

	draft.RemoveActivity("act-2")

	lines := draft.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, "act-1", lines[0].ActivityID)
	assert.Equal(t, int64(2000), draft.GrandTotal())

	// The removed line is absent from the submitted payload, not soft-deleted.
	payload := draft.Payload()
	assert.Len(t, payload.SelectedActivities, 1)
}

func TestEditDraft_SetDurationDays_Clamps(t *testing.T) {
	draft := NewEditDraft(draftTrip())

	draft.SetDurationDays(0)
	assert.Equal(t, 1, draft.DurationDays())

	draft.SetDurationDays(45)
	assert.Equal(t, 30, draft.DurationDays())

	draft.SetDurationDays(14)
	assert.Equal(t, 14, draft.DurationDays())
}

func TestEditDraft_Payload_MirrorsCreateShape(t *testing.T) {
	draft := NewEditDraft(draftTrip())
	newStart := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	draft.SetStartDate(newStart)
	draft.SetDurationDays(7)

	payload := draft.Payload()

	assert.Equal(t, "city-1", payload.CityID)
	assert.Equal(t, newStart, payload.StartDate)
	assert.Equal(t, 7, payload.DurationDays)
	assert.Len(t, payload.SelectedActivities, 2)
}

func TestEditDraft_NormalizesStaleSubtotals(t *testing.T) {
	trip := draftTrip()
	// A server bug or older client may have left an inconsistent subtotal.
	trip.SelectedActivities[0].Subtotal = 9999

	draft := NewEditDraft(trip)

	assert.Equal(t, int64(2000), draft.Lines()[0].Subtotal)
}
