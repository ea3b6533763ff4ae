package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voyago/tripengine/internal/domain"
)

func testActivities() []domain.Activity {
	return []domain.Activity{
		{ID: "act-1", CityID: "city-1", Name: "Kayak tour", HourlyPrice: 1000, DailyPrice: 6000},
		{ID: "act-2", CityID: "city-1", Name: "Desert safari", HourlyPrice: 0, DailyPrice: 9000},
	}
}

func TestStore_Toggle_DefaultsToHourlyWhenOffered(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())

	store.Toggle("act-1")

	selected := store.Selected()
	assert.Len(t, selected, 1)
	assert.Equal(t, domain.DurationHours, selected[0].DurationType)
	assert.Equal(t, 1, selected[0].DurationValue)
	assert.Equal(t, 1, selected[0].Quantity)
}

func TestStore_Toggle_DefaultsToDailyWithoutHourlyRate(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())

	store.Toggle("act-2")

	selected := store.Selected()
	assert.Len(t, selected, 1)
	assert.Equal(t, domain.DurationDays, selected[0].DurationType)
}

func TestStore_Toggle_OnThenOffRestoresPriorState(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())

	store.Toggle("act-1")
	store.Toggle("act-1")

	assert.False(t, store.IsSelected("act-1"))
	assert.Empty(t, store.Selected())
	assert.Equal(t, int64(0), store.PriceOf("act-1"))
	assert.Equal(t, int64(0), store.TotalPrice())
}

func TestStore_PriceOf(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())

	// $10/hr, 3 hours, 2 people -> $60.
	store.Toggle("act-1")
	dv, q := 3, 2
	store.Update("act-1", UpdateFields{DurationValue: &dv, Quantity: &q})

	assert.Equal(t, int64(6000), store.PriceOf("act-1"))
}

func TestStore_PriceOf_UsesRateMatchingDurationType(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())

	store.Toggle("act-1")
	dt := domain.DurationDays
	store.Update("act-1", UpdateFields{DurationType: &dt})

	assert.Equal(t, int64(6000), store.PriceOf("act-1"))
}

func TestStore_PriceOf_UnselectedOrUnknown(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())

	assert.Equal(t, int64(0), store.PriceOf("act-1"))

	// Selected but missing from the catalog slice.
	store.Toggle("ghost")
	assert.Equal(t, int64(0), store.PriceOf("ghost"))
}

func TestStore_Update_Idempotent(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())
	store.Toggle("act-1")

	dv, q := 4, 3
	store.Update("act-1", UpdateFields{DurationValue: &dv, Quantity: &q})
	once := store.Selected()

	store.Update("act-1", UpdateFields{DurationValue: &dv, Quantity: &q})
	twice := store.Selected()

	assert.Equal(t, once, twice)
}

func TestStore_Update_NoOpWhenNotSelected(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())

	dv := 5
	store.Update("act-1", UpdateFields{DurationValue: &dv})

	assert.False(t, store.IsSelected("act-1"))
	assert.Empty(t, store.Selected())
}

func TestStore_Update_MergesPartialFields(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())
	store.Toggle("act-1")

	q := 4
	store.Update("act-1", UpdateFields{Quantity: &q})

	selected := store.Selected()
	assert.Len(t, selected, 1)
	assert.Equal(t, 4, selected[0].Quantity)
	// Untouched fields keep their defaults.
	assert.Equal(t, domain.DurationHours, selected[0].DurationType)
	assert.Equal(t, 1, selected[0].DurationValue)
}

func TestStore_TotalPrice(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())

	store.Toggle("act-1")
	dv, q := 3, 2
	store.Update("act-1", UpdateFields{DurationValue: &dv, Quantity: &q})
	store.Toggle("act-2")

	assert.Equal(t, int64(6000+9000), store.TotalPrice())
}

func TestStore_SetActivities_DropsStaleSelections(t *testing.T) {
	store := NewStore()
	store.SetActivities(testActivities())
	store.Toggle("act-1")

	store.SetActivities([]domain.Activity{{ID: "act-9", CityID: "city-2", Name: "Museum pass", DailyPrice: 2500}})

	assert.Empty(t, store.Selected())
	assert.Equal(t, int64(0), store.TotalPrice())
}
