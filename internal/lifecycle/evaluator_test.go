package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/voyago/tripengine/internal/domain"
)

var today = time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() func() time.Time {
	return func() time.Time { return today }
}

func plannedTrip(id string, start time.Time, days int) domain.Trip {
	return domain.Trip{
		ID:           id,
		CityID:       "city-1",
		StartDate:    start,
		DurationDays: days,
		Status:       domain.TripStatusPlanned,
	}
}

func TestShouldPromptStart(t *testing.T) {
	trip := plannedTrip("trip-1", today, 3)

	assert.True(t, ShouldPromptStart(trip, today))
	// Time of day is irrelevant.
	assert.True(t, ShouldPromptStart(trip, today.Add(14*time.Hour)))
	assert.False(t, ShouldPromptStart(trip, today.AddDate(0, 0, -1)))
	assert.False(t, ShouldPromptStart(trip, today.AddDate(0, 0, 1)))
}

func TestShouldPromptStart_OnlyForPlannedTrips(t *testing.T) {
	for _, status := range []domain.TripStatus{
		domain.TripStatusConfirmed,
		domain.TripStatusInProgress,
		domain.TripStatusOngoing,
		domain.TripStatusCompleted,
		domain.TripStatusCancelled,
	} {
		trip := plannedTrip("trip-1", today, 3)
		trip.Status = status
		assert.False(t, ShouldPromptStart(trip, today), "status %s", status)
	}
}

func TestShouldPromptComplete(t *testing.T) {
	// Three-day trip that ended yesterday.
	trip := plannedTrip("trip-1", today.AddDate(0, 0, -3), 3)
	trip.Status = domain.TripStatusOngoing

	assert.True(t, ShouldPromptComplete(trip, today))

	// Last trip day: not over yet.
	current := plannedTrip("trip-2", today.AddDate(0, 0, -2), 3)
	current.Status = domain.TripStatusInProgress
	assert.False(t, ShouldPromptComplete(current, today))
}

func TestShouldPromptComplete_Statuses(t *testing.T) {
	ended := plannedTrip("trip-1", today.AddDate(0, 0, -5), 2)

	for _, status := range []domain.TripStatus{
		domain.TripStatusPlanned,
		domain.TripStatusOngoing,
		domain.TripStatusInProgress,
	} {
		ended.Status = status
		assert.True(t, ShouldPromptComplete(ended, today), "status %s", status)
	}

	for _, status := range []domain.TripStatus{
		domain.TripStatusConfirmed,
		domain.TripStatusCompleted,
		domain.TripStatusCancelled,
	} {
		ended.Status = status
		assert.False(t, ShouldPromptComplete(ended, today), "status %s", status)
	}
}

func TestEvaluator_Scan_CompleteWinsOverStart(t *testing.T) {
	e := NewEvaluator(WithClock(fixedClock()))

	// A zero-length edge: planned trip that started and ended before today,
	// and another planned trip starting today.
	overdue := plannedTrip("trip-overdue", today.AddDate(0, 0, -4), 2)
	startingToday := plannedTrip("trip-today", today, 3)

	prompt := e.Scan([]domain.Trip{startingToday, overdue})

	assert.NotNil(t, prompt)
	assert.Equal(t, "trip-today", prompt.TripID)
	assert.Equal(t, PromptStart, prompt.Kind)

	// Same trip matching both rules: complete takes priority.
	both := plannedTrip("trip-both", today.AddDate(0, 0, -1), 1)
	bothPrompt := NewEvaluator(WithClock(fixedClock())).Scan([]domain.Trip{both})
	assert.NotNil(t, bothPrompt)
	assert.Equal(t, PromptComplete, bothPrompt.Kind)
}

func TestEvaluator_Scan_AtMostOnePromptPerPass(t *testing.T) {
	e := NewEvaluator(WithClock(fixedClock()))

	first := plannedTrip("trip-1", today, 2)
	second := plannedTrip("trip-2", today, 5)

	prompt := e.Scan([]domain.Trip{first, second})
	assert.NotNil(t, prompt)
	assert.Equal(t, "trip-1", prompt.TripID)

	// The second trip is only surfaced on the next pass.
	next := e.Scan([]domain.Trip{first, second})
	assert.NotNil(t, next)
	assert.Equal(t, "trip-2", next.TripID)
}

func TestEvaluator_Scan_SkipsCancelledTrips(t *testing.T) {
	e := NewEvaluator(WithClock(fixedClock()))

	cancelled := plannedTrip("trip-1", today, 2)
	cancelled.Status = domain.TripStatusCancelled

	assert.Nil(t, e.Scan([]domain.Trip{cancelled}))
}

func TestEvaluator_Scan_NeverRepeatsAShownPrompt(t *testing.T) {
	e := NewEvaluator(WithClock(fixedClock()))

	trips := []domain.Trip{plannedTrip("trip-1", today, 2)}

	assert.NotNil(t, e.Scan(trips))
	// Re-fetching the same list does not re-arm the prompt.
	assert.Nil(t, e.Scan(trips))
	assert.Nil(t, e.Scan(trips))
}

func TestEvaluator_Dismiss(t *testing.T) {
	e := NewEvaluator(WithClock(fixedClock()))

	e.Dismiss("trip-1", PromptStart)

	assert.Nil(t, e.Scan([]domain.Trip{plannedTrip("trip-1", today, 2)}))
}

func TestEvaluator_Scan_StartConfirmedTripStopsPrompting(t *testing.T) {
	e := NewEvaluator(WithClock(fixedClock()))

	trip := plannedTrip("trip-1", today, 3)
	prompt := e.Scan([]domain.Trip{trip})
	assert.NotNil(t, prompt)
	assert.Equal(t, PromptStart, prompt.Kind)

	// After the user confirms, the cache holds the ongoing variant.
	trip.Status = domain.TripStatusOngoing
	assert.Nil(t, e.Scan([]domain.Trip{trip}))
	assert.False(t, ShouldPromptStart(trip, today))
}
