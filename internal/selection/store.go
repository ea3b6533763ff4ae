package selection

import (
	"sync"

	"github.com/voyago/tripengine/internal/domain"
	"github.com/voyago/tripengine/internal/pricing"
)

// Selection is the traveler's chosen configuration for one activity.
type Selection struct {
	ActivityID    string              `json:"activity_id"`
	DurationType  domain.DurationType `json:"duration_type"`
	DurationValue int                 `json:"duration_value"`
	Quantity      int                 `json:"quantity"`
}

// UpdateFields carries a partial update; nil fields are left untouched.
// The store does not clamp values, callers are expected to enforce minimums.
type UpdateFields struct {
	DurationType  *domain.DurationType `json:"duration_type"`
	DurationValue *int                 `json:"duration_value"`
	Quantity      *int                 `json:"quantity"`
}

// Store holds the activity selections for the trip currently being composed.
// At most one selection exists per activity. The store is a draft: it never
// talks to the persistence API.
type Store struct {
	mu         sync.Mutex
	activities map[string]domain.Activity
	selections map[string]Selection
}

func NewStore() *Store {
	return &Store{
		activities: make(map[string]domain.Activity),
		selections: make(map[string]Selection),
	}
}

// SetActivities replaces the catalog slice the store resolves prices against
// and drops any selections, since they belong to the previous city.
func (s *Store) SetActivities(activities []domain.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activities = make(map[string]domain.Activity, len(activities))
	for _, a := range activities {
		s.activities[a.ID] = a
	}
	s.selections = make(map[string]Selection)
}

// Toggle removes the selection when present; otherwise it inserts a default
// one: hourly when the activity has an hourly rate, daily otherwise, with
// duration and quantity 1.
func (s *Store) Toggle(activityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selections[activityID]; ok {
		delete(s.selections, activityID)
		return
	}

	dt := domain.DurationDays
	if a, ok := s.activities[activityID]; ok && a.HourlyPrice > 0 {
		dt = domain.DurationHours
	}
	s.selections[activityID] = Selection{
		ActivityID:    activityID,
		DurationType:  dt,
		DurationValue: 1,
		Quantity:      1,
	}
}

// Update merges the given fields into an existing selection. It is a no-op
// when the activity is not selected.
func (s *Store) Update(activityID string, fields UpdateFields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, ok := s.selections[activityID]
	if !ok {
		return
	}
	if fields.DurationType != nil {
		sel.DurationType = *fields.DurationType
	}
	if fields.DurationValue != nil {
		sel.DurationValue = *fields.DurationValue
	}
	if fields.Quantity != nil {
		sel.Quantity = *fields.Quantity
	}
	s.selections[activityID] = sel
}

func (s *Store) IsSelected(activityID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.selections[activityID]
	return ok
}

// PriceOf returns the selection's subtotal, or 0 when the activity is not
// selected or unknown to the catalog slice.
func (s *Store) PriceOf(activityID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.priceOfLocked(activityID)
}

// TotalPrice sums the subtotals of all current selections.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for id := range s.selections {
		total += s.priceOfLocked(id)
	}
	return total
}

// Selected returns the current selections in no particular order.
func (s *Store) Selected() []Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Selection, 0, len(s.selections))
	for _, sel := range s.selections {
		out = append(out, sel)
	}
	return out
}

// Activity resolves an activity from the store's catalog slice.
func (s *Store) Activity(activityID string) (domain.Activity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activityID]
	return a, ok
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections = make(map[string]Selection)
}

func (s *Store) priceOfLocked(activityID string) int64 {
	sel, ok := s.selections[activityID]
	if !ok {
		return 0
	}
	a, ok := s.activities[activityID]
	if !ok {
		return 0
	}
	return pricing.LineTotal(a.Rate(sel.DurationType), sel.DurationValue, sel.Quantity)
}
