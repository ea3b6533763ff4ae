package trips

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/voyago/tripengine/internal/domain"
	"github.com/voyago/tripengine/internal/kafka"
	"github.com/voyago/tripengine/internal/pricing"
	"github.com/voyago/tripengine/internal/remote"
	"github.com/voyago/tripengine/internal/selection"
)

type TripUseCase interface {
	List(ctx context.Context) ([]domain.Trip, error)
	Refresh(ctx context.Context) error
	CreateFromSelection(ctx context.Context, store *selection.Store, input CreateInput) (*domain.Trip, error)
	SubmitEdit(ctx context.Context, draft *EditDraft) (*domain.Trip, error)
	StartTrip(ctx context.Context, id string) (*domain.Trip, error)
	CompleteTrip(ctx context.Context, id string) (*domain.Trip, error)
	CancelTrip(ctx context.Context, id string) (*domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	Cached(id string) (*domain.Trip, bool)
}

// RemoteAPI is the persistence service; it owns every trip.
type RemoteAPI interface {
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	CreateTrip(ctx context.Context, payload remote.TripPayload) (*domain.Trip, error)
	UpdateTrip(ctx context.Context, id string, payload remote.TripPayload) (*domain.Trip, error)
	StartTrip(ctx context.Context, id string) (*domain.Trip, error)
	CompleteTrip(ctx context.Context, id string) (*domain.Trip, error)
	CancelTrip(ctx context.Context, id string) (*domain.Trip, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

var (
	ErrNoActivities    = errors.New("no activities selected")
	ErrUnknownActivity = errors.New("selected activity is not in the catalog")
	ErrNotFound        = errors.New("trip not found")
	ErrNotCancelled    = errors.New("only cancelled trips can be deleted")
)

type CreateInput struct {
	CityID       string    `json:"city_id"`
	StartDate    time.Time `json:"start_date"`
	DurationDays int       `json:"duration_days"`
}

// Service owns the local trip list cache and funnels every write through the
// persistence API, replacing cached entries with the service's authoritative
// responses.
type Service struct {
	remote   RemoteAPI
	producer Producer
	topic    string

	mu     sync.Mutex
	trips  []domain.Trip
	loaded bool
}

func NewService(remoteAPI RemoteAPI, producer Producer, topic string) *Service {
	return &Service{remote: remoteAPI, producer: producer, topic: topic}
}

// List returns the cached trip list, fetching it on first use.
func (s *Service) List(ctx context.Context) ([]domain.Trip, error) {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Trip, len(s.trips))
	copy(out, s.trips)
	return out, nil
}

// Refresh replaces the cache with the service's current list.
func (s *Service) Refresh(ctx context.Context) error {
	trips, err := s.remote.ListTrips(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = trips
	s.loaded = true
	return nil
}

// SilentRefresh reconciles server-side derived fields after a write. Errors
// are swallowed so background reconciliation never surfaces a banner; the
// previously known-good list stays displayed.
func (s *Service) SilentRefresh(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		log.Printf("silent trip refresh failed: %v", err)
	}
}

// Cached returns the cached trip with the given id.
func (s *Service) Cached(id string) (*domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trips {
		if s.trips[i].ID == id {
			cp := s.trips[i]
			return &cp, true
		}
	}
	return nil, false
}

// CreateFromSelection submits the selection store's current draft as a new
// planned trip. Validation happens before any network call.
func (s *Service) CreateFromSelection(ctx context.Context, store *selection.Store, input CreateInput) (*domain.Trip, error) {
	selections := store.Selected()
	if len(selections) == 0 {
		return nil, ErrNoActivities
	}

	lines := make([]domain.SelectedActivity, 0, len(selections))
	for _, sel := range selections {
		activity, ok := store.Activity(sel.ActivityID)
		if !ok {
			return nil, ErrUnknownActivity
		}
		unit := activity.Rate(sel.DurationType)
		lines = append(lines, domain.SelectedActivity{
			ActivityID:    sel.ActivityID,
			ActivityName:  activity.Name,
			DurationType:  sel.DurationType,
			DurationValue: sel.DurationValue,
			Quantity:      sel.Quantity,
			UnitPrice:     unit,
			Subtotal:      pricing.LineTotal(unit, sel.DurationValue, sel.Quantity),
		})
	}

	trip, err := s.remote.CreateTrip(ctx, remote.TripPayload{
		CityID:             input.CityID,
		StartDate:          input.StartDate,
		DurationDays:       clampDurationDays(input.DurationDays),
		SelectedActivities: lines,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.trips = append(s.trips, *trip)
	s.mu.Unlock()

	store.Clear()
	s.publish(ctx, "trip_created", trip)
	return trip, nil
}

// SubmitEdit pushes an edit draft to the persistence service, swaps the
// cached trip for the authoritative response and kicks off a silent refresh
// to pick up any server-side recomputation.
func (s *Service) SubmitEdit(ctx context.Context, draft *EditDraft) (*domain.Trip, error) {
	trip, err := s.remote.UpdateTrip(ctx, draft.TripID(), draft.Payload())
	if err != nil {
		return nil, err
	}

	s.replaceCached(*trip)
	s.SilentRefresh(ctx)
	s.publish(ctx, "trip_updated", trip)
	return trip, nil
}

// StartTrip transitions a trip to its in-progress state after the user
// confirmed the start prompt.
func (s *Service) StartTrip(ctx context.Context, id string) (*domain.Trip, error) {
	trip, err := s.remote.StartTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	s.replaceCached(*trip)
	s.publish(ctx, "trip_started", trip)
	return trip, nil
}

// CompleteTrip transitions a trip to COMPLETED after the user confirmed the
// complete prompt. Declining is not a service operation: the UI redirects to
// the edit flow and no status is written.
func (s *Service) CompleteTrip(ctx context.Context, id string) (*domain.Trip, error) {
	trip, err := s.remote.CompleteTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	s.replaceCached(*trip)
	s.publish(ctx, "trip_completed", trip)
	return trip, nil
}

func (s *Service) CancelTrip(ctx context.Context, id string) (*domain.Trip, error) {
	trip, err := s.remote.CancelTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	s.replaceCached(*trip)
	s.publish(ctx, "trip_cancelled", trip)
	return trip, nil
}

// DeleteTrip removes a cancelled trip. The persistence API has no hard
// delete, so this re-issues the cancel and drops the trip from the cache.
func (s *Service) DeleteTrip(ctx context.Context, id string) error {
	if cached, ok := s.Cached(id); ok && cached.Status != domain.TripStatusCancelled {
		return ErrNotCancelled
	}

	if _, err := s.remote.CancelTrip(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.trips {
		if s.trips[i].ID == id {
			s.trips = append(s.trips[:i], s.trips[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.publish(ctx, "trip_deleted", &domain.Trip{ID: id})
	return nil
}

func (s *Service) replaceCached(trip domain.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trips {
		if s.trips[i].ID == trip.ID {
			s.trips[i] = trip
			return
		}
	}
	s.trips = append(s.trips, trip)
}

func (s *Service) publish(ctx context.Context, eventType string, trip *domain.Trip) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.TripEvent{
		Type:       eventType,
		TripID:     trip.ID,
		CityID:     trip.CityID,
		Status:     string(trip.Status),
		TotalCost:  trip.TotalCost,
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.topic, trip.ID, event); err != nil {
		log.Printf("publish %s event for trip %s: %v", eventType, trip.ID, err)
	}
}

var _ TripUseCase = (*Service)(nil)
