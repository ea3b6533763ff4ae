package booking

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voyago/tripengine/internal/domain"
	"github.com/voyago/tripengine/internal/kafka"
	"github.com/voyago/tripengine/internal/pricing"
)

type Catalog interface {
	PackageByID(ctx context.Context, id string) (*domain.PackageTrip, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

var (
	ErrNoActiveSession = errors.New("no active booking session")
	ErrDateUnavailable = errors.New("selected date is no longer available")
)

// InProgress is the single mutable draft of the provider-package booking flow.
type InProgress struct {
	PackageID      string              `json:"package_id"`
	SelectedDateID string              `json:"selected_date_id"`
	Travelers      int                 `json:"travelers"`
	TravelerInfo   domain.TravelerInfo `json:"traveler_info"`
	Price          pricing.Breakdown   `json:"price"`
}

// BookedTrip is the record produced when a session completes.
type BookedTrip struct {
	ID               string              `json:"id"`
	PackageID        string              `json:"package_id"`
	PackageName      string              `json:"package_name"`
	ConfirmationCode string              `json:"confirmation_code"`
	DateID           string              `json:"date_id"`
	Travelers        int                 `json:"travelers"`
	TravelerInfo     domain.TravelerInfo `json:"traveler_info"`
	Price            pricing.Breakdown   `json:"price"`
	BookedAt         time.Time           `json:"booked_at"`
}

// UpdateFields carries a partial session update; nil fields are untouched.
type UpdateFields struct {
	SelectedDateID *string `json:"selected_date_id"`
	Travelers      *int    `json:"travelers"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
}

// Session owns the one in-progress package booking allowed per user session,
// plus the collection of completed bookings.
type Session struct {
	mu       sync.Mutex
	catalog  Catalog
	producer Producer
	topic    string
	now      func() time.Time

	active *InProgress
	pkg    *domain.PackageTrip
	booked []BookedTrip
}

type SessionOption func(*Session)

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

func NewSession(catalog Catalog, producer Producer, topic string, opts ...SessionOption) *Session {
	s := &Session{
		catalog:  catalog,
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a session for the given package, overwriting any prior one.
// A package with no open dates is silently skipped: the UI never offered a
// booking button for it, so there is nothing to report.
func (s *Session) Start(ctx context.Context, packageID string) (*InProgress, error) {
	pkg, err := s.catalog.PackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	date := pkg.FirstOpenDate()
	if date == nil {
		return nil, nil
	}

	price, err := pricing.Calculate(pkg.BasePrice, date.PriceModifier, 1)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pkg = pkg
	s.active = &InProgress{
		PackageID:      pkg.ID,
		SelectedDateID: date.ID,
		Travelers:      1,
		Price:          price,
	}
	return s.snapshotLocked(), nil
}

// Update merges fields into the active session. The price breakdown is only
// recomputed when the traveler count or the selected date changed; contact
// info edits leave it alone. A rejected update (sold-out date, invalid
// traveler count) leaves the session exactly as it was.
func (s *Session) Update(fields UpdateFields) (*InProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, nil
	}

	next := *s.active
	reprice := false
	if fields.SelectedDateID != nil && *fields.SelectedDateID != next.SelectedDateID {
		if s.pkg.OpenDateByID(*fields.SelectedDateID) == nil {
			return nil, ErrDateUnavailable
		}
		next.SelectedDateID = *fields.SelectedDateID
		reprice = true
	}
	if fields.Travelers != nil && *fields.Travelers != next.Travelers {
		next.Travelers = *fields.Travelers
		reprice = true
	}
	if fields.Name != nil {
		next.TravelerInfo.Name = *fields.Name
	}
	if fields.Email != nil {
		next.TravelerInfo.Email = *fields.Email
	}
	if fields.Phone != nil {
		next.TravelerInfo.Phone = *fields.Phone
	}

	if reprice {
		date := s.pkg.OpenDateByID(next.SelectedDateID)
		if date == nil {
			return nil, ErrDateUnavailable
		}
		price, err := pricing.Calculate(s.pkg.BasePrice, date.PriceModifier, next.Travelers)
		if err != nil {
			return nil, err
		}
		next.Price = price
	}

	s.active = &next
	return s.snapshotLocked(), nil
}

// Clear discards the active session, keeping completed bookings.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil
	s.pkg = nil
}

// Complete turns the active session into a booked-trip record, appends it to
// the booked collection and discards the session.
func (s *Session) Complete(ctx context.Context) (*BookedTrip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoActiveSession
	}
	date := s.pkg.OpenDateByID(s.active.SelectedDateID)
	if date == nil {
		return nil, ErrDateUnavailable
	}

	booked := BookedTrip{
		ID:               uuid.NewString(),
		PackageID:        s.pkg.ID,
		PackageName:      s.pkg.Name,
		ConfirmationCode: newConfirmationCode(),
		DateID:           date.ID,
		Travelers:        s.active.Travelers,
		TravelerInfo:     s.active.TravelerInfo,
		Price:            s.active.Price,
		BookedAt:         s.now(),
	}
	s.booked = append(s.booked, booked)
	s.active = nil
	s.pkg = nil

	if s.producer != nil && s.topic != "" {
		event := kafka.TripEvent{
			Type:             "package_booked",
			TripID:           booked.ID,
			PackageID:        booked.PackageID,
			TotalCost:        booked.Price.Total,
			ConfirmationCode: booked.ConfirmationCode,
			Email:            booked.TravelerInfo.Email,
			OccurredAt:       booked.BookedAt,
		}
		if err := s.producer.Publish(ctx, s.topic, booked.ID, event); err != nil {
			log.Printf("publish package_booked event for %s: %v", booked.ID, err)
		}
	}
	return &booked, nil
}

// Active returns a copy of the in-progress session, or nil when idle.
func (s *Session) Active() *InProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Booked returns the completed bookings in order of completion.
func (s *Session) Booked() []BookedTrip {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]BookedTrip, len(s.booked))
	copy(out, s.booked)
	return out
}

func (s *Session) snapshotLocked() *InProgress {
	if s.active == nil {
		return nil
	}
	cp := *s.active
	return &cp
}

const confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newConfirmationCode returns a code of the form TP-XXXXXX.
func newConfirmationCode() string {
	var b [6]byte
	_, _ = rand.Read(b[:])
	for i := range b {
		b[i] = confirmationAlphabet[int(b[i])%len(confirmationAlphabet)]
	}
	return "TP-" + string(b[:])
}
