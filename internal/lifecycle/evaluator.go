package lifecycle

import (
	"sync"
	"time"

	"github.com/voyago/tripengine/internal/domain"
)

type PromptKind string

const (
	PromptStart    PromptKind = "start"
	PromptComplete PromptKind = "complete"
)

// Prompt asks the user to confirm a date-driven status change for one trip.
type Prompt struct {
	TripID string      `json:"trip_id"`
	Kind   PromptKind  `json:"kind"`
	Trip   domain.Trip `json:"trip"`
}

// ShouldPromptStart reports whether a planned trip starts today. The
// comparison is date-only; time of day never matters.
func ShouldPromptStart(trip domain.Trip, today time.Time) bool {
	return trip.Status == domain.TripStatusPlanned && sameDay(trip.StartDate, today)
}

// ShouldPromptComplete reports whether a trip's end date has passed. Planned
// trips qualify too: a trip the user never confirmed as started still needs
// closing out once its window is over.
func ShouldPromptComplete(trip domain.Trip, today time.Time) bool {
	if !trip.Status.IsInProgress() && trip.Status != domain.TripStatusPlanned {
		return false
	}
	return dateOnly(today).After(dateOnly(trip.EndDate()))
}

type promptKey struct {
	tripID string
	kind   PromptKind
}

// Evaluator scans the cached trip list and decides which single prompt, if
// any, to surface. Each (trip, kind) pair fires at most once per evaluator
// lifetime; the set survives list refreshes and is dropped only with the
// session itself.
type Evaluator struct {
	mu        sync.Mutex
	now       func() time.Time
	dismissed map[promptKey]struct{}
}

type EvaluatorOption func(*Evaluator)

func WithClock(now func() time.Time) EvaluatorOption {
	return func(e *Evaluator) {
		e.now = now
	}
}

func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		now:       time.Now,
		dismissed: make(map[promptKey]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scan walks the list in order and returns the first prompt that is due and
// not yet shown, or nil. Cancelled trips are skipped entirely and the
// complete rule wins over the start rule for the same trip. The returned
// prompt is recorded as shown so a re-scan never repeats it.
func (e *Evaluator) Scan(trips []domain.Trip) *Prompt {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.now()
	for _, trip := range trips {
		if trip.Status == domain.TripStatusCancelled {
			continue
		}
		if ShouldPromptComplete(trip, today) {
			if p := e.takeLocked(trip, PromptComplete); p != nil {
				return p
			}
			continue
		}
		if ShouldPromptStart(trip, today) {
			if p := e.takeLocked(trip, PromptStart); p != nil {
				return p
			}
		}
	}
	return nil
}

// Dismiss records a pair without scanning, for prompts the user closed
// client-side.
func (e *Evaluator) Dismiss(tripID string, kind PromptKind) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.dismissed[promptKey{tripID: tripID, kind: kind}] = struct{}{}
}

func (e *Evaluator) takeLocked(trip domain.Trip, kind PromptKind) *Prompt {
	key := promptKey{tripID: trip.ID, kind: kind}
	if _, seen := e.dismissed[key]; seen {
		return nil
	}
	e.dismissed[key] = struct{}{}
	return &Prompt{TripID: trip.ID, Kind: kind, Trip: trip}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
