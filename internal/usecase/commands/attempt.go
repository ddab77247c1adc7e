package commands

import (
	"sync"

	"github.com/google/uuid"
)

// AttemptState tracks one booking attempt through its lifecycle:
// Idle → Validating → Submitting → {Accepted | Rejected | Failed}.
type AttemptState string

const (
	AttemptIdle       AttemptState = "idle"
	AttemptValidating AttemptState = "validating"
	AttemptSubmitting AttemptState = "submitting"
	AttemptAccepted   AttemptState = "accepted"
	AttemptRejected   AttemptState = "rejected"
	AttemptFailed     AttemptState = "failed"
)

// Attempt is the record of a single booking attempt. Reason is set only for
// the Rejected terminal state.
type Attempt struct {
	ID     uuid.UUID
	State  AttemptState
	Reason error
}

func newAttempt() *Attempt {
	return &Attempt{ID: uuid.New(), State: AttemptIdle}
}

// teamSlotKey identifies one team slot targeted by one user. The user id is
// part of the key: the in-flight marker serializes duplicate submissions from
// the same client, not the benign cross-user race the backend arbitrates.
type teamSlotKey struct {
	userID      string
	scheduleID  uuid.UUID
	courtNumber int
	teamNumber  int
}

// inflightSet holds the markers for attempts currently in the Submitting
// state. A marker exists only while its attempt is submitting and is released
// on every terminal outcome.
type inflightSet struct {
	mu      sync.Mutex
	markers map[teamSlotKey]struct{}
}

func newInflightSet() *inflightSet {
	return &inflightSet{markers: make(map[teamSlotKey]struct{})}
}

// tryAcquire returns false when another submission for the same tuple is
// already outstanding.
func (s *inflightSet) tryAcquire(key teamSlotKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.markers[key]; exists {
		return false
	}
	s.markers[key] = struct{}{}
	return true
}

func (s *inflightSet) release(key teamSlotKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, key)
}
