// Package cache holds the per-session derived-view caches. Everything here is
// ephemeral process memory owned by the view-model layer; nothing is persisted
// and Clear tears the whole thing down on teardown.
package cache

import (
	"strconv"
	"strings"
	"sync"

	"courtside/internal/domain/slot"
	"courtside/internal/infra/courtapi"

	"github.com/google/uuid"
)

// SlotKey identifies one projected slot.
type SlotKey struct {
	VenueID    uuid.UUID
	Date       string
	TimeSlot   string
	ScheduleID uuid.UUID
}

// Fingerprint condenses the backend's booking rows for one slot into a
// comparison key. Two payloads with the same fingerprint project to the same
// Court[] layout, so the memoized projection can be served without
// recomputing.
func Fingerprint(rows []courtapi.CourtBooking) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row.ID.String())
		b.WriteByte('|')
		b.WriteString(row.UserID)
		b.WriteByte('|')
		b.WriteString(row.UserName)
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(row.CourtNumber))
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(row.TeamNumber))
		b.WriteByte('|')
		b.WriteString(row.Status)
		b.WriteByte('\n')
	}
	return b.String()
}

type entry struct {
	courts      []slot.Court
	unresolved  map[string]struct{}
	fingerprint string
}

// ProjectionCache memoizes the Court[] projection per slot, keyed by the
// fingerprint of the booking rows it was computed from. Invalidation is
// whole-entry: when a pending display name resolves, every entry containing
// that user is dropped and recomputed. Finer-grained patching is deliberately
// not attempted.
type ProjectionCache struct {
	mu      sync.Mutex
	entries map[SlotKey]entry
}

func NewProjectionCache() *ProjectionCache {
	return &ProjectionCache{
		entries: make(map[SlotKey]entry),
	}
}

// Get returns the memoized projection for the slot, provided the fresh payload
// carries the same fingerprint and no display-name resolution is pending.
// Anything else is a miss and the caller reprojects.
func (c *ProjectionCache) Get(key SlotKey, fingerprint string) ([]slot.Court, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.fingerprint != fingerprint || len(e.unresolved) > 0 {
		return nil, false
	}
	return e.courts, true
}

// Put stores a projection along with the user ids still showing placeholder
// names, so the entry can be dropped when any of them resolves.
func (c *ProjectionCache) Put(key SlotKey, courts []slot.Court, unresolvedUserIDs []string, fingerprint string) {
	unresolved := make(map[string]struct{}, len(unresolvedUserIDs))
	for _, id := range unresolvedUserIDs {
		unresolved[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{courts: courts, unresolved: unresolved, fingerprint: fingerprint}
}

func (c *ProjectionCache) Invalidate(key SlotKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateUser drops every entry whose projection still shows a placeholder
// for the given user. Entries with fully resolved names are untouched.
func (c *ProjectionCache) InvalidateUser(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if _, ok := e.unresolved[userID]; ok {
			delete(c.entries, key)
		}
	}
}

func (c *ProjectionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[SlotKey]entry)
}

func (c *ProjectionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
