//go:build unit

package cache_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain/slot"
	"courtside/internal/infra/cache"
	"courtside/internal/infra/courtapi"
)

func slotKey(date, timeSlot string) cache.SlotKey {
	return cache.SlotKey{
		VenueID:    uuid.New(),
		Date:       date,
		TimeSlot:   timeSlot,
		ScheduleID: uuid.New(),
	}
}

func TestProjectionCache_PutAndGet(t *testing.T) {
	c := cache.NewProjectionCache()
	key := slotKey("2026-09-10", "18:00")
	courts := []slot.Court{{Number: 1, PlayerCount: 2}}

	_, ok := c.Get(key, "fp-1")
	assert.False(t, ok)

	c.Put(key, courts, nil, "fp-1")

	got, ok := c.Get(key, "fp-1")
	require.True(t, ok)
	assert.Equal(t, courts, got)
	assert.Equal(t, 1, c.Len())
}

func TestProjectionCache_GetMissesOnChangedRows(t *testing.T) {
	c := cache.NewProjectionCache()
	key := slotKey("2026-09-10", "18:00")

	c.Put(key, []slot.Court{{Number: 1}}, nil, "fp-1")

	_, ok := c.Get(key, "fp-2")
	assert.False(t, ok, "a changed booking set must force a reprojection")

	got, ok := c.Get(key, "fp-1")
	require.True(t, ok, "the stale entry stays until overwritten")
	assert.Equal(t, []slot.Court{{Number: 1}}, got)
}

func TestProjectionCache_GetMissesWhileNamesPending(t *testing.T) {
	c := cache.NewProjectionCache()
	key := slotKey("2026-09-10", "18:00")

	c.Put(key, []slot.Court{{Number: 1}}, []string{"uid-fresh"}, "fp-1")

	_, ok := c.Get(key, "fp-1")
	assert.False(t, ok, "placeholder names must be retried, not served")
}

func TestProjectionCache_Invalidate(t *testing.T) {
	c := cache.NewProjectionCache()
	key := slotKey("2026-09-10", "18:00")
	other := slotKey("2026-09-10", "19:30")

	c.Put(key, []slot.Court{{Number: 1}}, nil, "fp-1")
	c.Put(other, []slot.Court{{Number: 1}}, nil, "fp-1")

	c.Invalidate(key)

	_, ok := c.Get(key, "fp-1")
	assert.False(t, ok)
	_, ok = c.Get(other, "fp-1")
	assert.True(t, ok)
}

func TestProjectionCache_InvalidateUserDropsOnlyUnresolvedEntries(t *testing.T) {
	c := cache.NewProjectionCache()
	pending := slotKey("2026-09-10", "18:00")
	resolved := slotKey("2026-09-10", "19:30")

	c.Put(pending, []slot.Court{{Number: 1}}, []string{"uid-fresh"}, "fp-1")
	c.Put(resolved, []slot.Court{{Number: 1}}, nil, "fp-1")

	c.InvalidateUser("uid-fresh")

	assert.Equal(t, 1, c.Len(), "only the entry with the unresolved user is dropped")
	_, ok := c.Get(resolved, "fp-1")
	assert.True(t, ok, "fully resolved entry must survive")

	// Unknown users never disturb the cache.
	c.InvalidateUser("uid-stranger")
	assert.Equal(t, 1, c.Len())
}

func TestProjectionCache_Clear(t *testing.T) {
	c := cache.NewProjectionCache()
	c.Put(slotKey("2026-09-10", "18:00"), []slot.Court{{Number: 1}}, nil, "fp-1")
	c.Put(slotKey("2026-09-11", "18:00"), []slot.Court{{Number: 1}}, nil, "fp-1")

	c.Clear()

	assert.Equal(t, 0, c.Len())
}

func TestFingerprint_TracksRowIdentityAndStatus(t *testing.T) {
	rows := []courtapi.CourtBooking{
		{ID: uuid.New(), UserID: "uid-1", UserName: "Maria Santos", CourtNumber: 1, TeamNumber: 1, Status: "confirmed"},
		{ID: uuid.New(), UserID: "uid-2", UserName: "Joao Silva", CourtNumber: 1, TeamNumber: 2, Status: "confirmed"},
	}

	assert.Equal(t, cache.Fingerprint(rows), cache.Fingerprint(rows))
	assert.NotEqual(t, cache.Fingerprint(rows), cache.Fingerprint(rows[:1]), "dropped row changes the fingerprint")

	cancelled := make([]courtapi.CourtBooking, len(rows))
	copy(cancelled, rows)
	cancelled[1].Status = "cancelled"
	assert.NotEqual(t, cache.Fingerprint(rows), cache.Fingerprint(cancelled), "status flip changes the fingerprint")
}

func TestNameCache_ResolveLifecycle(t *testing.T) {
	c := cache.NewNameCache()

	_, ok := c.Lookup("uid-1")
	assert.False(t, ok)

	assert.True(t, c.StartResolve("uid-1"))
	assert.False(t, c.StartResolve("uid-1"), "duplicate fetch while pending")

	c.Complete("uid-1", "Maria Santos")

	name, ok := c.Lookup("uid-1")
	require.True(t, ok)
	assert.Equal(t, "Maria Santos", name)
	assert.False(t, c.StartResolve("uid-1"), "known names are never refetched")
}

func TestNameCache_AbandonAllowsRetry(t *testing.T) {
	c := cache.NewNameCache()

	require.True(t, c.StartResolve("uid-1"))
	c.Abandon("uid-1")

	_, ok := c.Lookup("uid-1")
	assert.False(t, ok, "abandoned resolutions cache nothing")
	assert.True(t, c.StartResolve("uid-1"), "a later render may retry")
}

func TestNameCache_Clear(t *testing.T) {
	c := cache.NewNameCache()
	c.Complete("uid-1", "Maria Santos")
	require.True(t, c.StartResolve("uid-2"))

	c.Clear()

	_, ok := c.Lookup("uid-1")
	assert.False(t, ok)
	assert.True(t, c.StartResolve("uid-2"))
}
