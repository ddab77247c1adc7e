//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain/slot"
	"courtside/internal/infra/cache"
	"courtside/internal/infra/courtapi"
	"courtside/internal/pkg/clock"
	"courtside/internal/pkg/errs"
	"courtside/internal/usecase/queries"
	"courtside/tests/common/builder"
)

type fakeSlotGateway struct {
	venues       []courtapi.Venue
	slots        []courtapi.AvailableSlot
	slotsErr     error
	userBookings []courtapi.CourtBooking
	profiles     map[string]courtapi.UserProfile
	profileErr   error

	getUserCalls []string
}

func (g *fakeSlotGateway) GetVenues(_ context.Context) ([]courtapi.Venue, error) {
	return g.venues, nil
}

func (g *fakeSlotGateway) GetAvailableSlots(_ context.Context, _ uuid.UUID, _, _ string) ([]courtapi.AvailableSlot, error) {
	return g.slots, g.slotsErr
}

func (g *fakeSlotGateway) GetUserBookings(_ context.Context, _, _, _ string) ([]courtapi.CourtBooking, error) {
	return g.userBookings, nil
}

func (g *fakeSlotGateway) GetUser(_ context.Context, userID string) (courtapi.UserProfile, error) {
	g.getUserCalls = append(g.getUserCalls, userID)
	if g.profileErr != nil {
		return courtapi.UserProfile{}, g.profileErr
	}
	return g.profiles[userID], nil
}

type queryFixture struct {
	gateway     *fakeSlotGateway
	projections *cache.ProjectionCache
	names       *cache.NameCache
	queries     queries.AvailabilityQueries
}

func newQueryFixture(gw *fakeSlotGateway) *queryFixture {
	projections := cache.NewProjectionCache()
	names := cache.NewNameCache()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))
	return &queryFixture{
		gateway:     gw,
		projections: projections,
		names:       names,
		queries:     queries.NewAvailabilityQueries(gw, projections, names, clk, time.UTC, logger),
	}
}

func TestVenues(t *testing.T) {
	venueID := uuid.New()
	f := newQueryFixture(&fakeSlotGateway{
		venues: []courtapi.Venue{{ID: venueID, Name: "Riverside Padel"}},
	})

	views, err := f.queries.Venues(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, venueID, views[0].ID)
	assert.Equal(t, "Riverside Padel", views[0].Name)
}

func TestSearch_RangeValidation(t *testing.T) {
	f := newQueryFixture(&fakeSlotGateway{})

	tests := []struct {
		name      string
		venueID   uuid.UUID
		startDate string
		endDate   string
	}{
		{name: "nil venue", venueID: uuid.Nil, startDate: "2026-09-10", endDate: "2026-09-10"},
		{name: "bad start date", venueID: uuid.New(), startDate: "10-09-2026", endDate: "2026-09-10"},
		{name: "bad end date", venueID: uuid.New(), startDate: "2026-09-10", endDate: "soon"},
		{name: "end before start", venueID: uuid.New(), startDate: "2026-09-12", endDate: "2026-09-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.queries.Search(context.Background(), "uid-actor", tt.venueID, tt.startDate, tt.endDate)
			assert.ErrorIs(t, err, errs.ErrInvalidSearchRange)
		})
	}
}

func TestSearch_ProjectsSlotView(t *testing.T) {
	sb := builder.NewSlotBuilder().With(func(s *builder.SlotBuilder) {
		s.TotalCourts = 2
		s.WithBooking("uid-a", "Ana", 1, 1)
		s.WithBooking("uid-b", "Ben", 1, 1)
		s.WithBooking("uid-c", "Cia", 1, 2)
		s.WithBooking("uid-d", "Dan", 1, 2)
	})
	f := newQueryFixture(&fakeSlotGateway{slots: []courtapi.AvailableSlot{sb.BuildWire()}})

	views, err := f.queries.Search(context.Background(), "uid-a", sb.VenueID, sb.Date, sb.Date)

	require.NoError(t, err)
	require.Len(t, views, 1)
	view := views[0]
	assert.Equal(t, sb.ScheduleID, view.ScheduleID)
	assert.Equal(t, 1, view.AvailableCourts)
	assert.True(t, view.IsBookedByUser)
	require.Len(t, view.Courts, 2)
	assert.True(t, view.Courts[0].IsBooked)
	assert.Equal(t, 4, view.Courts[0].PlayerCount)
	assert.Equal(t, "Ana, Ben, Cia, Dan", view.Courts[0].PlayerSummary)
	assert.False(t, view.Courts[1].IsBooked)

	// The fresh projection lands in the cache under the slot identity and
	// the fingerprint of the rows it was computed from.
	key := cache.SlotKey{VenueID: sb.VenueID, Date: sb.Date, TimeSlot: sb.TimeSlot, ScheduleID: sb.ScheduleID}
	_, cached := f.projections.Get(key, cache.Fingerprint(f.gateway.slots[0].Bookings))
	assert.True(t, cached)
}

func TestSearch_ServesMemoizedProjectionWhileRowsUnchanged(t *testing.T) {
	sb := builder.NewSlotBuilder().With(func(s *builder.SlotBuilder) {
		s.WithBooking("uid-a", "Ana", 1, 1)
	})
	ws := sb.BuildWire()
	f := newQueryFixture(&fakeSlotGateway{slots: []courtapi.AvailableSlot{ws}})

	// Seed the cache with a marker projection under the payload's own
	// fingerprint. If the read path works, the search serves the marker
	// instead of reprojecting the single-player payload.
	key := cache.SlotKey{VenueID: sb.VenueID, Date: sb.Date, TimeSlot: sb.TimeSlot, ScheduleID: sb.ScheduleID}
	marker := []slot.Court{{
		Number:      1,
		IsBooked:    true,
		PlayerCount: 4,
		MaxPlayers:  4,
		Teams: [2]slot.Team{
			{Number: 1, Players: []slot.Player{{Name: "Ana", UserID: "uid-a"}, {Name: "Ben", UserID: "uid-b"}}},
			{Number: 2, Players: []slot.Player{{Name: "Cia", UserID: "uid-c"}, {Name: "Dan", UserID: "uid-d"}}},
		},
	}}
	f.projections.Put(key, marker, nil, cache.Fingerprint(ws.Bookings))

	views, err := f.queries.Search(context.Background(), "uid-a", sb.VenueID, sb.Date, sb.Date)

	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Courts, len(marker))
	assert.Equal(t, 4, views[0].Courts[0].PlayerCount, "the memoized projection must be served, not recomputed")

	// A changed booking set carries a new fingerprint and forces a
	// reprojection from the fresh payload.
	sb.WithBooking("uid-b", "Ben", 1, 2)
	f.gateway.slots = []courtapi.AvailableSlot{sb.BuildWire()}

	views, err = f.queries.Search(context.Background(), "uid-a", sb.VenueID, sb.Date, sb.Date)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 2, views[0].Courts[0].PlayerCount, "a changed booking set must be reprojected")
}

func TestSearch_IsBookedByUserFalseForStranger(t *testing.T) {
	sb := builder.NewSlotBuilder().With(func(s *builder.SlotBuilder) {
		s.WithBooking("uid-a", "Ana", 1, 1)
	})
	f := newQueryFixture(&fakeSlotGateway{slots: []courtapi.AvailableSlot{sb.BuildWire()}})

	views, err := f.queries.Search(context.Background(), "uid-stranger", sb.VenueID, sb.Date, sb.Date)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].IsBookedByUser)
}

func TestSearch_ResolvesMissingNamesOnce(t *testing.T) {
	sb := builder.NewSlotBuilder().With(func(s *builder.SlotBuilder) {
		s.WithBooking("uid-fresh", "", 1, 1)
		s.WithBooking("uid-a", "Ana", 1, 2)
	})
	gw := &fakeSlotGateway{
		slots:    []courtapi.AvailableSlot{sb.BuildWire()},
		profiles: map[string]courtapi.UserProfile{"uid-fresh": {DisplayName: "Fresh Face"}},
	}
	f := newQueryFixture(gw)

	views, err := f.queries.Search(context.Background(), "uid-actor", sb.VenueID, sb.Date, sb.Date)
	require.NoError(t, err)

	// The name resolved during this pass, so the view already shows it and
	// the teammate's resolved name is untouched.
	team1 := views[0].Courts[0].Teams[0]
	team2 := views[0].Courts[0].Teams[1]
	require.Len(t, team1.Players, 1)
	assert.Equal(t, "Fresh Face", team1.Players[0].Name)
	require.Len(t, team2.Players, 1)
	assert.Equal(t, "Ana", team2.Players[0].Name)

	// A second search serves the name from the cache without refetching.
	_, err = f.queries.Search(context.Background(), "uid-actor", sb.VenueID, sb.Date, sb.Date)
	require.NoError(t, err)
	assert.Equal(t, []string{"uid-fresh"}, gw.getUserCalls)
}

func TestSearch_FailedNameResolutionShowsPlaceholder(t *testing.T) {
	sb := builder.NewSlotBuilder().With(func(s *builder.SlotBuilder) {
		s.WithBooking("uid-fresh", "", 1, 1)
	})
	gw := &fakeSlotGateway{
		slots:      []courtapi.AvailableSlot{sb.BuildWire()},
		profileErr: courtapi.GatewayError{Kind: courtapi.KindTransient},
	}
	f := newQueryFixture(gw)

	views, err := f.queries.Search(context.Background(), "uid-actor", sb.VenueID, sb.Date, sb.Date)
	require.NoError(t, err)

	players := views[0].Courts[0].Teams[0].Players
	require.Len(t, players, 1)
	assert.Equal(t, slot.PlaceholderName, players[0].Name)

	// The failed fetch is abandoned, so the next search retries it.
	gw.profileErr = nil
	gw.profiles = map[string]courtapi.UserProfile{"uid-fresh": {DisplayName: "Fresh Face"}}
	views, err = f.queries.Search(context.Background(), "uid-actor", sb.VenueID, sb.Date, sb.Date)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Face", views[0].Courts[0].Teams[0].Players[0].Name)
	assert.Equal(t, []string{"uid-fresh", "uid-fresh"}, gw.getUserCalls)
}

func TestSearch_EmptyProfileFallsBackToUnknownPlayer(t *testing.T) {
	sb := builder.NewSlotBuilder().With(func(s *builder.SlotBuilder) {
		s.WithBooking("uid-ghost", "", 1, 1)
	})
	gw := &fakeSlotGateway{
		slots:    []courtapi.AvailableSlot{sb.BuildWire()},
		profiles: map[string]courtapi.UserProfile{},
	}
	f := newQueryFixture(gw)

	views, err := f.queries.Search(context.Background(), "uid-actor", sb.VenueID, sb.Date, sb.Date)
	require.NoError(t, err)

	players := views[0].Courts[0].Teams[0].Players
	require.Len(t, players, 1)
	assert.Equal(t, slot.UnknownPlayerName, players[0].Name)
}

func TestMyBookings_ComputesCanCancel(t *testing.T) {
	// Fixture clock reads 12:00 on 2026-09-10.
	cancellable := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.BookingDate = "2026-09-10"
		b.TimeSlot = "18:00"
	})
	tooLate := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.BookingDate = "2026-09-10"
		b.TimeSlot = "13:30"
	})
	f := newQueryFixture(&fakeSlotGateway{
		userBookings: []courtapi.CourtBooking{cancellable.BuildWire(), tooLate.BuildWire()},
	})

	views, err := f.queries.MyBookings(context.Background(), "uid-player-1", "2026-09-10", "2026-09-10")

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].CanCancel)
	assert.Equal(t, "18:00", views[0].TimeSlot)
	assert.False(t, views[1].CanCancel)
}

func TestMyBookings_Validation(t *testing.T) {
	f := newQueryFixture(&fakeSlotGateway{})

	_, err := f.queries.MyBookings(context.Background(), "", "2026-09-10", "2026-09-10")
	assert.ErrorIs(t, err, errs.ErrInvalidSearchRange)

	_, err = f.queries.MyBookings(context.Background(), "uid-player-1", "bad", "2026-09-10")
	assert.ErrorIs(t, err, errs.ErrInvalidSearchRange)
}

func TestMyBookings_SkipsMalformedRows(t *testing.T) {
	good := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.BookingDate = "2026-09-10"
		b.TimeSlot = "18:00"
	})
	bad := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.BookingDate = "not-a-date"
	})
	f := newQueryFixture(&fakeSlotGateway{
		userBookings: []courtapi.CourtBooking{bad.BuildWire(), good.BuildWire()},
	})

	views, err := f.queries.MyBookings(context.Background(), "uid-player-1", "2026-09-10", "2026-09-10")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, good.ID, views[0].ID)
}
