package queries

import (
	"context"
	"log/slog"
	"time"

	"courtside/internal/domain/booking"
	"courtside/internal/domain/slot"
	"courtside/internal/infra/cache"
	"courtside/internal/infra/courtapi"
	"courtside/internal/pkg/clock"
	"courtside/internal/pkg/errs"

	"github.com/google/uuid"
)

// SlotGateway is the read side of the booking backend contract.
type SlotGateway interface {
	GetVenues(ctx context.Context) ([]courtapi.Venue, error)
	GetAvailableSlots(ctx context.Context, venueID uuid.UUID, startDate, endDate string) ([]courtapi.AvailableSlot, error)
	GetUserBookings(ctx context.Context, userID, startDate, endDate string) ([]courtapi.CourtBooking, error)
	GetUser(ctx context.Context, userID string) (courtapi.UserProfile, error)
}

type AvailabilityQueries interface {
	Venues(ctx context.Context) ([]VenueView, error)
	Search(ctx context.Context, actorUID string, venueID uuid.UUID, startDate, endDate string) ([]SlotView, error)
	MyBookings(ctx context.Context, actorUID, startDate, endDate string) ([]BookingView, error)
}

type availabilityQueriesImpl struct {
	gateway     SlotGateway
	projections *cache.ProjectionCache
	names       *cache.NameCache
	clock       clock.Clock
	venueLoc    *time.Location
	logger      *slog.Logger
}

func NewAvailabilityQueries(
	gateway SlotGateway,
	projections *cache.ProjectionCache,
	names *cache.NameCache,
	clk clock.Clock,
	venueLoc *time.Location,
	logger *slog.Logger,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		gateway:     gateway,
		projections: projections,
		names:       names,
		clock:       clk,
		venueLoc:    venueLoc,
		logger:      logger,
	}
}

func (q *availabilityQueriesImpl) Venues(ctx context.Context) ([]VenueView, error) {
	venues, err := q.gateway.GetVenues(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]VenueView, len(venues))
	for i, v := range venues {
		views[i] = VenueView{ID: v.ID, Name: v.Name}
	}
	return views, nil
}

func (q *availabilityQueriesImpl) Search(ctx context.Context, actorUID string, venueID uuid.UUID, startDate, endDate string) ([]SlotView, error) {
	if err := validateRange(venueID, startDate, endDate); err != nil {
		return nil, err
	}

	wireSlots, err := q.gateway.GetAvailableSlots(ctx, venueID, startDate, endDate)
	if err != nil {
		return nil, errs.Wrap(err, "failed to fetch available slots")
	}

	views := make([]SlotView, 0, len(wireSlots))
	for _, ws := range wireSlots {
		view, buildErr := q.buildSlotView(ctx, actorUID, ws)
		if buildErr != nil {
			return nil, buildErr
		}
		views = append(views, view)
	}
	return views, nil
}

func (q *availabilityQueriesImpl) MyBookings(ctx context.Context, actorUID, startDate, endDate string) ([]BookingView, error) {
	if actorUID == "" {
		return nil, errs.ErrInvalidSearchRange
	}
	if _, err := booking.NewGameDate(startDate); err != nil {
		return nil, errs.ErrInvalidSearchRange
	}
	if _, err := booking.NewGameDate(endDate); err != nil {
		return nil, errs.ErrInvalidSearchRange
	}

	rows, err := q.gateway.GetUserBookings(ctx, actorUID, startDate, endDate)
	if err != nil {
		return nil, errs.Wrap(err, "failed to fetch user bookings")
	}

	now := q.clock.Now()
	views := make([]BookingView, 0, len(rows))
	for _, row := range rows {
		b, convErr := reconstructWireBooking(row)
		if convErr != nil {
			q.logger.Warn("skipping malformed booking row", "booking_id", row.ID, "error", convErr)
			continue
		}
		views = append(views, BookingView{
			ID:           b.ID(),
			ScheduleID:   b.ScheduleID(),
			VenueID:      b.VenueID(),
			Date:         b.Date().String(),
			TimeSlot:     b.TimeSlot().String(),
			GameDuration: b.GameDuration(),
			CourtNumber:  b.CourtNumber(),
			TeamNumber:   b.TeamNumber(),
			Status:       b.Status().String(),
			CanCancel:    b.CanCancelAt(now, q.venueLoc),
		})
	}
	return views, nil
}

// buildSlotView projects one wire slot into its court view, memoizing the
// projection per slot identity. When the fetched booking rows carry the same
// fingerprint as the cached entry, the memoized Court[] is served and the
// reconstruction plus reprojection is skipped entirely.
func (q *availabilityQueriesImpl) buildSlotView(ctx context.Context, actorUID string, ws courtapi.AvailableSlot) (SlotView, error) {
	date, err := booking.NewGameDate(ws.Date)
	if err != nil {
		return SlotView{}, errs.Mark(err, errs.ErrDomainValidation)
	}
	timeSlot, err := booking.NewTimeOfDay(ws.TimeSlot)
	if err != nil {
		return SlotView{}, errs.Mark(err, errs.ErrDomainValidation)
	}
	sched, err := slot.NewSchedule(ws.ScheduleID, ws.VenueID, date, timeSlot, ws.GameDuration, ws.TotalCourts)
	if err != nil {
		return SlotView{}, errs.Mark(err, errs.ErrDomainValidation)
	}

	key := cache.SlotKey{
		VenueID:    ws.VenueID,
		Date:       ws.Date,
		TimeSlot:   ws.TimeSlot,
		ScheduleID: ws.ScheduleID,
	}
	fingerprint := cache.Fingerprint(ws.Bookings)

	courts, hit := q.projections.Get(key, fingerprint)
	if !hit {
		bookings, unresolved := q.reconstructBookings(ctx, ws)
		courts = slot.Project(sched, bookings, q.logger)
		q.projections.Put(key, courts, unresolved, fingerprint)
	}

	return SlotView{
		ScheduleID:      ws.ScheduleID,
		VenueID:         ws.VenueID,
		Date:            ws.Date,
		TimeSlot:        ws.TimeSlot,
		GameDuration:    ws.GameDuration,
		TotalCourts:     ws.TotalCourts,
		Courts:          courtViews(courts),
		AvailableCourts: slot.AvailableCourtCount(courts),
		IsBookedByUser:  slotHasPlayer(courts, actorUID),
	}, nil
}

// slotHasPlayer reports whether the actor holds a seat anywhere on the slot.
func slotHasPlayer(courts []slot.Court, userID string) bool {
	for i := range courts {
		if courts[i].HasPlayer(userID) {
			return true
		}
	}
	return false
}

// reconstructBookings converts wire bookings into domain entities, resolving
// missing display names through the name cache. Users whose names are still
// in flight keep the placeholder; their ids are reported so the cached
// projection can be dropped once the name arrives.
func (q *availabilityQueriesImpl) reconstructBookings(ctx context.Context, ws courtapi.AvailableSlot) ([]*booking.Booking, []string) {
	bookings := make([]*booking.Booking, 0, len(ws.Bookings))
	var unresolved []string

	for _, row := range ws.Bookings {
		name := row.UserName
		if name == "" {
			var resolvedNow bool
			name, resolvedNow = q.resolveName(ctx, row.UserID)
			if !resolvedNow {
				unresolved = append(unresolved, row.UserID)
			}
		}

		row.UserName = name
		b, err := reconstructWireBooking(row)
		if err != nil {
			q.logger.Warn("skipping malformed booking row", "booking_id", row.ID, "error", err)
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, unresolved
}

// resolveName returns the display name for a user id and whether it is final.
// Duplicate in-flight resolutions are suppressed by the pending set; callers
// seeing the placeholder will get the real name on the next recompute.
func (q *availabilityQueriesImpl) resolveName(ctx context.Context, userID string) (string, bool) {
	if name, ok := q.names.Lookup(userID); ok {
		return name, true
	}
	if !q.names.StartResolve(userID) {
		return slot.PlaceholderName, false
	}

	profile, err := q.gateway.GetUser(ctx, userID)
	if err != nil {
		q.names.Abandon(userID)
		q.logger.Warn("display name resolution failed", "user_id", userID, "error", err)
		return slot.PlaceholderName, false
	}

	name := profile.BestName(slot.UnknownPlayerName)
	q.names.Complete(userID, name)
	q.projections.InvalidateUser(userID)
	return name, true
}

func validateRange(venueID uuid.UUID, startDate, endDate string) error {
	if venueID == uuid.Nil {
		return errs.ErrInvalidSearchRange
	}
	start, err := booking.NewGameDate(startDate)
	if err != nil {
		return errs.ErrInvalidSearchRange
	}
	end, err := booking.NewGameDate(endDate)
	if err != nil {
		return errs.ErrInvalidSearchRange
	}
	if end.String() < start.String() {
		return errs.ErrInvalidSearchRange
	}
	return nil
}

func courtViews(courts []slot.Court) []CourtView {
	views := make([]CourtView, len(courts))
	for i := range courts {
		c := &courts[i]
		teams := make([]TeamView, len(c.Teams))
		for j, t := range c.Teams {
			players := make([]PlayerView, len(t.Players))
			for k, p := range t.Players {
				players[k] = PlayerView{Name: p.Name, UserID: p.UserID}
			}
			teams[j] = TeamView{Number: t.Number, Players: players}
		}
		views[i] = CourtView{
			Number:        c.Number,
			IsBooked:      c.IsBooked,
			PlayerCount:   c.PlayerCount,
			MaxPlayers:    c.MaxPlayers,
			Teams:         teams,
			PlayerSummary: c.PlayerSummary(),
		}
	}
	return views
}

func reconstructWireBooking(row courtapi.CourtBooking) (*booking.Booking, error) {
	date, err := booking.NewGameDate(row.BookingDate)
	if err != nil {
		return nil, err
	}
	timeSlot, err := booking.NewTimeOfDay(row.TimeSlot)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		row.ID, row.ScheduleID, row.VenueID,
		row.UserID, row.UserName,
		date, timeSlot,
		row.GameDuration,
		row.CourtNumber, row.TeamNumber,
		booking.Status(row.Status),
	)
}
