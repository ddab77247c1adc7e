package commands

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

type JoinTeamResult struct {
	Attempt   *Attempt
	BookingID uuid.UUID
}

type CancelBookingResult struct {
	// AlreadyResolved is set when the backend no longer knows the booking;
	// the caller should refresh instead of reporting a failure.
	AlreadyResolved bool
}

type BookingCommands interface {
	JoinTeam(ctx context.Context, params JoinTeamParams) (*JoinTeamResult, error)
	CancelBooking(ctx context.Context, params CancelBookingParams) (*CancelBookingResult, error)
}

type bookingCommandsImpl struct {
	gateway     BookingGateway
	projections *cache.ProjectionCache
	inflight    *inflightSet
	clock       clock.Clock
	venueLoc    *time.Location
	logger      *slog.Logger
}

func NewBookingCommands(
	gateway BookingGateway,
	projections *cache.ProjectionCache,
	clk clock.Clock,
	venueLoc *time.Location,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		gateway:     gateway,
		projections: projections,
		inflight:    newInflightSet(),
		clock:       clk,
		venueLoc:    venueLoc,
		logger:      logger,
	}
}

// JoinTeam runs the two-tier conflict guard: cheap local pre-checks against a
// fresh projection first, then the authoritative check-and-reserve at the
// backend. Local pass does not guarantee remote acceptance; the remote
// rejection classes are surfaced distinctly and never retried automatically.
func (c *bookingCommandsImpl) JoinTeam(ctx context.Context, params JoinTeamParams) (*JoinTeamResult, error) {
	attempt := newAttempt()
	attempt.State = AttemptValidating

	if !slot.IsValidTeamNumber(params.TeamNumber) {
		return c.reject(attempt, errs.ErrInvalidTeamNumber)
	}

	ws, err := c.fetchSlot(ctx, params)
	if err != nil {
		if courtapi.IsKind(err, courtapi.KindTransient) {
			return c.fail(attempt, err)
		}
		return nil, err
	}
	if !slot.IsValidCourtNumber(params.CourtNumber, ws.TotalCourts) {
		return c.reject(attempt, errs.ErrInvalidCourtNumber)
	}

	// Pre-checks in order, short-circuiting on first failure.
	court := projectCourt(ws, params.CourtNumber, c.logger)
	if team := court.Team(params.TeamNumber); team != nil && team.IsFull() {
		return c.reject(attempt, errs.ErrTeamFull)
	}
	if court.HasPlayer(params.UserID) {
		return c.reject(attempt, errs.ErrAlreadyOnCourt)
	}

	key := teamSlotKey{
		userID:      params.UserID,
		scheduleID:  params.ScheduleID,
		courtNumber: params.CourtNumber,
		teamNumber:  params.TeamNumber,
	}
	if !c.inflight.tryAcquire(key) {
		return c.reject(attempt, errs.ErrBookingInFlight)
	}
	// The marker exists only while submitting; released on every terminal
	// outcome, success and failure alike.
	defer c.inflight.release(key)

	attempt.State = AttemptSubmitting

	date, err := booking.NewGameDate(ws.Date)
	if err != nil {
		return c.reject(attempt, errs.Mark(err, errs.ErrDomainValidation))
	}
	timeSlot, err := booking.NewTimeOfDay(ws.TimeSlot)
	if err != nil {
		return c.reject(attempt, errs.Mark(err, errs.ErrDomainValidation))
	}
	intent, err := booking.NewBooking(
		params.ScheduleID, ws.VenueID,
		params.UserID, params.UserName,
		date, timeSlot,
		ws.GameDuration,
		params.CourtNumber, params.TeamNumber, ws.TotalCourts,
	)
	if err != nil {
		return c.reject(attempt, errs.Mark(err, errs.ErrDomainValidation))
	}

	submitErr := c.gateway.CreateBooking(ctx, courtapi.CreateBookingRequest{
		ScheduleID:   intent.ScheduleID(),
		UserID:       intent.UserID(),
		UserName:     intent.UserName(),
		BookingDate:  intent.Date().String(),
		TimeSlot:     intent.TimeSlot().String(),
		GameDuration: intent.GameDuration(),
		VenueID:      intent.VenueID(),
		CourtNumber:  intent.CourtNumber(),
		TeamNumber:   intent.TeamNumber(),
		Status:       intent.Status().String(),
	})
	if submitErr != nil {
		return c.settleSubmitError(attempt, ws, submitErr)
	}

	attempt.State = AttemptAccepted
	c.invalidateSlot(ws)

	return &JoinTeamResult{Attempt: attempt, BookingID: intent.ID()}, nil
}

// CancelBooking gates the cancellation offer with the cutoff policy, then
// delegates the mutation. The backend re-checks the same rule on the
// authoritative row.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, params CancelBookingParams) (*CancelBookingResult, error) {
	rows, err := c.gateway.GetUserBookings(ctx, params.UserID, params.Date, params.Date)
	if err != nil {
		if courtapi.IsKind(err, courtapi.KindTransient) {
			return nil, errs.Mark(err, errs.ErrBackendUnavailable)
		}
		return nil, err
	}

	var target *courtapi.CourtBooking
	for i := range rows {
		if rows[i].ID == params.BookingID {
			target = &rows[i]
			break
		}
	}
	if target == nil {
		// Already gone upstream; treat as resolved so the caller refreshes.
		return &CancelBookingResult{AlreadyResolved: true}, nil
	}

	date, err := booking.NewGameDate(target.BookingDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	timeSlot, err := booking.NewTimeOfDay(target.TimeSlot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	existing, err := booking.ReconstructBooking(
		target.ID, target.ScheduleID, target.VenueID,
		target.UserID, target.UserName,
		date, timeSlot,
		target.GameDuration,
		target.CourtNumber, target.TeamNumber,
		booking.Status(target.Status),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if !existing.CanCancelAt(c.clock.Now(), c.venueLoc) {
		return nil, errs.ErrNotCancellable
	}

	if err := c.gateway.CancelBooking(ctx, params.BookingID, params.UserID); err != nil {
		switch {
		case courtapi.IsKind(err, courtapi.KindNotFound):
			return &CancelBookingResult{AlreadyResolved: true}, nil
		case courtapi.IsKind(err, courtapi.KindTransient):
			return nil, errs.Mark(err, errs.ErrBackendUnavailable)
		default:
			return nil, err
		}
	}

	c.projections.Invalidate(cache.SlotKey{
		VenueID:    target.VenueID,
		Date:       target.BookingDate,
		TimeSlot:   target.TimeSlot,
		ScheduleID: target.ScheduleID,
	})
	return &CancelBookingResult{}, nil
}

// fetchSlot re-derives the schedule's current state from a fresh fetch; the
// guard never trusts a client-supplied projection.
func (c *bookingCommandsImpl) fetchSlot(ctx context.Context, params JoinTeamParams) (courtapi.AvailableSlot, error) {
	slots, err := c.gateway.GetAvailableSlots(ctx, params.VenueID, params.Date, params.Date)
	if err != nil {
		return courtapi.AvailableSlot{}, err
	}
	for _, ws := range slots {
		if ws.ScheduleID == params.ScheduleID {
			return ws, nil
		}
	}
	return courtapi.AvailableSlot{}, errs.ErrScheduleNotFound
}

func (c *bookingCommandsImpl) settleSubmitError(attempt *Attempt, ws courtapi.AvailableSlot, err error) (*JoinTeamResult, error) {
	if courtapi.IsKind(err, courtapi.KindConflict) {
		// A conflict means someone else changed the slot under us; the cached
		// projection is stale, so drop it and let the next render refetch.
		c.invalidateSlot(ws)
		switch courtapi.ConflictClassOf(err) {
		case courtapi.ConflictTeamFull:
			return c.reject(attempt, errs.ErrTeamFull)
		case courtapi.ConflictDuplicateDay:
			return c.reject(attempt, errs.ErrDuplicateDay)
		case courtapi.ConflictAlreadyOnCourt:
			return c.reject(attempt, errs.ErrAlreadyOnCourt)
		default:
			return c.reject(attempt, errs.Mark(err, errs.ErrDomainValidation))
		}
	}
	if courtapi.IsKind(err, courtapi.KindTransient) || courtapi.IsKind(err, courtapi.KindDecode) {
		return c.fail(attempt, err)
	}
	return c.reject(attempt, errs.Mark(err, errs.ErrDomainValidation))
}

func (c *bookingCommandsImpl) reject(attempt *Attempt, reason error) (*JoinTeamResult, error) {
	attempt.State = AttemptRejected
	attempt.Reason = reason
	return &JoinTeamResult{Attempt: attempt}, reason
}

// fail marks a transient outcome. No automatic retry: the caller is informed
// and may re-invoke manually, which avoids duplicate bookings.
func (c *bookingCommandsImpl) fail(attempt *Attempt, err error) (*JoinTeamResult, error) {
	attempt.State = AttemptFailed
	return &JoinTeamResult{Attempt: attempt}, errs.Mark(err, errs.ErrBackendUnavailable)
}

func (c *bookingCommandsImpl) invalidateSlot(ws courtapi.AvailableSlot) {
	c.projections.Invalidate(cache.SlotKey{
		VenueID:    ws.VenueID,
		Date:       ws.Date,
		TimeSlot:   ws.TimeSlot,
		ScheduleID: ws.ScheduleID,
	})
}

// projectCourt builds the fresh occupancy of a single court for the local
// pre-checks. Reuses the domain projector so pre-check and display semantics
// cannot drift apart.
func projectCourt(ws courtapi.AvailableSlot, courtNumber int, logger *slog.Logger) *slot.Court {
	date, err := booking.NewGameDate(ws.Date)
	if err != nil {
		return &slot.Court{Number: courtNumber, MaxPlayers: slot.MaxPlayersPerCourt}
	}
	timeSlot, err := booking.NewTimeOfDay(ws.TimeSlot)
	if err != nil {
		return &slot.Court{Number: courtNumber, MaxPlayers: slot.MaxPlayersPerCourt}
	}
	sched, err := slot.NewSchedule(ws.ScheduleID, ws.VenueID, date, timeSlot, ws.GameDuration, ws.TotalCourts)
	if err != nil {
		return &slot.Court{Number: courtNumber, MaxPlayers: slot.MaxPlayersPerCourt}
	}

	bookings := make([]*booking.Booking, 0, len(ws.Bookings))
	for _, row := range ws.Bookings {
		rowDate, rowErr := booking.NewGameDate(row.BookingDate)
		if rowErr != nil {
			continue
		}
		rowSlot, rowErr := booking.NewTimeOfDay(row.TimeSlot)
		if rowErr != nil {
			continue
		}
		b, rowErr := booking.ReconstructBooking(
			row.ID, row.ScheduleID, row.VenueID,
			row.UserID, row.UserName,
			rowDate, rowSlot,
			row.GameDuration,
			row.CourtNumber, row.TeamNumber,
			booking.Status(row.Status),
		)
		if rowErr != nil {
			continue
		}
		bookings = append(bookings, b)
	}

	courts := slot.Project(sched, bookings, logger)
	return &courts[slot.CourtIndexFor(courtNumber)]
}
