package booking

import "time"

// CancellationCutoff is how long before the game start a booking stops being
// cancellable. The backend re-checks the same rule on the authoritative row;
// this gate only controls whether cancellation is offered at all.
const CancellationCutoff = 2 * time.Hour

// CanCancelAt reports whether the booking may still be cancelled at the given
// instant. Only confirmed bookings are cancellable, and only while strictly
// more than CancellationCutoff remains before the start.
func (b *Booking) CanCancelAt(now time.Time, loc *time.Location) bool {
	if b.status != StatusConfirmed {
		return false
	}
	return b.StartTime(loc).Sub(now) > CancellationCutoff
}
