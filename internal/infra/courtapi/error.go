package courtapi

import (
	"errors"
	"log/slog"
	"strings"

	"courtside/internal/pkg/errs"
)

type GatewayErrorKind string

// Gateway-specific error kinds
const (
	KindNotFound  GatewayErrorKind = "NOT_FOUND"
	KindConflict  GatewayErrorKind = "CONFLICT"
	KindTransient GatewayErrorKind = "TRANSIENT"
	KindDecode    GatewayErrorKind = "DECODE"
	KindRejected  GatewayErrorKind = "REJECTED"
)

// ConflictClass distinguishes why the backend refused a booking. Each class
// calls for a different corrective action, so they must never collapse into a
// generic conflict.
type ConflictClass string

const (
	// ConflictTeamFull: another user took the seat between the local check
	// and the remote commit. Benign race; refresh and re-render.
	ConflictTeamFull ConflictClass = "team_full"
	// ConflictDuplicateDay: the user already holds a confirmed booking on
	// the same calendar date.
	ConflictDuplicateDay ConflictClass = "duplicate_day"
	// ConflictAlreadyOnCourt: the user tried to join a second team on a
	// court they already occupy.
	ConflictAlreadyOnCourt ConflictClass = "already_on_court"
	ConflictUnknown        ConflictClass = "unknown"
)

type GatewayError struct {
	Kind  GatewayErrorKind
	Class ConflictClass
	msg   string
	err   error // wrapped low-level error
}

func (e GatewayError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e GatewayError) Unwrap() error {
	return e.err
}

func wrapGatewayErr(logger *slog.Logger, kind GatewayErrorKind, msg string, err error) error {
	if logger != nil {
		logger.Error("Gateway error: "+msg, slog.String("kind", string(kind)))
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return GatewayError{Kind: kind, msg: msg, err: err}
}

func conflictErr(class ConflictClass, msg string) error {
	return GatewayError{Kind: KindConflict, Class: class, msg: msg}
}

func IsKind(err error, kind GatewayErrorKind) bool {
	var e GatewayError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ConflictClassOf extracts the rejection class from a conflict error, or
// ConflictUnknown when err is not a classified conflict.
func ConflictClassOf(err error) ConflictClass {
	var e GatewayError
	if errors.As(err, &e) && e.Kind == KindConflict && e.Class != "" {
		return e.Class
	}
	return ConflictUnknown
}

// Legacy message patterns used when the backend omits the machine-readable
// code field. Order matters: "court" must be tested before the generic
// same-day wording, since both mention an existing booking.
var conflictPatterns = []struct {
	class    ConflictClass
	contains []string
}{
	{ConflictTeamFull, []string{"full"}},
	{ConflictAlreadyOnCourt, []string{"already booked for this court"}},
	{ConflictAlreadyOnCourt, []string{"court"}},
	{ConflictDuplicateDay, []string{"same day"}},
	{ConflictDuplicateDay, []string{"already have a booking"}},
	{ConflictDuplicateDay, []string{"date"}},
}

// classifyConflict prefers the explicit code field; the message patterns are a
// compatibility fallback for backends that only send prose.
func classifyConflict(code, message string) ConflictClass {
	switch ConflictClass(code) {
	case ConflictTeamFull, ConflictDuplicateDay, ConflictAlreadyOnCourt:
		return ConflictClass(code)
	}

	lower := strings.ToLower(message)
	for _, p := range conflictPatterns {
		matched := true
		for _, fragment := range p.contains {
			if !strings.Contains(lower, fragment) {
				matched = false
				break
			}
		}
		if matched {
			return p.class
		}
	}
	return ConflictUnknown
}
