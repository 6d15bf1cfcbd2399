// Package errs defines the closed error taxonomy shared by pathfind and
// engine. No exceptions escape the engine: every failure is a *Error the
// caller can switch on by Kind, a struct rather than a bitmask so callers
// can use errors.As against a plain error interface.
package errs

import "fmt"

// Kind is a closed enumeration of the ways a call into this engine can
// fail.
type Kind int

const (
	// InvalidInput covers malformed blobs, negative sizes, NaN bounds,
	// fewer than two waypoints, or constraints out of range.
	InvalidInput Kind = iota
	// OutOfBounds means a waypoint lies outside the elevation grid.
	OutOfBounds
	// NoFeasibleEndpoint means start or goal snapping found no feasible
	// cell within snap_radius.
	NoFeasibleEndpoint
	// NoPathFound means the open set was exhausted before reaching the
	// goal.
	NoPathFound
	// SearchBudgetExceeded means max_nodes was reached.
	SearchBudgetExceeded
	// Cancelled means the host aborted the search via progress_cb or a
	// CancelToken.
	Cancelled
	// InternalInvariant should never occur; it indicates a bug.
	InternalInvariant
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case OutOfBounds:
		return "OutOfBounds"
	case NoFeasibleEndpoint:
		return "NoFeasibleEndpoint"
	case NoPathFound:
		return "NoPathFound"
	case SearchBudgetExceeded:
		return "SearchBudgetExceeded"
	case Cancelled:
		return "Cancelled"
	case InternalInvariant:
		return "InternalInvariant"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the structured error carrier every entry point returns instead
// of a success value. Message is safe to render to an end user; Detail is
// for logs only, since it may include raw input values or internal state.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetail returns a copy of e with Detail set, for attaching
// log-only context without changing the user-visible Kind/Message.
func (e *Error) WithDetail(detail string) *Error {
	cp := *e
	cp.Detail = detail
	return &cp
}

// Is reports whether err is an *Error of the given kind, as in
// errs.Is(err, errs.NoPathFound). It checks err itself only and does not
// unwrap wrapped errors.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
