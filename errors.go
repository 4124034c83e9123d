package chess

import "errors"

// Sentinel errors for the external interfaces in package chess. Callers should
// use errors.Is against these, since the concrete error returned is usually
// wrapped with positional detail via fmt.Errorf's %w verb.
var (
	// ErrInvalidFEN is returned when a FEN string is structurally malformed.
	// The position being parsed is left untouched.
	ErrInvalidFEN = errors.New("chess: invalid FEN")

	// ErrIllegalMove is returned when a requested move is not a member of
	// the current legal move set.
	ErrIllegalMove = errors.New("chess: illegal move")

	// ErrInternal signals an invariant violation (e.g. a king count other
	// than one after make/unmake). It is a bug, not a user error.
	ErrInternal = errors.New("chess: internal invariant violation")
)
