package engine

import "errors"

// ErrInternal signals an invariant violation surfaced from the search or
// evaluator (e.g. a panic recovered mid-search). It is always accompanied by
// a terminal error Record on the open Publisher, if any.
var ErrInternal = errors.New("engine: internal invariant violation")
