package entities

import "errors"

// ErrInvalidArgument is returned by constructors and collection-level entry
// points (Priority Manager ordering, Matching Engine passes) when given
// null/absent input or non-positive quantities. It is the only error kind
// surfaced directly to callers from the domain layer; quantity mutators
// never return it (they report success/failure booleanly instead, see
// ErrPreconditionFailed).
var ErrInvalidArgument = errors.New("invalid argument")

// ErrPreconditionFailed names the reason a quantity mutator returned false.
// It is never returned from a mutator (mutators are boolean by contract),
// and the mutators do not log or record it; it is exported for callers
// that want to wrap or log a rejected Reserve/Deduct/Release call.
var ErrPreconditionFailed = errors.New("precondition failed")
