package generator

import "errors"

var (
	// ErrUnsupported is returned for automaton variants without a walker.
	ErrUnsupported = errors.New("word generation is not supported for this automaton")
	// ErrNoStartState is returned when no state can begin a reverse walk:
	// no accepting state for FSAs and PDAs, no state with an incoming
	// transition for transducers.
	ErrNoStartState = errors.New("automaton has no state to start a walk from")
	// ErrInvalidCount is returned when fewer than one word is requested.
	ErrInvalidCount = errors.New("number of words must be greater than zero")
)

// Reasons a single walk is abandoned. They never reach the caller; the
// collector counts them as walks that produced nothing new.
var (
	errDeadEnd      = errors.New("walk reached a state without predecessors")
	errStuck        = errors.New("no incoming transition is consistent with the stack")
	errTooLong      = errors.New("walk exceeded the step limit")
	errStartAttempt = errors.New("start state sampling exhausted")
)
