package kryss

import (
	"errors"
	"fmt"
)

// Wildcard marks an unconstrained position in a hint.
const Wildcard = '.'

// Status classifies a board after a full propagation pass.
type Status int

const (
	Unsolved Status = iota
	Unsolvable
	Ambiguous
	Solved
)

func (s Status) String() string {
	switch s {
	case Unsolved:
		return "unsolved"
	case Unsolvable:
		return "unsolvable"
	case Ambiguous:
		return "ambiguous"
	case Solved:
		return "solved"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Dictionary supplies the candidate words for a slot. The hint is either
// empty or a string of length runes in which Wildcard matches any letter.
// Every returned word must be exactly length runes long. An empty key asks
// for words of any key.
type Dictionary interface {
	Lookup(key string, length int, hint string) []string
}

// EventType identifies a solver event.
type EventType string

const (
	EventCommit   EventType = "commit"
	EventRollback EventType = "rollback"
	EventStatus   EventType = "status"
)

// Event is reported to a Tracer while a board is mutated.
type Event struct {
	Type EventType
	// Slot is the index of the slot the event is about, or -1.
	Slot int
	// Cause is the slot whose commit triggered a rollback, or -1.
	Cause int
	// Description is a human readable rendering of the slot.
	Description string
	Status      Status
}

type Tracer interface {
	Trace(e Event)
}

var (
	// ErrNotUnique is returned when committing a slot without a value while
	// it does not carry exactly one candidate.
	ErrNotUnique = errors.New("slot does not have exactly one candidate")
	// ErrNoSuchSlot is returned for out of range slot indices and for
	// references that match no slot.
	ErrNoSuchSlot = errors.New("word not found")
)

// ConflictError is a construction error: two slots touch or overlap
// without crossing.
type ConflictError struct {
	A string
	B string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("words %s and %s are conflicting", e.A, e.B)
}

// MalformedSlotError is a construction error for a slot definition that
// cannot be parsed or describes an impossible footprint.
type MalformedSlotError struct {
	// Line is the 1-based source line, or 0 if the slot did not come from a file.
	Line   int
	Text   string
	Reason string
}

func (e *MalformedSlotError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid word definition (%s): %s", e.Line, e.Text, e.Reason)
	}
	return fmt.Sprintf("invalid word definition (%s): %s", e.Text, e.Reason)
}

// InvalidCommitError rejects an explicit value whose length differs from
// the slot length.
type InvalidCommitError struct {
	Slot int
	Want int
	Got  int
}

func (e *InvalidCommitError) Error() string {
	return fmt.Sprintf("invalid length for word %d: expected %d letters, got %d", e.Slot, e.Want, e.Got)
}

// IsConstructionError returns true if err aborts building a board.
func IsConstructionError(err error) bool {
	var conflict *ConflictError
	var malformed *MalformedSlotError
	return errors.As(err, &conflict) || errors.As(err, &malformed)
}
