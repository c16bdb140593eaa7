package board

import (
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/kryssord/kryss/pkg/kryss"
)

// Board owns every slot of a grid and the crossing index between them. All
// mutation goes through the board so that the letters of a committed slot
// can be read while its neighbours are filtered.
type Board struct {
	slots     []Slot
	crossings crossingIndex
	dict      kryss.Dictionary
	tracer    kryss.Tracer
	status    kryss.Status
	changed   bool
	width     int
	height    int
}

// New validates the slot definitions, builds the crossing index and fills
// every unplaced slot with candidates from dict. Conflicting or malformed
// definitions are reported as construction errors.
func New(specs []SlotSpec, dict kryss.Dictionary, options ...Option) (*Board, error) {
	b := &Board{
		slots:  make([]Slot, 0, len(specs)),
		dict:   dict,
		status: kryss.Unsolved,
	}
	for _, option := range append(options, defaults...) {
		if err := option(b); err != nil {
			return nil, err
		}
	}

	for _, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, err
		}
		b.slots = append(b.slots, newSlot(spec))
		b.width = max(b.width, spec.XMax()+1)
		b.height = max(b.height, spec.YMax()+1)
	}

	crossings, err := newCrossingIndex(b.slots)
	if err != nil {
		return nil, err
	}
	b.crossings = crossings

	b.Refresh()
	return b, nil
}

type Option func(b *Board) error

// WithTracer reports commits, rollbacks and status changes to t.
func WithTracer(t kryss.Tracer) Option {
	return func(b *Board) error {
		b.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(b *Board) error {
		if b.tracer == nil {
			b.tracer = DefaultTracer{}
		}
		return nil
	},
	func(b *Board) error {
		if b.dict == nil {
			return fmt.Errorf("no dictionary given")
		}
		return nil
	},
}

// Len returns the number of slots.
func (b *Board) Len() int {
	return len(b.slots)
}

// Slot returns a copy of slot ix, which must be in [0, Len()).
func (b *Board) Slot(ix int) Slot {
	return b.slots[ix].clone()
}

// Slots returns a copy of every slot in index order.
func (b *Board) Slots() []Slot {
	slots := make([]Slot, len(b.slots))
	for i := range b.slots {
		slots[i] = b.slots[i].clone()
	}
	return slots
}

// Neighbors returns the slots crossing ix, sorted by the offset into ix.
func (b *Board) Neighbors(ix int) []Crossing {
	return b.crossings.byOffset(ix)
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

// Status returns the classification computed by the last SolveRepeated.
func (b *Board) Status() kryss.Status {
	return b.status
}

// Changed returns true if the board was mutated since it was built or last
// marked as saved.
func (b *Board) Changed() bool {
	return b.changed
}

// MarkSaved clears the changed flag after a successful write.
func (b *Board) MarkSaved() {
	b.changed = false
}

// Hint returns the placed value of ix, or one rune per offset holding the
// letter of a placed crossing slot and the wildcard elsewhere.
func (b *Board) Hint(ix int) string {
	s := &b.slots[ix]
	if s.Placed {
		return s.Candidates[0]
	}
	return string(b.hint(ix))
}

func (b *Board) hint(ix int) []rune {
	s := &b.slots[ix]
	hint := make([]rune, s.Length)
	for i := range hint {
		hint[i] = kryss.Wildcard
	}
	for _, c := range b.crossings[ix] {
		other := &b.slots[c.Slot]
		if other.Placed {
			hint[c.Offset] = other.CharAt(c.OtherOffset)
		}
	}
	return hint
}

// Describe renders slot ix as "[ix] key = VALUE", with the hint and a
// question mark in place of the value while the slot is not placed.
func (b *Board) Describe(ix int) string {
	s := &b.slots[ix]
	value := s.Value()
	if !s.Placed {
		value = b.Hint(ix) + " ?"
	}
	if s.Key != "" {
		return fmt.Sprintf("[%d] %s = %s", ix, s.Key, value)
	}
	return fmt.Sprintf("[%d] %s", ix, value)
}

// Find resolves a reference typed by a user: a slot index, a key, or the
// value of a placed slot.
func (b *Board) Find(ref string) []int {
	if ix, err := strconv.Atoi(ref); err == nil {
		if ix >= 0 && ix < len(b.slots) {
			return []int{ix}
		}
		return nil
	}

	var hits []int
	for i := range b.slots {
		s := &b.slots[i]
		if (s.Key != "" && s.Key == ref) || (s.Placed && s.Candidates[0] == ref) {
			hits = append(hits, i)
		}
	}
	return hits
}

// Refresh replaces the candidates of every unplaced slot with the dictionary
// words matching the letters of its placed crossing slots. Placed slots are
// left alone.
func (b *Board) Refresh() {
	for i := range b.slots {
		s := &b.slots[i]
		if s.Placed {
			continue
		}

		hint := b.hint(i)
		words := b.dict.Lookup(s.Key, s.Length, string(hint))

		// candidates never alias dictionary storage, and always agree
		// with the placed crossing letters
		candidates := make([]string, 0, len(words))
		for _, w := range words {
			if matches(w, s.Length, hint) {
				candidates = append(candidates, w)
			}
		}
		s.Candidates = candidates
	}
}

// Commit places ix with its sole candidate and propagates its letters.
func (b *Board) Commit(ix int) error {
	if err := b.check(ix); err != nil {
		return err
	}
	s := &b.slots[ix]
	if !s.HasOneCandidate() {
		return fmt.Errorf("word %d: %w", ix, kryss.ErrNotUnique)
	}
	b.commit(ix, s.Candidates[0])
	return nil
}

// Place places ix with an explicit value and propagates its letters. The
// value must have exactly the length of the slot.
func (b *Board) Place(ix int, value string) error {
	if err := b.check(ix); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(value); n != b.slots[ix].Length {
		return &kryss.InvalidCommitError{Slot: ix, Want: b.slots[ix].Length, Got: n}
	}
	b.commit(ix, value)
	return nil
}

// commit fixes ix to word. Unplaced crossing slots lose every candidate
// disagreeing at the shared cell; placed crossing slots that disagree are
// rolled back once all neighbours have been visited.
func (b *Board) commit(ix int, word string) {
	s := &b.slots[ix]
	s.Candidates = []string{word}
	s.Placed = true
	letters := []rune(word)

	var rollback []int
	for _, c := range b.crossings[ix] {
		other := &b.slots[c.Slot]
		letter := letters[c.Offset]

		if other.Placed {
			if other.CharAt(c.OtherOffset) != letter {
				rollback = append(rollback, c.Slot)
			}
			continue
		}

		other.Candidates = slices.DeleteFunc(other.Candidates, func(candidate string) bool {
			return []rune(candidate)[c.OtherOffset] != letter
		})
	}

	b.changed = true
	b.tracer.Trace(kryss.Event{Type: kryss.EventCommit, Slot: ix, Cause: -1, Description: b.Describe(ix)})

	for _, u := range rollback {
		b.tracer.Trace(kryss.Event{Type: kryss.EventRollback, Slot: u, Cause: ix, Description: b.Describe(u)})
		b.rollback(u)
	}
}

// Rollback unplaces ix and recomputes the candidates of every unplaced slot,
// since letters pruned only because of ix may be valid again. A slot that is
// not placed is left alone.
func (b *Board) Rollback(ix int) error {
	if err := b.check(ix); err != nil {
		return err
	}
	if !b.slots[ix].Placed {
		return nil
	}
	b.tracer.Trace(kryss.Event{Type: kryss.EventRollback, Slot: ix, Cause: -1, Description: b.Describe(ix)})
	b.rollback(ix)
	return nil
}

func (b *Board) rollback(ix int) {
	s := &b.slots[ix]
	s.Placed = false
	s.Candidates = nil
	b.changed = true
	b.Refresh()
}

// SolveRepeated commits every unplaced slot with a single candidate, in
// index order, until a full pass commits nothing. It then classifies the
// board and returns the status.
func (b *Board) SolveRepeated() kryss.Status {
	for done := false; !done; {
		done = true
		for i := range b.slots {
			s := &b.slots[i]
			if s.Placed || !s.HasOneCandidate() {
				continue
			}
			b.commit(i, s.Candidates[0])
			done = false
		}
	}

	b.status = b.classify()
	b.tracer.Trace(kryss.Event{Type: kryss.EventStatus, Slot: -1, Cause: -1, Status: b.status})
	return b.status
}

func (b *Board) classify() kryss.Status {
	maxCandidates := -1
	for i := range b.slots {
		s := &b.slots[i]
		if s.Placed {
			continue
		}
		maxCandidates = max(maxCandidates, len(s.Candidates))
	}

	switch maxCandidates {
	case -1:
		return kryss.Solved
	case 0:
		return kryss.Unsolvable
	case 1:
		// not reachable after the fixed point loop
		return kryss.Unsolved
	}
	return kryss.Ambiguous
}

func (b *Board) check(ix int) error {
	if ix < 0 || ix >= len(b.slots) {
		return fmt.Errorf("word %d: %w", ix, kryss.ErrNoSuchSlot)
	}
	return nil
}
