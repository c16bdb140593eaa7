package board

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kryssord/kryss/pkg/kryss"
	"github.com/kryssord/kryss/pkg/kryss/geometry"
)

// SlotSpec describes a slot as supplied by a grid loader.
type SlotSpec struct {
	geometry.Geometry
	// Key identifies the clue of the slot. Slots without a key make up the
	// solution phrase.
	Key string
	// Value pre-fixes the slot when not empty.
	Value string
	// Line is the source line of the definition, 0 if unknown.
	Line int
}

func (s SlotSpec) String() string {
	return format(s.Geometry, s.Key, s.Value)
}

func (s SlotSpec) validate() error {
	malformed := func(reason string) error {
		return &kryss.MalformedSlotError{Line: s.Line, Text: s.String(), Reason: reason}
	}
	if s.Length < 1 {
		return malformed("length must be positive")
	}
	if s.XMin() < 0 || s.YMin() < 0 {
		return malformed("word extends outside the grid")
	}
	if s.Value != "" && utf8.RuneCountInString(s.Value) != s.Length {
		return malformed(fmt.Sprintf("value has %d letters, expected %d", utf8.RuneCountInString(s.Value), s.Length))
	}
	return nil
}

// Slot is a word entry of the grid together with its solving state.
type Slot struct {
	geometry.Geometry
	Key string
	// Candidates are the words still consistent with the known letters.
	// A placed slot has exactly one candidate, its value.
	Candidates []string
	Placed     bool
}

func newSlot(spec SlotSpec) Slot {
	s := Slot{
		Geometry: spec.Geometry,
		Key:      spec.Key,
	}
	if spec.Value != "" {
		s.Candidates = []string{spec.Value}
		s.Placed = true
	}
	return s
}

// CharAt returns the letter at offset i of the sole candidate. Calling it on
// a slot with any other number of candidates is a programming error.
func (s *Slot) CharAt(i int) rune {
	if len(s.Candidates) != 1 {
		panic(fmt.Sprintf("CharAt on word %s with %d candidates", s, len(s.Candidates)))
	}
	return []rune(s.Candidates[0])[i]
}

// Value returns the placed word, or "" if the slot is not placed.
func (s *Slot) Value() string {
	if !s.Placed {
		return ""
	}
	return s.Candidates[0]
}

func (s *Slot) HasOneCandidate() bool {
	return len(s.Candidates) == 1
}

// Missing returns true if no candidate is left.
func (s *Slot) Missing() bool {
	return len(s.Candidates) == 0
}

func (s *Slot) Ambiguous() bool {
	return len(s.Candidates) > 1
}

// Solution returns true if the slot is part of the solution phrase.
func (s *Slot) Solution() bool {
	return s.Key == ""
}

// String renders the slot in grid file notation.
func (s *Slot) String() string {
	return format(s.Geometry, s.Key, s.Value())
}

func (s *Slot) clone() Slot {
	c := *s
	c.Candidates = append([]string(nil), s.Candidates...)
	return c
}

func format(g geometry.Geometry, key, value string) string {
	var sb strings.Builder
	sb.WriteString(g.String())
	if key != "" {
		sb.WriteString(",")
		sb.WriteString(key)
	}
	if value != "" {
		sb.WriteString("=")
		sb.WriteString(value)
	}
	return sb.String()
}

// matches returns true if word has length runes and agrees with every
// non-wildcard position of hint.
func matches(word string, length int, hint []rune) bool {
	letters := []rune(word)
	if len(letters) != length {
		return false
	}
	for i, h := range hint {
		if h != kryss.Wildcard && h != letters[i] {
			return false
		}
	}
	return true
}
