// Package feasibility decides whether the candidate sets of a board still
// admit a complete, consistent fill. It never changes the board.
package feasibility

import (
	"github.com/go-air/gini"

	"github.com/kryssord/kryss/pkg/kryss/board"
)

const satisfiable = 1

type Report struct {
	// Satisfiable is true if every slot can take one of its candidates such
	// that all crossing letters agree.
	Satisfiable bool
	// Conflicting lists slots that cannot all be filled together. Slots
	// without candidates are reported on their own.
	Conflicting []int
}

// Check encodes the board as a SAT problem over its current candidates.
func Check(b *board.Board) Report {
	slots := b.Slots()

	var empty []int
	for i := range slots {
		if slots[i].Missing() {
			empty = append(empty, i)
		}
	}
	if len(empty) > 0 {
		return Report{Conflicting: empty}
	}

	lm := newLitMapping(slots, b.Neighbors)
	g := gini.New()
	lm.AddConstraints(g)
	lm.AssumeConstraints(g)

	if g.Solve() == satisfiable {
		return Report{Satisfiable: true}
	}
	return Report{Conflicting: lm.Conflicts(g)}
}
