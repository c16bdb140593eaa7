package feasibility

import (
	"sort"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/kryssord/kryss/pkg/kryss/board"
)

// litMapping translates slots and their candidates into a circuit. Every
// candidate gets a literal of its own. Every slot gets one constraint
// literal that holds iff exactly one of its candidates is chosen and every
// chosen letter is shared by a chosen candidate of each crossing slot.
type litMapping struct {
	c           *logic.C
	candidates  [][]z.Lit
	constraints map[z.Lit][]int
}

func newLitMapping(slots []board.Slot, neighbors func(ix int) []board.Crossing) *litMapping {
	d := &litMapping{
		c:           logic.NewC(),
		candidates:  make([][]z.Lit, len(slots)),
		constraints: map[z.Lit][]int{},
	}

	for i := range slots {
		d.candidates[i] = make([]z.Lit, len(slots[i].Candidates))
		for j := range slots[i].Candidates {
			d.candidates[i][j] = d.c.Lit()
		}
	}

	for i := range slots {
		m := d.exactlyOne(d.candidates[i])
		for _, crossing := range neighbors(i) {
			m = d.c.And(m, d.agree(slots, i, crossing))
		}
		d.constraints[m] = append(d.constraints[m], i)
	}
	return d
}

func (d *litMapping) exactlyOne(ms []z.Lit) z.Lit {
	some := d.c.F
	for _, m := range ms {
		some = d.c.Or(some, m)
	}
	return d.c.And(some, d.c.CardSort(ms).Leq(1))
}

// agree holds if the chosen candidate of slot a, if any, shares its letter
// at the crossing with a chosen candidate of the crossing slot.
func (d *litMapping) agree(slots []board.Slot, a int, crossing board.Crossing) z.Lit {
	b := crossing.Slot
	m := d.c.T
	for i, word := range slots[a].Candidates {
		letter := []rune(word)[crossing.Offset]

		compatible := d.c.F
		for j, other := range slots[b].Candidates {
			if []rune(other)[crossing.OtherOffset] == letter {
				compatible = d.c.Or(compatible, d.candidates[b][j])
			}
		}
		m = d.c.And(m, d.c.Or(d.candidates[a][i].Not(), compatible))
	}
	return m
}

func (d *litMapping) AddConstraints(g inter.S) {
	d.c.ToCnf(g)
}

func (d *litMapping) AssumeConstraints(g inter.S) {
	for m := range d.constraints {
		g.Assume(m)
	}
}

// Conflicts returns the slots whose constraints appear in the reason for the
// last unsatisfiable result, in index order.
func (d *litMapping) Conflicts(g inter.Assumable) []int {
	var slots []int
	for _, why := range g.Why(nil) {
		slots = append(slots, d.constraints[why]...)
	}
	sort.Ints(slots)
	return slots
}
